package cosmeans

import (
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/cosmeans/internal/kmeans"
)

// Status is the terminal state of a clustering run.
type Status = kmeans.Status

const (
	// StatusConverged means successive centroids agreed within the tolerance.
	StatusConverged = kmeans.StatusConverged
	// StatusExhausted means the iteration cap was reached first.
	StatusExhausted = kmeans.StatusExhausted
)

// Result is the outcome of a clustering run.
type Result struct {
	// Centroids holds k centroids of the input dimensionality.
	Centroids [][]float64
	// Assignments maps point i to its cluster in [0, k).
	Assignments []int
	// Status tells whether the run converged or hit the iteration cap.
	Status Status
	// Iterations is the iteration (1-based) at which the run terminated.
	Iterations int
	// Cohesion is the mean cosine similarity of points to their centroid.
	Cohesion float64
	// Seed is the seed of the initialization source. It is zero when the
	// source was supplied through WithRand.
	Seed uint64
	// Normalized reports whether points were L2-normalized before clustering.
	Normalized bool

	members []*roaring.Bitmap
}

func newResult(out *kmeans.Result, points [][]float64, seed uint64, normalized bool) *Result {
	members := make([]*roaring.Bitmap, len(out.Centroids))
	for j := range members {
		members[j] = roaring.New()
	}
	for i, c := range out.Assignments {
		members[c].Add(uint32(i))
	}

	return &Result{
		Centroids:   out.Centroids,
		Assignments: out.Assignments,
		Status:      out.Status,
		Iterations:  out.Iterations,
		Cohesion:    kmeans.Cohesion(points, out.Centroids, out.Assignments),
		Seed:        seed,
		Normalized:  normalized,
		members:     members,
	}
}

// Converged reports whether the run ended with StatusConverged.
func (r *Result) Converged() bool {
	return r.Status == StatusConverged
}

// K returns the number of clusters.
func (r *Result) K() int {
	return len(r.Centroids)
}

// Members returns the point indices assigned to cluster c.
// The bitmap is a copy; nil is returned for an out-of-range cluster.
func (r *Result) Members(c int) *roaring.Bitmap {
	if c < 0 || c >= len(r.members) {
		return nil
	}
	return r.members[c].Clone()
}

// Sizes returns the number of points in each cluster.
func (r *Result) Sizes() []int {
	sizes := make([]int, len(r.members))
	for j, m := range r.members {
		sizes[j] = int(m.GetCardinality())
	}
	return sizes
}

// Model returns an immutable model of the final centroids for
// classifying new points.
func (r *Result) Model() *Model {
	centroids := make([][]float64, len(r.Centroids))
	for j, c := range r.Centroids {
		centroids[j] = slices.Clone(c)
	}
	return &Model{
		centroids:  centroids,
		dim:        len(centroids[0]),
		normalized: r.Normalized,
		status:     r.Status,
		iterations: r.Iterations,
		cohesion:   r.Cohesion,
	}
}
