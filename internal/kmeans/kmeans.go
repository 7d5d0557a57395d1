package kmeans

import (
	"context"
	"math"
	"math/rand/v2"
	"slices"
	"sort"
	"time"

	"github.com/hupe1980/cosmeans/distance"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultMaxIterations caps the Lloyd loop when no limit is configured.
	DefaultMaxIterations = 100

	// DefaultTolerance is the per-component convergence tolerance.
	DefaultTolerance = 1e-9

	// Below this many points per worker the assignment pass stays sequential.
	minPointsPerWorker = 256
)

// Status is the terminal state of a run.
type Status int

const (
	// StatusConverged means successive centroids agreed within tolerance.
	StatusConverged Status = iota + 1
	// StatusExhausted means the iteration cap was reached first.
	StatusExhausted
)

func (s Status) String() string {
	switch s {
	case StatusConverged:
		return "converged"
	case StatusExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// IterationStats describes one assignment+update round.
type IterationStats struct {
	Iteration     int
	Moved         int // points whose cluster changed
	EmptyClusters int // clusters that kept their previous centroid
	Duration      time.Duration
}

// Config controls a single run.
type Config struct {
	K             int
	MaxIterations int     // <= 0 means DefaultMaxIterations
	Tolerance     float64 // 0 means exact equality
	Parallelism   int     // <= 1 means sequential assignment
	Rand          *rand.Rand
	Initializer   Initializer // nil means RandomSample
	OnIteration   func(IterationStats)
}

// Result is the outcome of a run.
type Result struct {
	Centroids   [][]float64
	Assignments []int
	Status      Status
	Iterations  int
}

// Run clusters points into cfg.K groups.
//
// Input is validated before any iteration; points are never modified.
func Run(ctx context.Context, points [][]float64, cfg Config) (*Result, error) {
	if _, err := Validate(points, cfg.K); err != nil {
		return nil, err
	}

	maxIter := cfg.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}
	initializer := cfg.Initializer
	if initializer == nil {
		initializer = RandomSample{}
	}

	n := len(points)
	idx, err := initializer.Init(cfg.Rand, n, cfg.K)
	if err != nil {
		return nil, err
	}

	centroids := make([][]float64, cfg.K)
	for j, i := range idx {
		centroids[j] = slices.Clone(points[i])
	}

	assignments := make([]int, n)
	for i := range assignments {
		assignments[i] = -1
	}
	next := make([]int, n)

	for iter := 1; iter <= maxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()

		if err := assignInto(ctx, next, points, centroids, cfg.Parallelism); err != nil {
			return nil, err
		}

		moved := 0
		for i := range next {
			if next[i] != assignments[i] {
				moved++
			}
		}
		assignments, next = next, assignments

		updated, empty := update(points, assignments, centroids)

		if cfg.OnIteration != nil {
			cfg.OnIteration(IterationStats{
				Iteration:     iter,
				Moved:         moved,
				EmptyClusters: empty,
				Duration:      time.Since(start),
			})
		}

		done := Converged(centroids, updated, cfg.Tolerance)
		centroids = updated
		if done {
			return &Result{
				Centroids:   centroids,
				Assignments: assignments,
				Status:      StatusConverged,
				Iterations:  iter,
			}, nil
		}
	}

	return &Result{
		Centroids:   centroids,
		Assignments: assignments,
		Status:      StatusExhausted,
		Iterations:  maxIter,
	}, nil
}

// Assign maps every point to its most similar centroid.
// parallelism > 1 splits the points into contiguous ranges scored concurrently.
func Assign(ctx context.Context, points, centroids [][]float64, parallelism int) ([]int, error) {
	out := make([]int, len(points))
	if err := assignInto(ctx, out, points, centroids, parallelism); err != nil {
		return nil, err
	}
	return out, nil
}

func assignInto(ctx context.Context, dst []int, points, centroids [][]float64, parallelism int) error {
	n := len(points)
	workers := min(parallelism, n/minPointsPerWorker)
	if workers <= 1 {
		for i, p := range points {
			dst[i] = Nearest(p, centroids)
		}
		return nil
	}

	chunk := (n + workers - 1) / workers
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				dst[i] = Nearest(points[i], centroids)
			}
			return nil
		})
	}

	return g.Wait()
}

// Nearest returns the index of the centroid with the highest cosine
// similarity to p. Ties go to the lowest index.
func Nearest(p []float64, centroids [][]float64) int {
	best := 0
	bestSim := math.Inf(-1)
	for j, c := range centroids {
		if sim := distance.Cosine(p, c); sim > bestSim {
			best = j
			bestSim = sim
		}
	}
	return best
}

// Ranked returns up to n centroid indices ordered by descending similarity
// to p. Equal similarities keep index order.
func Ranked(p []float64, centroids [][]float64, n int) []int {
	if n > len(centroids) {
		n = len(centroids)
	}
	if n <= 0 {
		return nil
	}

	type scored struct {
		id  int
		sim float64
	}
	all := make([]scored, len(centroids))
	for j, c := range centroids {
		all[j] = scored{id: j, sim: distance.Cosine(p, c)}
	}
	sort.SliceStable(all, func(a, b int) bool {
		return all[a].sim > all[b].sim
	})

	out := make([]int, n)
	for i := range out {
		out[i] = all[i].id
	}
	return out
}

// Update recomputes centroids as the mean of their members.
// A cluster without members keeps its previous centroid.
func Update(points [][]float64, assignments []int, previous [][]float64) [][]float64 {
	out, _ := update(points, assignments, previous)
	return out
}

func update(points [][]float64, assignments []int, previous [][]float64) ([][]float64, int) {
	k := len(previous)
	dim := len(previous[0])

	sums := make([][]float64, k)
	for j := range sums {
		sums[j] = make([]float64, dim)
	}
	counts := make([]int, k)

	for i, p := range points {
		c := assignments[i]
		floats.Add(sums[c], p)
		counts[c]++
	}

	empty := 0
	for j := range sums {
		if counts[j] == 0 {
			copy(sums[j], previous[j])
			empty++
			continue
		}
		floats.Scale(1/float64(counts[j]), sums[j])
	}
	return sums, empty
}

// Converged reports whether every centroid component of next is within tol
// (absolute or relative) of prev. tol == 0 demands exact equality.
func Converged(prev, next [][]float64, tol float64) bool {
	if len(prev) != len(next) {
		return false
	}
	for j := range prev {
		if !floats.EqualApprox(prev[j], next[j], tol) {
			return false
		}
	}
	return true
}

// Cohesion is the mean cosine similarity between each point and its centroid.
func Cohesion(points, centroids [][]float64, assignments []int) float64 {
	if len(points) == 0 {
		return 0
	}
	var sum float64
	for i, p := range points {
		sum += distance.Cosine(p, centroids[assignments[i]])
	}
	return sum / float64(len(points))
}
