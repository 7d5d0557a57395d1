package cosmeans

import (
	"context"
	"fmt"
	"slices"

	"github.com/hupe1980/cosmeans/internal/kmeans"
)

// Model is a trained set of centroids used to classify new points.
// A Model is immutable and safe for concurrent use.
type Model struct {
	centroids  [][]float64
	dim        int
	normalized bool
	status     Status
	iterations int
	cohesion   float64
}

// NewModel builds a Model from caller-supplied centroids.
// The centroids are copied.
func NewModel(centroids [][]float64) (*Model, error) {
	if len(centroids) == 0 {
		return nil, fmt.Errorf("%w: no centroids", ErrInvalidInput)
	}
	dim := len(centroids[0])
	if dim == 0 {
		return nil, &ErrInvalidDimension{Dimension: 0}
	}

	cp := make([][]float64, len(centroids))
	for j, c := range centroids {
		if len(c) != dim {
			return nil, &ErrDimensionMismatch{Index: j, Expected: dim, Actual: len(c)}
		}
		cp[j] = slices.Clone(c)
	}

	return &Model{centroids: cp, dim: dim}, nil
}

// K returns the number of clusters.
func (m *Model) K() int { return len(m.centroids) }

// Dimension returns the dimensionality of the centroids.
func (m *Model) Dimension() int { return m.dim }

// Centroids returns a copy of all centroids.
func (m *Model) Centroids() [][]float64 {
	out := make([][]float64, len(m.centroids))
	for j, c := range m.centroids {
		out[j] = slices.Clone(c)
	}
	return out
}

// Centroid returns a copy of centroid c, or nil if c is out of range.
func (m *Model) Centroid(c int) []float64 {
	if c < 0 || c >= len(m.centroids) {
		return nil
	}
	return slices.Clone(m.centroids[c])
}

// Status returns the status of the run that produced the model.
// It is zero for models built with NewModel.
func (m *Model) Status() Status { return m.status }

// Iterations returns the iteration count of the producing run.
func (m *Model) Iterations() int { return m.iterations }

// Cohesion returns the cohesion of the producing run.
func (m *Model) Cohesion() float64 { return m.cohesion }

// Normalized reports whether the model was trained on L2-normalized points.
func (m *Model) Normalized() bool { return m.normalized }

func (m *Model) checkDim(index int, p []float64) error {
	if len(p) != m.dim {
		return &ErrDimensionMismatch{Index: index, Expected: m.dim, Actual: len(p)}
	}
	return nil
}

// Predict returns the cluster whose centroid is most similar to p.
// Ties go to the lowest cluster index.
func (m *Model) Predict(p []float64) (int, error) {
	if err := m.checkDim(0, p); err != nil {
		return 0, err
	}
	return kmeans.Nearest(p, m.centroids), nil
}

// PredictBatch classifies every point. parallelism has the same meaning
// as in WithParallelism.
func (m *Model) PredictBatch(ctx context.Context, points [][]float64, parallelism int) ([]int, error) {
	for i, p := range points {
		if err := m.checkDim(i, p); err != nil {
			return nil, err
		}
	}
	return kmeans.Assign(ctx, points, m.centroids, parallelism)
}

// Nearest returns up to n cluster indices ordered by descending similarity to p.
func (m *Model) Nearest(p []float64, n int) ([]int, error) {
	if err := m.checkDim(0, p); err != nil {
		return nil, err
	}
	return kmeans.Ranked(p, m.centroids, n), nil
}
