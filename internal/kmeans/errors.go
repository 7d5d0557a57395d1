package kmeans

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPoints is returned when no points are given.
	ErrEmptyPoints = errors.New("empty point set")

	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrInvalidInit is returned when an Initializer yields unusable indices.
	ErrInvalidInit = errors.New("invalid initial centroids")
)

// ErrTooFewPoints indicates k exceeds the number of points.
type ErrTooFewPoints struct {
	K int
	N int
}

func (e *ErrTooFewPoints) Error() string {
	return fmt.Sprintf("k=%d exceeds number of points %d", e.K, e.N)
}

// ErrDimensionMismatch indicates a point whose length differs from point 0.
type ErrDimensionMismatch struct {
	Index    int
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("point %d has dimension %d, expected %d", e.Index, e.Actual, e.Expected)
}

// ErrInvalidDimension indicates zero-length points.
type ErrInvalidDimension struct {
	Dimension int
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

// Validate checks the point set and k before any work is done.
// It returns the shared dimensionality on success.
func Validate(points [][]float64, k int) (int, error) {
	if len(points) == 0 {
		return 0, ErrEmptyPoints
	}
	if k <= 0 {
		return 0, ErrInvalidK
	}
	if k > len(points) {
		return 0, &ErrTooFewPoints{K: k, N: len(points)}
	}

	dim := len(points[0])
	if dim == 0 {
		return 0, &ErrInvalidDimension{Dimension: dim}
	}
	for i, p := range points[1:] {
		if len(p) != dim {
			return 0, &ErrDimensionMismatch{Index: i + 1, Expected: dim, Actual: len(p)}
		}
	}
	return dim, nil
}
