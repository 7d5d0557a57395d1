package cosmeans

import (
	"errors"
	"fmt"

	"github.com/hupe1980/cosmeans/internal/kmeans"
)

var (
	// ErrInvalidInput is the umbrella for every input validation failure.
	// All validation errors returned by Cluster satisfy errors.Is(err, ErrInvalidInput).
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyPointSet is returned when no points are given.
	ErrEmptyPointSet = kmeans.ErrEmptyPoints

	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = kmeans.ErrInvalidK

	// ErrInvalidInitialization is returned when an Initializer yields
	// out-of-range, duplicate or too few indices.
	ErrInvalidInitialization = kmeans.ErrInvalidInit

	// ErrInvalidOption is returned when an option carries an unusable value.
	ErrInvalidOption = errors.New("invalid option")
)

// ErrKExceedsPoints indicates that more clusters than points were requested.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrKExceedsPoints struct {
	K     int
	N     int
	cause error
}

func (e *ErrKExceedsPoints) Error() string {
	return fmt.Sprintf("invalid input: k=%d exceeds number of points %d", e.K, e.N)
}

func (e *ErrKExceedsPoints) Unwrap() error { return e.cause }

// Is reports ErrKExceedsPoints as an ErrInvalidInput.
func (e *ErrKExceedsPoints) Is(target error) bool { return target == ErrInvalidInput }

// ErrDimensionMismatch indicates a point whose dimensionality differs from the first point.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Index    int
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("invalid input: dimension mismatch at point %d: expected %d, got %d", e.Index, e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// Is reports ErrDimensionMismatch as an ErrInvalidInput.
func (e *ErrDimensionMismatch) Is(target error) bool { return target == ErrInvalidInput }

// ErrInvalidDimension indicates points without components.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidDimension struct {
	Dimension int
	cause     error
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid input: invalid dimension: %d", e.Dimension)
}

func (e *ErrInvalidDimension) Unwrap() error { return e.cause }

// Is reports ErrInvalidDimension as an ErrInvalidInput.
func (e *ErrInvalidDimension) Is(target error) bool { return target == ErrInvalidInput }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var tf *kmeans.ErrTooFewPoints
	if errors.As(err, &tf) {
		return &ErrKExceedsPoints{K: tf.K, N: tf.N, cause: err}
	}
	var dm *kmeans.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Index: dm.Index, Expected: dm.Expected, Actual: dm.Actual, cause: err}
	}
	var id *kmeans.ErrInvalidDimension
	if errors.As(err, &id) {
		return &ErrInvalidDimension{Dimension: id.Dimension, cause: err}
	}

	if errors.Is(err, kmeans.ErrEmptyPoints) ||
		errors.Is(err, kmeans.ErrInvalidK) ||
		errors.Is(err, kmeans.ErrInvalidInit) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return err
}
