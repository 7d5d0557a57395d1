package distance

import (
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b []float64) float64 {
	return floats.Dot(a, b)
}

// Norm returns the Euclidean (L2) norm of v.
func Norm(v []float64) float64 {
	return floats.Norm(v, 2)
}

// Cosine returns the cosine of the angle between a and b, in [-1, 1].
//
// If either vector has zero magnitude the similarity is defined as 0.
// Assumes vectors are the same length (caller's responsibility).
func Cosine(a, b []float64) float64 {
	na := Norm(a)
	nb := Norm(b)
	if na == 0 || nb == 0 {
		return 0
	}

	sim := Dot(a, b) / (na * nb)

	// Rounding can push parallel vectors marginally past ±1.
	switch {
	case sim > 1:
		return 1
	case sim < -1:
		return -1
	default:
		return sim
	}
}

// CosineDistance returns 1 - Cosine(a, b), in [0, 2].
func CosineDistance(a, b []float64) float64 {
	return 1 - Cosine(a, b)
}

// NormalizeL2InPlace L2-normalizes v in place.
// Returns false if v has zero L2 norm (v is left unchanged).
func NormalizeL2InPlace(v []float64) bool {
	if len(v) == 0 {
		return false
	}
	n := Norm(v)
	if n == 0 {
		return false
	}
	floats.Scale(1/n, v)
	return true
}

// NormalizeL2Copy returns a normalized copy of src.
// Returns false if src has zero L2 norm.
func NormalizeL2Copy(src []float64) ([]float64, bool) {
	dst := slices.Clone(src)
	if !NormalizeL2InPlace(dst) {
		return nil, false
	}
	return dst, true
}
