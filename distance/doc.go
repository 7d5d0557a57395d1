// Package distance provides vector similarity calculations over float64 slices.
//
// Arithmetic is delegated to gonum's floats package.
//
// # Degenerate Vectors
//
// Cosine similarity is undefined when either vector has zero magnitude.
// Cosine returns 0 in that case instead of NaN, so a zero vector is
// equally (dis)similar to everything.
//
// # Usage
//
//	sim := distance.Cosine(a, b)     // in [-1, 1]
//	d := distance.CosineDistance(a, b) // 1 - sim, in [0, 2]
//	unit, ok := distance.NormalizeL2Copy(vec)
package distance
