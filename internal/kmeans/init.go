package kmeans

import (
	"fmt"
	"math/rand/v2"
)

// Initializer picks the k point indices that seed the initial centroids.
// Returned indices must be distinct and in [0, n).
type Initializer interface {
	Init(rng *rand.Rand, n, k int) ([]int, error)
}

// RandomSample draws k distinct indices uniformly without replacement.
type RandomSample struct{}

// Init implements Initializer using a partial Fisher-Yates shuffle.
func (RandomSample) Init(rng *rand.Rand, n, k int) ([]int, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: random sampling requires a random source", ErrInvalidInit)
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + rng.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k:k], nil
}

// FixedIndices seeds the centroids with caller-chosen points.
type FixedIndices []int

// Init implements Initializer. The random source is ignored.
func (f FixedIndices) Init(_ *rand.Rand, n, k int) ([]int, error) {
	if len(f) != k {
		return nil, fmt.Errorf("%w: got %d indices for k=%d", ErrInvalidInit, len(f), k)
	}
	seen := make(map[int]struct{}, len(f))
	for _, i := range f {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("%w: index %d out of range [0,%d)", ErrInvalidInit, i, n)
		}
		if _, dup := seen[i]; dup {
			return nil, fmt.Errorf("%w: duplicate index %d", ErrInvalidInit, i)
		}
		seen[i] = struct{}{}
	}
	out := make([]int, len(f))
	copy(out, f)
	return out, nil
}
