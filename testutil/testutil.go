package testutil

import (
	"math/rand/v2"
	"sync"

	"github.com/hupe1980/cosmeans/distance"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed uint64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewPCG(seed, seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewPCG(r.seed, r.seed))
}

// Seed returns the initial seed.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// IntN returns a non-negative pseudo-random number in [0,n).
func (r *RNG) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.IntN(n)
}

// UniformPoints generates points with components in [-1, 1).
// Uses a single backing array for efficiency.
func (r *RNG) UniformPoints(num, dim int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dim)
	points := make([][]float64, num)
	for i := range num {
		p := data[i*dim : (i+1)*dim : (i+1)*dim]
		for j := range p {
			p[j] = r.rand.Float64()*2 - 1
		}
		points[i] = p
	}
	return points
}

// GaussianPoints generates points with standard normal components.
func (r *RNG) GaussianPoints(num, dim int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gaussianLocked(num, dim)
}

func (r *RNG) gaussianLocked(num, dim int) [][]float64 {
	data := make([]float64, num*dim)
	points := make([][]float64, num)
	for i := range num {
		p := data[i*dim : (i+1)*dim : (i+1)*dim]
		for j := range p {
			p[j] = r.rand.NormFloat64()
		}
		points[i] = p
	}
	return points
}

// UnitPoints generates L2-normalized points, uniform on the hypersphere.
func (r *RNG) UnitPoints(num, dim int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.unitLocked(num, dim)
}

func (r *RNG) unitLocked(num, dim int) [][]float64 {
	points := r.gaussianLocked(num, dim)
	for _, p := range points {
		for !distance.NormalizeL2InPlace(p) {
			// All-zero draw; retry.
			for j := range p {
				p[j] = r.rand.NormFloat64()
			}
		}
	}
	return points
}

// ClusteredPoints generates num points around clusters random directions
// with Gaussian noise of the given spread. Point i belongs to direction
// i % clusters, which is returned as its label.
func (r *RNG) ClusteredPoints(num, dim, clusters int, spread float64) ([][]float64, []int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	centers := r.unitLocked(clusters, dim)

	data := make([]float64, num*dim)
	points := make([][]float64, num)
	labels := make([]int, num)
	for i := range num {
		c := i % clusters
		p := data[i*dim : (i+1)*dim : (i+1)*dim]
		for j := range p {
			p[j] = centers[c][j] + r.rand.NormFloat64()*spread
		}
		points[i] = p
		labels[i] = c
	}
	return points, labels
}

// Purity is the fraction of points whose assigned cluster's majority label
// matches their own label. 1 means every cluster is label-pure.
func Purity(labels, assignments []int) float64 {
	if len(labels) == 0 || len(labels) != len(assignments) {
		return 0
	}

	counts := make(map[int]map[int]int)
	for i, a := range assignments {
		if counts[a] == nil {
			counts[a] = make(map[int]int)
		}
		counts[a][labels[i]]++
	}

	correct := 0
	for _, byLabel := range counts {
		best := 0
		for _, n := range byLabel {
			best = max(best, n)
		}
		correct += best
	}
	return float64(correct) / float64(len(labels))
}
