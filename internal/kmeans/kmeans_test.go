package kmeans

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/hupe1980/cosmeans/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fourPoints() [][]float64 {
	return [][]float64{
		{1, 0},
		{0.9, 0.1},
		{0, 1},
		{0.1, 0.9},
	}
}

func TestRun_FixedInit(t *testing.T) {
	ctx := context.Background()

	res, err := Run(ctx, fourPoints(), Config{
		K:           2,
		Tolerance:   DefaultTolerance,
		Initializer: FixedIndices{0, 2},
	})
	require.NoError(t, err)

	assert.Equal(t, StatusConverged, res.Status)
	assert.Equal(t, 2, res.Iterations)
	assert.Equal(t, []int{0, 0, 1, 1}, res.Assignments)
	require.Len(t, res.Centroids, 2)
	assert.InDeltaSlice(t, []float64{0.95, 0.05}, res.Centroids[0], 1e-12)
	assert.InDeltaSlice(t, []float64{0.05, 0.95}, res.Centroids[1], 1e-12)
}

func TestRun_Deterministic(t *testing.T) {
	ctx := context.Background()
	points := testutil.NewRNG(12).UniformPoints(1200, 8)

	run := func(parallelism int) *Result {
		res, err := Run(ctx, points, Config{
			K:           6,
			Tolerance:   DefaultTolerance,
			Parallelism: parallelism,
			Rand:        rand.New(rand.NewPCG(42, 42)),
		})
		require.NoError(t, err)
		return res
	}

	a := run(1)
	b := run(1)
	c := run(4)

	assert.Equal(t, a.Centroids, b.Centroids)
	assert.Equal(t, a.Assignments, b.Assignments)
	assert.Equal(t, a.Centroids, c.Centroids)
	assert.Equal(t, a.Assignments, c.Assignments)
	assert.Equal(t, a.Iterations, c.Iterations)
}

func TestRun_SeparableConverges(t *testing.T) {
	ctx := context.Background()
	points := [][]float64{
		{1, 0.01}, {0.99, 0.02}, {1, 0.03},
		{0.01, 1}, {0.02, 0.99}, {0.03, 1},
	}

	for seed := uint64(0); seed < 20; seed++ {
		res, err := Run(ctx, points, Config{
			K:         2,
			Tolerance: DefaultTolerance,
			Rand:      rand.New(rand.NewPCG(seed, seed)),
		})
		require.NoError(t, err)
		assert.Equal(t, StatusConverged, res.Status, "seed %d", seed)
		assert.LessOrEqual(t, res.Iterations, 10, "seed %d", seed)

		a := res.Assignments
		assert.Equal(t, a[0], a[1])
		assert.Equal(t, a[0], a[2])
		assert.Equal(t, a[3], a[4])
		assert.Equal(t, a[3], a[5])
		assert.NotEqual(t, a[0], a[3])
	}
}

func TestRun_Boundaries(t *testing.T) {
	ctx := context.Background()

	t.Run("KEqualsN", func(t *testing.T) {
		points := [][]float64{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
		res, err := Run(ctx, points, Config{
			K:    len(points),
			Rand: rand.New(rand.NewPCG(7, 7)),
		})
		require.NoError(t, err)
		assert.Equal(t, StatusConverged, res.Status)

		seen := map[int]bool{}
		for i, c := range res.Assignments {
			assert.False(t, seen[c], "cluster %d shared", c)
			seen[c] = true
			assert.Equal(t, points[i], res.Centroids[c])
		}
	})

	t.Run("KOne", func(t *testing.T) {
		points := [][]float64{{1, 2}, {3, 4}, {5, 0}}
		res, err := Run(ctx, points, Config{
			K:         1,
			Tolerance: DefaultTolerance,
			Rand:      rand.New(rand.NewPCG(7, 7)),
		})
		require.NoError(t, err)
		assert.Equal(t, StatusConverged, res.Status)
		assert.Equal(t, []int{0, 0, 0}, res.Assignments)
		assert.InDeltaSlice(t, []float64{3, 2}, res.Centroids[0], 1e-12)
	})
}

func TestRun_Exhausted(t *testing.T) {
	ctx := context.Background()

	res, err := Run(ctx, fourPoints(), Config{
		K:             2,
		MaxIterations: 1,
		Initializer:   FixedIndices{0, 2},
	})
	require.NoError(t, err)
	assert.Equal(t, StatusExhausted, res.Status)
	assert.Equal(t, 1, res.Iterations)
	assert.Len(t, res.Assignments, 4)
	assert.Len(t, res.Centroids, 2)
}

func TestRun_OnIteration(t *testing.T) {
	var stats []IterationStats
	_, err := Run(context.Background(), fourPoints(), Config{
		K:           2,
		Initializer: FixedIndices{0, 2},
		OnIteration: func(s IterationStats) { stats = append(stats, s) },
	})
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, 1, stats[0].Iteration)
	assert.Equal(t, 4, stats[0].Moved)
	assert.Equal(t, 0, stats[1].Moved)
}

func TestRun_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, fourPoints(), Config{K: 2, Rand: rand.New(rand.NewPCG(1, 1))})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		points [][]float64
		k      int
		check  func(t *testing.T, err error)
	}{
		{"Empty", nil, 1, func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrEmptyPoints) }},
		{"ZeroK", fourPoints(), 0, func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrInvalidK) }},
		{"NegativeK", fourPoints(), -3, func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrInvalidK) }},
		{"KTooLarge", fourPoints()[:3], 5, func(t *testing.T, err error) {
			var e *ErrTooFewPoints
			require.ErrorAs(t, err, &e)
			assert.Equal(t, 5, e.K)
			assert.Equal(t, 3, e.N)
		}},
		{"ZeroDim", [][]float64{{}, {}}, 1, func(t *testing.T, err error) {
			var e *ErrInvalidDimension
			assert.ErrorAs(t, err, &e)
		}},
		{"Mismatch", [][]float64{{1, 2}, {1, 2}, {1, 2, 3}}, 2, func(t *testing.T, err error) {
			var e *ErrDimensionMismatch
			require.ErrorAs(t, err, &e)
			assert.Equal(t, 2, e.Index)
			assert.Equal(t, 2, e.Expected)
			assert.Equal(t, 3, e.Actual)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.points, tt.k)
			tt.check(t, err)

			// Run must fail the same way without iterating.
			called := false
			_, runErr := Run(context.Background(), tt.points, Config{
				K:           tt.k,
				Rand:        rand.New(rand.NewPCG(1, 1)),
				OnIteration: func(IterationStats) { called = true },
			})
			assert.Equal(t, err, runErr)
			assert.False(t, called)
		})
	}
}

func TestAssign_TieBreak(t *testing.T) {
	centroids := [][]float64{{1, 0}, {0, 1}, {1, 0}}
	got, err := Assign(context.Background(), [][]float64{{1, 1}, {2, 0}, {0, 0}}, centroids, 1)
	require.NoError(t, err)
	// {1,1} ties between 0 and 1; {2,0} ties between 0 and 2; zero vector scores 0 everywhere.
	assert.Equal(t, []int{0, 0, 0}, got)
}

func TestAssign_ParallelCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	points := testutil.NewRNG(3).UniformPoints(2048, 4)
	_, err := Assign(ctx, points, points[:3], 8)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUpdate_EmptyClusterKeepsCentroid(t *testing.T) {
	points := [][]float64{{1, 0}, {3, 0}}
	prev := [][]float64{{9, 9}, {7, 7}}
	got := Update(points, []int{0, 0}, prev)
	assert.Equal(t, [][]float64{{2, 0}, {7, 7}}, got)
	assert.Equal(t, [][]float64{{9, 9}, {7, 7}}, prev, "previous centroids must not change")
}

func TestConverged(t *testing.T) {
	a := [][]float64{{1, 2}, {3, 4}}
	assert.True(t, Converged(a, [][]float64{{1, 2}, {3, 4}}, 0))
	assert.False(t, Converged(a, [][]float64{{1, 2}, {3, 4 + 1e-12}}, 0))
	assert.True(t, Converged(a, [][]float64{{1, 2}, {3, 4 + 1e-12}}, 1e-9))
	assert.False(t, Converged(a, [][]float64{{1, 2}, {3, 4.1}}, 1e-9))
	assert.False(t, Converged(a, a[:1], 1e-9))
}

func TestInitializers(t *testing.T) {
	t.Run("RandomSampleDistinct", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(5, 5))
		for range 50 {
			idx, err := RandomSample{}.Init(rng, 10, 10)
			require.NoError(t, err)
			assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, idx)
		}
	})

	t.Run("RandomSampleNeedsRand", func(t *testing.T) {
		_, err := RandomSample{}.Init(nil, 3, 2)
		assert.ErrorIs(t, err, ErrInvalidInit)
	})

	t.Run("FixedIndices", func(t *testing.T) {
		idx, err := FixedIndices{2, 0}.Init(nil, 3, 2)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 0}, idx)

		for _, bad := range []FixedIndices{{0}, {0, 3}, {-1, 0}, {1, 1}} {
			_, err := bad.Init(nil, 3, 2)
			assert.ErrorIs(t, err, ErrInvalidInit, "%v", bad)
		}
	})
}

func TestRanked(t *testing.T) {
	centroids := [][]float64{{1, 0}, {0, 1}, {1, 1}}

	assert.Equal(t, []int{0, 2, 1}, Ranked([]float64{1, 0.1}, centroids, 3))
	assert.Equal(t, []int{1}, Ranked([]float64{0, 5}, centroids, 1))
	assert.Len(t, Ranked([]float64{0, 5}, centroids, 10), 3)
	assert.Nil(t, Ranked([]float64{0, 5}, centroids, 0))
}

func TestCohesion(t *testing.T) {
	points := [][]float64{{1, 0}, {0, 1}}
	assert.InDelta(t, 1.0, Cohesion(points, points, []int{0, 1}), 1e-12)
	assert.InDelta(t, 0.0, Cohesion(points, points, []int{1, 0}), 1e-12)
	assert.Equal(t, 0.0, Cohesion(nil, nil, nil))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "converged", StatusConverged.String())
	assert.Equal(t, "exhausted", StatusExhausted.String())
	assert.Equal(t, "unknown", Status(0).String())
}
