package cosmeans

import (
	"context"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/hupe1980/cosmeans/distance"
	"github.com/hupe1980/cosmeans/internal/kmeans"
)

// Clusterer runs cosine k-means with a fixed set of options.
// It holds no per-run state and is safe for concurrent use.
type Clusterer struct {
	opts options
}

// New creates a Clusterer. Option values are validated when a run starts.
func New(opts ...Option) *Clusterer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Clusterer{opts: o}
}

// Cluster partitions points into k clusters using a default Clusterer.
func Cluster(ctx context.Context, points [][]float64, k int, opts ...Option) (*Result, error) {
	return New().Cluster(ctx, points, k, opts...)
}

// Cluster partitions points into k clusters. opts override the
// Clusterer's options for this call only.
//
// Invalid input fails with an error matching ErrInvalidInput before any
// iteration runs. Reaching the iteration cap is not an error: the result
// then carries StatusExhausted.
func (c *Clusterer) Cluster(ctx context.Context, points [][]float64, k int, opts ...Option) (*Result, error) {
	o := c.opts
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	res, err := c.run(ctx, &o, points, k)
	duration := time.Since(start)

	if err != nil {
		o.metricsCollector.RecordRun(0, 0, duration, err)
		o.logger.WithK(k).WithCount(len(points)).LogRun(ctx, 0, 0, duration, err)
		return nil, err
	}

	o.metricsCollector.RecordRun(res.Status, res.Iterations, duration, nil)
	o.logger.WithK(k).WithCount(len(points)).LogRun(ctx, res.Status, res.Iterations, duration, nil)
	return res, nil
}

func (c *Clusterer) run(ctx context.Context, o *options, points [][]float64, k int) (*Result, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}
	dim, err := kmeans.Validate(points, k)
	if err != nil {
		return nil, translateError(err)
	}

	release, err := o.resources.Reserve(ctx, workingSetBytes(len(points), dim, k, o.normalize))
	if err != nil {
		return nil, err
	}
	defer release()

	work := points
	if o.normalize {
		work = make([][]float64, len(points))
		for i, p := range points {
			if unit, ok := distance.NormalizeL2Copy(p); ok {
				work[i] = unit
			} else {
				work[i] = slices.Clone(p)
			}
		}
	}

	rng := o.rng
	var seed uint64
	if rng == nil {
		seed = o.seed
		if !o.seeded {
			seed = rand.Uint64()
		}
		rng = rand.New(rand.NewPCG(seed, seed))
	}

	log := o.logger
	out, err := kmeans.Run(ctx, work, kmeans.Config{
		K:             k,
		MaxIterations: o.maxIterations,
		Tolerance:     o.tolerance,
		Parallelism:   o.parallelism,
		Rand:          rng,
		Initializer:   o.initializer,
		OnIteration: func(s kmeans.IterationStats) {
			o.metricsCollector.RecordIteration(s.Moved, s.EmptyClusters, s.Duration)
			log.LogIteration(ctx, s.Iteration, s.Moved, s.EmptyClusters)
		},
	})
	if err != nil {
		return nil, translateError(err)
	}

	return newResult(out, work, seed, o.normalize), nil
}

// workingSetBytes estimates the memory a run allocates beyond its input.
func workingSetBytes(n, dim, k int, normalize bool) int64 {
	const word = 8
	bytes := int64(2*k*dim+2*n) * word
	if normalize {
		bytes += int64(n*dim) * word
	}
	return bytes
}
