package cosmeans

import (
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"

	"github.com/hupe1980/cosmeans/internal/kmeans"
	"github.com/hupe1980/cosmeans/resource"
)

const (
	// DefaultMaxIterations caps a run when WithMaxIterations is not given.
	DefaultMaxIterations = kmeans.DefaultMaxIterations

	// DefaultTolerance is the per-component convergence tolerance.
	DefaultTolerance = kmeans.DefaultTolerance
)

// Initializer picks the point indices that seed the initial centroids.
type Initializer = kmeans.Initializer

// RandomSample draws k distinct points uniformly without replacement.
// It is the default Initializer.
type RandomSample = kmeans.RandomSample

// FixedIndices seeds the centroids with the given point indices, in order.
type FixedIndices = kmeans.FixedIndices

type options struct {
	maxIterations    int
	tolerance        float64
	seed             uint64
	seeded           bool
	rng              *rand.Rand
	initializer      Initializer
	parallelism      int
	normalize        bool
	logger           *Logger
	metricsCollector MetricsCollector
	resources        *resource.Controller
}

func defaultOptions() options {
	return options{
		maxIterations:    DefaultMaxIterations,
		tolerance:        DefaultTolerance,
		parallelism:      1,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
}

// Option configures a Clusterer or a single Cluster call.
type Option func(*options)

// WithMaxIterations sets the iteration cap after which a run ends as
// StatusExhausted. Must be positive.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithTolerance sets the convergence tolerance: a run converges once every
// centroid component moved by at most tol (absolute or relative).
// 0 demands bit-exact equality. Must not be negative.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		o.tolerance = tol
	}
}

// WithSeed makes initialization reproducible. Runs with the same seed and
// the same input produce identical centroids and assignments.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
		o.rng = nil
	}
}

// WithRand uses rng for initialization. The source is consumed by the run,
// so reusing it across runs yields different initial centroids. A
// *rand.Rand is not safe for concurrent use; do not share one between
// concurrent runs.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithInitializer replaces the default RandomSample initializer.
//
// If nil is passed, RandomSample is used.
func WithInitializer(init Initializer) Option {
	return func(o *options) {
		if init == nil {
			init = RandomSample{}
		}
		o.initializer = init
	}
}

// WithParallelism spreads the assignment pass over n workers.
// n == 0 uses runtime.GOMAXPROCS(0). Results do not depend on n.
//
// Small inputs are always scored sequentially.
func WithParallelism(n int) Option {
	return func(o *options) {
		if n == 0 {
			n = runtime.GOMAXPROCS(0)
		}
		o.parallelism = n
	}
}

// WithNormalize clusters L2-normalized copies of the points.
// Cosine similarity is unaffected, but centroids become means of unit
// vectors so long vectors no longer dominate them. Zero vectors stay zero.
func WithNormalize(normalize bool) Option {
	return func(o *options) {
		o.normalize = normalize
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics sink.
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metricsCollector = m
	}
}

// WithResourceController admits runs through rc, which bounds how many
// runs execute at once and how much working memory they hold.
// Share one controller between Clusterers to bound them together.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resources = rc
	}
}

func (o *options) validate() error {
	if o.maxIterations <= 0 {
		return fmt.Errorf("%w: max iterations must be positive, got %d", ErrInvalidOption, o.maxIterations)
	}
	if o.tolerance < 0 || math.IsNaN(o.tolerance) {
		return fmt.Errorf("%w: tolerance must be non-negative, got %v", ErrInvalidOption, o.tolerance)
	}
	if o.parallelism < 0 {
		return fmt.Errorf("%w: parallelism must be non-negative, got %d", ErrInvalidOption, o.parallelism)
	}
	return nil
}
