// Package prometheus exports clustering metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	c, err := cosprom.NewCollector(reg)
//	clusterer := cosmeans.New(cosmeans.WithMetricsCollector(c))
package prometheus

import (
	"time"

	"github.com/hupe1980/cosmeans"
	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "cosmeans"

// Collector implements cosmeans.MetricsCollector on Prometheus metrics.
type Collector struct {
	runs          *prom.CounterVec
	runLatency    prom.Histogram
	runIterations prom.Histogram
	iterations    prom.Counter
	pointsMoved   prom.Counter
	emptyClusters prom.Counter
	iterLatency   prom.Histogram
	modelIO       *prom.CounterVec
	modelLatency  *prom.HistogramVec
}

var _ cosmeans.MetricsCollector = (*Collector)(nil)

// NewCollector creates a Collector and registers its metrics with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewCollector(reg prom.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prom.DefaultRegisterer
	}

	c := &Collector{
		runs: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Clustering runs by outcome",
		}, []string{"status"}),
		runLatency: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Latency of clustering runs",
			Buckets:   prom.DefBuckets,
		}),
		runIterations: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_iterations",
			Help:      "Iterations until a run terminated",
			Buckets:   []float64{1, 2, 5, 10, 20, 50, 100, 200, 500},
		}),
		iterations: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "iterations_total",
			Help:      "Assignment and update rounds executed",
		}),
		pointsMoved: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "points_moved_total",
			Help:      "Points that changed cluster",
		}),
		emptyClusters: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "empty_clusters_total",
			Help:      "Clusters that kept their previous centroid",
		}),
		iterLatency: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "iteration_duration_seconds",
			Help:      "Latency of a single round",
			Buckets:   prom.ExponentialBuckets(0.0001, 4, 10),
		}),
		modelIO: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "model_io_total",
			Help:      "Model saves and loads",
		}, []string{"op", "status"}),
		modelLatency: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "model_io_duration_seconds",
			Help:      "Latency of model saves and loads",
			Buckets:   prom.DefBuckets,
		}, []string{"op"}),
	}

	for _, m := range []prom.Collector{
		c.runs, c.runLatency, c.runIterations,
		c.iterations, c.pointsMoved, c.emptyClusters, c.iterLatency,
		c.modelIO, c.modelLatency,
	} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MustNewCollector is like NewCollector but panics on registration errors.
func MustNewCollector(reg prom.Registerer) *Collector {
	c, err := NewCollector(reg)
	if err != nil {
		panic(err)
	}
	return c
}

// RecordRun implements cosmeans.MetricsCollector.
func (c *Collector) RecordRun(status cosmeans.Status, iterations int, duration time.Duration, err error) {
	c.runLatency.Observe(duration.Seconds())
	if err != nil {
		c.runs.WithLabelValues("error").Inc()
		return
	}
	c.runs.WithLabelValues(status.String()).Inc()
	c.runIterations.Observe(float64(iterations))
}

// RecordIteration implements cosmeans.MetricsCollector.
func (c *Collector) RecordIteration(moved, empty int, duration time.Duration) {
	c.iterations.Inc()
	c.pointsMoved.Add(float64(moved))
	c.emptyClusters.Add(float64(empty))
	c.iterLatency.Observe(duration.Seconds())
}

// RecordModelIO implements cosmeans.MetricsCollector.
func (c *Collector) RecordModelIO(op string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.modelIO.WithLabelValues(op, status).Inc()
	c.modelLatency.WithLabelValues(op).Observe(duration.Seconds())
}
