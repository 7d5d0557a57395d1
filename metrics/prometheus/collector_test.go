package prometheus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hupe1980/cosmeans"
	prom "github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T, reg *prom.Registry) map[string]*dto.MetricFamily {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.MetricFamily, len(mfs))
	for _, mf := range mfs {
		out[mf.GetName()] = mf
	}
	return out
}

func counterWithLabels(mf *dto.MetricFamily, labels map[string]string) float64 {
	for _, m := range mf.GetMetric() {
		match := true
		for _, lp := range m.GetLabel() {
			if v, ok := labels[lp.GetName()]; ok && v != lp.GetValue() {
				match = false
			}
		}
		if match {
			return m.GetCounter().GetValue()
		}
	}
	return -1
}

func TestCollector_Record(t *testing.T) {
	reg := prom.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	c.RecordRun(cosmeans.StatusConverged, 4, time.Millisecond, nil)
	c.RecordRun(cosmeans.StatusExhausted, 100, time.Millisecond, nil)
	c.RecordRun(0, 0, time.Microsecond, errors.New("boom"))
	c.RecordIteration(7, 1, time.Microsecond)
	c.RecordIteration(0, 0, time.Microsecond)
	c.RecordModelIO("save", time.Millisecond, nil)
	c.RecordModelIO("load", time.Millisecond, errors.New("missing"))

	mfs := gather(t, reg)

	runs := mfs["cosmeans_runs_total"]
	require.NotNil(t, runs)
	assert.Equal(t, 1.0, counterWithLabels(runs, map[string]string{"status": "converged"}))
	assert.Equal(t, 1.0, counterWithLabels(runs, map[string]string{"status": "exhausted"}))
	assert.Equal(t, 1.0, counterWithLabels(runs, map[string]string{"status": "error"}))

	assert.Equal(t, 2.0, mfs["cosmeans_iterations_total"].GetMetric()[0].GetCounter().GetValue())
	assert.Equal(t, 7.0, mfs["cosmeans_points_moved_total"].GetMetric()[0].GetCounter().GetValue())
	assert.Equal(t, 1.0, mfs["cosmeans_empty_clusters_total"].GetMetric()[0].GetCounter().GetValue())
	assert.Equal(t, uint64(3), mfs["cosmeans_run_duration_seconds"].GetMetric()[0].GetHistogram().GetSampleCount())
	assert.Equal(t, uint64(2), mfs["cosmeans_run_iterations"].GetMetric()[0].GetHistogram().GetSampleCount())

	io := mfs["cosmeans_model_io_total"]
	assert.Equal(t, 1.0, counterWithLabels(io, map[string]string{"op": "save", "status": "success"}))
	assert.Equal(t, 1.0, counterWithLabels(io, map[string]string{"op": "load", "status": "error"}))
}

func TestCollector_DuplicateRegistration(t *testing.T) {
	reg := prom.NewRegistry()
	_, err := NewCollector(reg)
	require.NoError(t, err)

	_, err = NewCollector(reg)
	assert.Error(t, err)
	assert.Panics(t, func() { MustNewCollector(reg) })
}

func TestCollector_WithClusterer(t *testing.T) {
	reg := prom.NewRegistry()
	c := MustNewCollector(reg)

	points := [][]float64{{1, 0}, {0.9, 0.1}, {0, 1}, {0.1, 0.9}}
	res, err := cosmeans.Cluster(context.Background(), points, 2,
		cosmeans.WithInitializer(cosmeans.FixedIndices{0, 2}),
		cosmeans.WithMetricsCollector(c),
	)
	require.NoError(t, err)

	mfs := gather(t, reg)
	assert.Equal(t, 1.0, counterWithLabels(mfs["cosmeans_runs_total"], map[string]string{"status": "converged"}))
	assert.Equal(t, float64(res.Iterations), mfs["cosmeans_iterations_total"].GetMetric()[0].GetCounter().GetValue())
}
