package cosmeans_test

import (
	"context"
	"testing"

	"github.com/hupe1980/cosmeans"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModel(t *testing.T) {
	src := [][]float64{{1, 0}, {0, 1}, {1, 1}}
	m, err := cosmeans.NewModel(src)
	require.NoError(t, err)

	assert.Equal(t, 3, m.K())
	assert.Equal(t, 2, m.Dimension())
	assert.Equal(t, cosmeans.Status(0), m.Status())

	src[0][0] = 99
	assert.Equal(t, []float64{1, 0}, m.Centroid(0), "centroids are copied")

	c := m.Centroids()
	c[1][1] = 99
	assert.Equal(t, []float64{0, 1}, m.Centroid(1))
	assert.Nil(t, m.Centroid(3))

	_, err = cosmeans.NewModel(nil)
	assert.ErrorIs(t, err, cosmeans.ErrInvalidInput)

	_, err = cosmeans.NewModel([][]float64{{}})
	assert.ErrorIs(t, err, cosmeans.ErrInvalidInput)

	_, err = cosmeans.NewModel([][]float64{{1, 2}, {1}})
	var derr *cosmeans.ErrDimensionMismatch
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, 1, derr.Index)
}

func TestModel_Predict(t *testing.T) {
	m, err := cosmeans.NewModel([][]float64{{1, 0}, {0, 1}, {1, 0}})
	require.NoError(t, err)

	c, err := m.Predict([]float64{5, 0.1})
	require.NoError(t, err)
	assert.Equal(t, 0, c, "tie between 0 and 2 goes to the lower index")

	c, err = m.Predict([]float64{0.1, 5})
	require.NoError(t, err)
	assert.Equal(t, 1, c)

	c, err = m.Predict([]float64{0, 0})
	require.NoError(t, err)
	assert.Equal(t, 0, c)

	_, err = m.Predict([]float64{1, 2, 3})
	assert.ErrorIs(t, err, cosmeans.ErrInvalidInput)
}

func TestModel_PredictBatch(t *testing.T) {
	m, err := cosmeans.NewModel([][]float64{{1, 0}, {0, 1}})
	require.NoError(t, err)

	points := randomPoints(8, 1500, 2)
	seq, err := m.PredictBatch(context.Background(), points, 1)
	require.NoError(t, err)
	par, err := m.PredictBatch(context.Background(), points, 4)
	require.NoError(t, err)
	assert.Equal(t, seq, par)

	for i, p := range points {
		want, _ := m.Predict(p)
		assert.Equal(t, want, seq[i])
	}

	_, err = m.PredictBatch(context.Background(), [][]float64{{1, 0}, {1}}, 1)
	var derr *cosmeans.ErrDimensionMismatch
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, 1, derr.Index)
}

func TestModel_Nearest(t *testing.T) {
	m, err := cosmeans.NewModel([][]float64{{1, 0}, {0, 1}, {1, 1}})
	require.NoError(t, err)

	got, err := m.Nearest([]float64{1, 0.1}, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, got)

	got, err = m.Nearest([]float64{1, 0.1}, 10)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 1}, got)

	_, err = m.Nearest([]float64{1}, 1)
	assert.Error(t, err)
}

func TestResult_Model(t *testing.T) {
	res, err := cosmeans.Cluster(context.Background(), examplePoints(), 2,
		cosmeans.WithInitializer(cosmeans.FixedIndices{0, 2}),
	)
	require.NoError(t, err)

	m := res.Model()
	assert.Equal(t, cosmeans.StatusConverged, m.Status())
	assert.Equal(t, res.Iterations, m.Iterations())
	assert.Equal(t, res.Cohesion, m.Cohesion())
	assert.False(t, m.Normalized())

	res.Centroids[0][0] = 42
	assert.NotEqual(t, 42.0, m.Centroid(0)[0])

	for i, p := range examplePoints() {
		c, err := m.Predict(p)
		require.NoError(t, err)
		assert.Equal(t, res.Assignments[i], c)
	}
}
