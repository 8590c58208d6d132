package perceptron

import (
	"testing"

	"github.com/pbanos/id3/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSamples(t *testing.T) {
	samples, err := Samples([]dataset.RawRecord{
		{Values: []float64{1, 2}, Label: "1"},
		{Values: []float64{3, 4}, Label: "0.0"},
	})
	require.NoError(t, err)
	assert.Equal(t, []Sample{{Values: []float64{1, 2}, Label: 1}, {Values: []float64{3, 4}, Label: 0}}, samples)

	_, err = Samples([]dataset.RawRecord{{Values: []float64{1}, Label: "yes"}})
	assert.EqualError(t, err, `record 0: label "yes" is not a number`)

	_, err = Samples([]dataset.RawRecord{{Values: []float64{1}, Label: "1"}, {Values: []float64{1, 2}, Label: "1"}})
	assert.EqualError(t, err, "record 1 has 2 values, expected 1")
}

func TestNormalize(t *testing.T) {
	samples, n := Normalize([]Sample{
		{Values: []float64{0, 7}, Label: 0},
		{Values: []float64{10, 7}, Label: 1},
		{Values: []float64{20, 7}, Label: 1},
	})
	assert.Equal(t, []float64{10, 7}, n.Means)
	assert.Equal(t, []float64{20, 0}, n.Ranges)
	assert.Equal(t, []Sample{
		{Values: []float64{-0.5, 0}, Label: 0},
		{Values: []float64{0, 0}, Label: 1},
		{Values: []float64{0.5, 0}, Label: 1},
	}, samples)

	applied := n.Apply([]Sample{{Values: []float64{30, 1}, Label: 1}})
	assert.Equal(t, []Sample{{Values: []float64{1, 0}, Label: 1}}, applied)

	empty, _ := Normalize(nil)
	assert.Empty(t, empty)
}

func TestTrainSeparable(t *testing.T) {
	samples := []Sample{
		{Values: []float64{-1}, Label: 0},
		{Values: []float64{-0.9}, Label: 0},
		{Values: []float64{0.9}, Label: 1},
		{Values: []float64{1}, Label: 1},
	}
	m, err := Train(samples, DefaultConfig())
	require.NoError(t, err)
	correct, wrong := m.Evaluate(samples)
	assert.Equal(t, 4, correct)
	assert.Equal(t, 0, wrong)
	assert.Equal(t, float64(1), m.Classify([]float64{2}))
	assert.Equal(t, float64(0), m.Classify([]float64{-2}))
}

func TestTrainDeterministic(t *testing.T) {
	samples := []Sample{
		{Values: []float64{-0.2, 0.4}, Label: 0},
		{Values: []float64{0.3, -0.1}, Label: 1},
		{Values: []float64{0.1, 0.1}, Label: 0},
	}
	cfg := DefaultConfig()
	cfg.Iterations = 50
	a, err := Train(samples, cfg)
	require.NoError(t, err)
	b, err := Train(samples, cfg)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTrainErrors(t *testing.T) {
	_, err := Train(nil, DefaultConfig())
	assert.Error(t, err)

	_, err = Train([]Sample{{Values: []float64{1}}, {Values: []float64{1, 2}}}, DefaultConfig())
	assert.EqualError(t, err, "sample 1 has 2 values, expected 1")

	cfg := DefaultConfig()
	cfg.Iterations = -1
	_, err = Train([]Sample{{Values: []float64{1}}}, cfg)
	assert.Error(t, err)
}

func TestZeroIterations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Iterations = 0
	m, err := Train([]Sample{{Values: []float64{1, 1}}}, cfg)
	require.NoError(t, err)
	assert.Equal(t, []float64{initialWeight, initialWeight}, m.Weights)
}
