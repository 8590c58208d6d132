package discretize

import (
	"testing"

	"github.com/pbanos/id3/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	bad := []Config{
		{FeatureCount: 0, BinCount: 10},
		{FeatureCount: 2, BinCount: 0},
		{FeatureCount: 2, BinCount: 10, Scales: map[int]float64{2: 1}},
		{FeatureCount: 2, BinCount: 10, Scales: map[int]float64{1: 0}},
	}
	for i, c := range bad {
		assert.Error(t, c.Validate(), "config %d", i)
		_, err := New(c)
		assert.Error(t, err)
	}
}

func TestBinnerValue(t *testing.T) {
	b, err := New(DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 3, b.Value(0, 3.7))
	assert.Equal(t, 5, b.Value(0, 50))
	assert.Equal(t, 0, b.Value(0, 45))
	assert.Equal(t, 44, b.Value(0, -0.5))
	// scaled by 40
	assert.Equal(t, 10, b.Value(3, 0.25))
	assert.Equal(t, 39, b.Value(4, 0.99))
	assert.Equal(t, 0, b.Value(4, 1.125))
}

func TestBinnerDataset(t *testing.T) {
	b, err := New(Config{FeatureCount: 2, BinCount: 4, Scales: map[int]float64{1: 10}})
	require.NoError(t, err)
	d, err := b.Dataset([]dataset.RawRecord{
		{Values: []float64{1.5, 0.05}, Label: "1"},
		{Values: []float64{6, 0.31}, Label: "0"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, d.Len())
	assert.Equal(t, dataset.NewRecord([]int{1, 0}, "1"), d.Record(0))
	assert.Equal(t, dataset.NewRecord([]int{2, 3}, "0"), d.Record(1))

	_, err = b.Dataset([]dataset.RawRecord{{Values: []float64{1}, Label: "1"}})
	assert.EqualError(t, err, "binning record 0: got 1 values, expected 2")
}
