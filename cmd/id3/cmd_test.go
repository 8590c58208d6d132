package main

import (
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/discretize"
	"github.com/pbanos/id3/tree"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSettings(t *testing.T) {
	s, err := parseSettings([]byte("redis: localhost:6379\ndiscretize:\n  feature_count: 3\n  bin_count: 10\n  scales:\n    0: 2\n"), defaultSettings())
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", s.Redis)
	assert.Equal(t, "id3", s.RedisPrefix)
	assert.Equal(t, discretize.Config{FeatureCount: 3, BinCount: 10, Scales: map[int]float64{0: 2}}, s.Discretize)
	assert.Equal(t, defaultSettings().Perceptron, s.Perceptron)

	_, err = parseSettings([]byte("discretize:\n  feature_count: 0\n  bin_count: 10\n"), defaultSettings())
	assert.Error(t, err)

	_, err = parseSettings([]byte("unknown: 1\n"), defaultSettings())
	assert.Error(t, err)
}

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := loadSettings("")
	require.NoError(t, err)
	assert.Equal(t, defaultSettings(), s)
}

func TestParseValues(t *testing.T) {
	values, err := parseValues("1, 2.5,-3")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5, -3}, values)

	_, err = parseValues("1,x")
	assert.EqualError(t, err, `parsing value 1: strconv.ParseFloat: parsing "x": invalid syntax`)
}

func TestSplitRecords(t *testing.T) {
	var records []dataset.RawRecord
	for i := 0; i < 100; i++ {
		records = append(records, dataset.RawRecord{Values: []float64{float64(i)}, Label: "1"})
	}
	kept, split := splitRecords(records, 0, rand.New(rand.NewSource(1)))
	assert.Equal(t, records, kept)
	assert.Empty(t, split)

	kept, split = splitRecords(records, 100, rand.New(rand.NewSource(1)))
	assert.Empty(t, kept)
	assert.Equal(t, records, split)

	kept, split = splitRecords(records, 30, rand.New(rand.NewSource(1)))
	assert.Equal(t, len(records), len(kept)+len(split))
	for i := 1; i < len(kept); i++ {
		assert.Less(t, kept[i-1].Values[0], kept[i].Values[0])
	}
}

func testServer(t *testing.T) *predictionServer {
	binner, err := discretize.New(discretize.Config{FeatureCount: 2, BinCount: 10})
	require.NoError(t, err)
	tr := tree.New(tree.NewInternal(0, []*tree.Branch{
		{Value: 1, Node: tree.NewLeaf("yes", 1)},
		{Value: 2, Node: tree.NewLeaf("no", 1)},
	}, 2), 2)
	return newPredictionServer(tr, binner, zerolog.Nop())
}

func TestPredictHandler(t *testing.T) {
	ps := testServer(t)
	reg := prometheus.NewRegistry()
	reg.MustRegister(ps.predictions)
	h := ps.routes(reg)

	cases := []struct {
		body   string
		status int
		reply  string
	}{
		{`{"values":[1,7]}`, http.StatusOK, `{"class":"yes","matched":true}`},
		{`{"values":[2.5,7]}`, http.StatusOK, `{"class":"no","matched":true}`},
		{`{"values":[5,7]}`, http.StatusOK, `{"matched":false}`},
		{`{"values":[1]}`, http.StatusBadRequest, `{"matched":false,"error":"got 1 values, expected 2"}`},
		{`{`, http.StatusBadRequest, ""},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(c.body)))
		assert.Equal(t, c.status, rec.Code, c.body)
		if c.reply != "" {
			assert.JSONEq(t, c.reply, rec.Body.String(), c.body)
		}
	}
	assert.Equal(t, float64(2), testutil.ToFloat64(ps.predictions.WithLabelValues("matched")))
	assert.Equal(t, float64(1), testutil.ToFloat64(ps.predictions.WithLabelValues("unmatched")))
	assert.Equal(t, float64(2), testutil.ToFloat64(ps.predictions.WithLabelValues("error")))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/predict", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id3_predictions_total{outcome="matched"} 2`)
}
