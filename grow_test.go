package id3

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/tree"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSeparable(t *testing.T) {
	tr, err := Build(separable(), 2)
	require.NoError(t, err)
	require.False(t, tr.Root.IsLeaf())
	assert.Equal(t, 0, tr.Root.Feature)
	require.Len(t, tr.Root.Branches, 2)
	assert.Equal(t, 0, tr.Root.Branches[0].Value)
	assert.Equal(t, tree.NewLeaf("A", 2), tr.Root.Branches[0].Node)
	assert.Equal(t, 1, tr.Root.Branches[1].Value)
	assert.Equal(t, tree.NewLeaf("B", 2), tr.Root.Branches[1].Node)

	cases := []struct {
		features []int
		want     tree.Prediction
	}{
		{[]int{0, 0}, tree.Prediction{Class: "A", Matched: true}},
		{[]int{1, 1}, tree.Prediction{Class: "B", Matched: true}},
		{[]int{2, 0}, tree.Unmatched},
	}
	for _, c := range cases {
		p, err := tr.Predict(c.features)
		require.NoError(t, err)
		assert.Equal(t, c.want, p)
	}
}

func TestBuildInvalidInput(t *testing.T) {
	cases := []struct {
		d            dataset.Dataset
		featureCount int
	}{
		{dataset.New(nil), 2},
		{separable(), 0},
		{separable(), 3},
		{records([]int{0, 0}, "A", []int{0}, "B"), 2},
	}
	for i, c := range cases {
		tr, err := Build(c.d, c.featureCount)
		assert.Nil(t, tr)
		var iie *InvalidInputError
		assert.True(t, errors.As(err, &iie), "case %d: %v", i, err)
	}
}

func TestBuildPure(t *testing.T) {
	for featureCount := 1; featureCount < 4; featureCount++ {
		fs := make([]int, featureCount)
		other := make([]int, featureCount)
		other[0] = 1
		tr, err := Build(records(fs, "X", other, "X"), featureCount)
		require.NoError(t, err)
		assert.Equal(t, tree.NewLeaf("X", 2), tr.Root)
	}
}

func TestBuildDegeneratePartition(t *testing.T) {
	var buf bytes.Buffer
	d := records(
		[]int{1, 2}, "A",
		[]int{1, 2}, "B",
		[]int{1, 2}, "B",
		[]int{0, 2}, "A",
	)
	b := NewBuilder(WithLogger(zerolog.New(&buf)))
	tr, err := b.Build(d, 2)
	require.NoError(t, err)
	require.Equal(t, 0, tr.Root.Feature)
	leaf, ok := tr.Root.Follow(1)
	require.True(t, ok)
	assert.Equal(t, tree.NewDegenerateLeaf("B", 3), leaf)
	assert.Contains(t, buf.String(), "degenerate partition")
	assert.Equal(t, Stats{Nodes: 3, Leaves: 2, DegenerateLeaves: 1, MaxDepth: 1}, b.Stats())

	tr, err = Build(records([]int{0}, "A", []int{0}, "B"), 1)
	require.NoError(t, err)
	assert.Equal(t, tree.NewDegenerateLeaf("A", 2), tr.Root)
}

func TestBuildReselectsFeatures(t *testing.T) {
	// feature 1 is selected again under both branches of feature 0
	d := records(
		[]int{0, 0}, "A",
		[]int{0, 1}, "B",
		[]int{1, 0}, "B",
		[]int{1, 1}, "A",
		[]int{1, 1}, "A",
	)
	tr, err := Build(d, 2)
	require.NoError(t, err)
	assert.NoError(t, tr.Validate())
	score, err := tree.Evaluate(tr, d)
	require.NoError(t, err)
	assert.Equal(t, d.Len(), score.Correct)
}

func TestBuildLearnsTrainingSet(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 30; i++ {
		d := consistentDataset(r, 60, 4, 3)
		tr, err := Build(d, 4)
		require.NoError(t, err)
		require.NoError(t, tr.Validate())
		score, err := tree.Evaluate(tr, d)
		require.NoError(t, err)
		assert.Equal(t, d.Len(), score.Correct, "dataset %d", i)
		assertPartitionsComplete(t, tr.Root, d)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 20; i++ {
		d := randomDataset(r, 50, 4, 3, 3)
		first, err := Build(d, 4)
		require.NoError(t, err)
		for j := 0; j < 3; j++ {
			again, err := Build(d, 4)
			require.NoError(t, err)
			assert.Equal(t, first, again)
			assert.Equal(t, BestSplitFeature(d, 4), BestSplitFeature(d, 4))
		}
	}
}

func TestBuildConcurrently(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for i := 0; i < 20; i++ {
		d := randomDataset(r, 80, 5, 4, 3)
		sb := NewBuilder()
		sequential, err := sb.Build(d, 5)
		require.NoError(t, err)
		cb := NewBuilder(WithConcurrency(true))
		concurrent, err := cb.Build(d, 5)
		require.NoError(t, err)
		assert.Equal(t, sequential, concurrent)
		assert.Equal(t, sb.Stats(), cb.Stats())
	}
}

func TestBuildWithReferenceFeatureEntropy(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	d := consistentDataset(r, 60, 4, 3)
	tr, err := Build(d, 4, WithFeatureEntropy(ReferenceFeatureEntropy))
	require.NoError(t, err)
	score, err := tree.Evaluate(tr, d)
	require.NoError(t, err)
	assert.Equal(t, d.Len(), score.Correct)
}

// consistentDataset returns a dataset whose labels encode the values of the
// first two features, so that any impure subset has a feature with positive
// gain and no degenerate partition can happen.
func consistentDataset(r *rand.Rand, n, features, values int) dataset.Dataset {
	rs := make([]dataset.Record, n)
	for i := range rs {
		fs := make([]int, features)
		for j := range fs {
			fs[j] = r.Intn(values)
		}
		rs[i] = dataset.NewRecord(fs, string(rune('A'+fs[0]*values+fs[1])))
	}
	return dataset.New(rs)
}

// assertPartitionsComplete checks that the records reaching every node are
// exactly the ones reaching its branches, none dropped nor duplicated.
func assertPartitionsComplete(t *testing.T, n *tree.Node, d dataset.Dataset) {
	assert.Equal(t, d.Len(), n.Weight)
	if n.IsLeaf() {
		return
	}
	var total int
	seen := make(map[int]bool)
	for _, b := range n.Branches {
		assert.False(t, seen[b.Value], "duplicated branch value %d", b.Value)
		seen[b.Value] = true
		sub := d.SubsetWith(n.Feature, b.Value)
		total += sub.Len()
		assertPartitionsComplete(t, b.Node, sub)
	}
	assert.Equal(t, d.Len(), total)
}
