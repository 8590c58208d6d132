package redisstore

import (
	"errors"
	"testing"

	"github.com/pbanos/id3/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *tree.Tree {
	return tree.New(tree.NewInternal(0, []*tree.Branch{
		{Value: 1, Node: tree.NewLeaf("yes", 3)},
		{Value: 2, Node: tree.NewInternal(1, []*tree.Branch{
			{Value: 0, Node: tree.NewLeaf("no", 1)},
			{Value: 4, Node: tree.NewDegenerateLeaf("yes", 2)},
		}, 3)},
	}, 6), 2)
}

func TestFlattenThenAssemble(t *testing.T) {
	h, nodes, err := flatten(sampleTree())
	require.NoError(t, err)
	assert.Equal(t, 2, h.FeatureCount)
	assert.Len(t, h.Nodes, 5)
	assert.Len(t, nodes, 5)
	assert.Equal(t, h.Nodes[0], h.Root)

	got, err := assemble(h, nodes)
	require.NoError(t, err)
	assert.Equal(t, sampleTree(), got)
}

func TestAssembleMissingNode(t *testing.T) {
	h, nodes, err := flatten(sampleTree())
	require.NoError(t, err)
	delete(nodes, h.Nodes[len(h.Nodes)-1])
	_, err = assemble(h, nodes)
	assert.Error(t, err)
}

func TestAssembleInvalidTree(t *testing.T) {
	h, nodes, err := flatten(sampleTree())
	require.NoError(t, err)
	h.FeatureCount = 1
	_, err = assemble(h, nodes)
	assert.True(t, errors.Is(err, tree.ErrInvalidTree))
}

func TestKeys(t *testing.T) {
	s := New(nil, "id3")
	assert.Equal(t, "id3:t", s.treeKey("t"))
	assert.Equal(t, "id3:t:n", s.nodeKey("t", "n"))
}
