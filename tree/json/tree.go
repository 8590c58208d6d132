package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pbanos/id3/tree"
)

type jsonTree struct {
	FeatureCount int       `json:"featureCount"`
	Root         *jsonNode `json:"root"`
}

type jsonNode struct {
	Feature    int           `json:"f,omitempty"`
	Branches   []*jsonBranch `json:"b,omitempty"`
	Class      string        `json:"c,omitempty"`
	Leaf       bool          `json:"l,omitempty"`
	Degenerate bool          `json:"d,omitempty"`
	Weight     int           `json:"w,omitempty"`
}

type jsonBranch struct {
	Value int       `json:"v"`
	Node  *jsonNode `json:"n"`
}

/*
Write takes an io.Writer and a pointer to a tree.Tree and serializes the
given tree as JSON onto the io.Writer.
A tree is serialized as a JSON object with the following fields:
* "featureCount": the number of features of the vectors the tree classifies
* "root": the root node of the tree.
Nodes are serialized recursively as objects with the following fields,
omitted when empty:
* "f": the index of the feature an internal node splits on
* "b": an array with the branches of an internal node, objects with the
  branch value on "v" and the node under it on "n"
* "c": the class predicted by a leaf
* "l": true for leaves
* "d": true for degenerate leaves
* "w": the number of training records that reached the node
An error is returned if the tree cannot be serialized or written onto the
io.Writer.
*/
func Write(w io.Writer, t *tree.Tree) error {
	if t == nil || t.Root == nil {
		return fmt.Errorf("cannot serialize a tree without root")
	}
	jt := &jsonTree{FeatureCount: t.FeatureCount, Root: encodeNode(t.Root)}
	return json.NewEncoder(w).Encode(jt)
}

/*
Read takes an io.Reader and returns the tree unmarshalled from its contents,
that are expected to be serialized as Write does. An error is returned if
the JSON cannot be read from the io.Reader, unmarshalled onto a tree or the
resulting tree is not valid.
*/
func Read(r io.Reader) (*tree.Tree, error) {
	jt := &jsonTree{}
	err := json.NewDecoder(r).Decode(jt)
	if err != nil {
		return nil, fmt.Errorf("decoding tree: %v", err)
	}
	if jt.Root == nil {
		return nil, fmt.Errorf("decoding tree: no root node available")
	}
	t := tree.New(decodeNode(jt.Root), jt.FeatureCount)
	err = t.Validate()
	if err != nil {
		return nil, fmt.Errorf("decoding tree: %w", err)
	}
	return t, nil
}

func encodeNode(n *tree.Node) *jsonNode {
	jn := &jsonNode{
		Feature:    n.Feature,
		Class:      n.Class,
		Leaf:       n.Leaf,
		Degenerate: n.Degenerate,
		Weight:     n.Weight,
	}
	for _, b := range n.Branches {
		jb := &jsonBranch{Value: b.Value}
		if b.Node != nil {
			jb.Node = encodeNode(b.Node)
		}
		jn.Branches = append(jn.Branches, jb)
	}
	return jn
}

func decodeNode(jn *jsonNode) *tree.Node {
	n := &tree.Node{
		Feature:    jn.Feature,
		Class:      jn.Class,
		Leaf:       jn.Leaf,
		Degenerate: jn.Degenerate,
		Weight:     jn.Weight,
	}
	for _, jb := range jn.Branches {
		b := &tree.Branch{Value: jb.Value}
		if jb.Node != nil {
			b.Node = decodeNode(jb.Node)
		}
		n.Branches = append(n.Branches, b)
	}
	return n
}
