package tree

import (
	"fmt"
	"strings"
)

// Tree represents a decision tree. It is composed of its root node and the
// number of features in the vectors it classifies.
type Tree struct {
	Root         *Node
	FeatureCount int
}

// New takes a root Node and a number of features and returns a tree
// composed of the nodes under the root.
func New(root *Node, featureCount int) *Tree {
	return &Tree{root, featureCount}
}

/*
Predict takes a feature vector and returns the prediction of the tree for
it. Starting on the root, the branch whose value equals the vector's value
for the node's feature is followed until a leaf is reached, whose class is
predicted. If at some node no branch matches, Unmatched is returned.

An error is only returned when the vector does not have the tree's number
of features.
*/
func (t *Tree) Predict(features []int) (Prediction, error) {
	if t == nil || t.Root == nil {
		return Unmatched, fmt.Errorf("nil tree cannot predict samples")
	}
	if len(features) != t.FeatureCount {
		return Unmatched, fmt.Errorf("predicting %v: %w", features, ErrFeatureCount)
	}
	return t.PredictFunc(func(feature int) (int, error) {
		return features[feature], nil
	})
}

/*
PredictFunc takes a function returning the value of a record for a feature
and returns the prediction of the tree for the record, as Predict does.
The function is only called for the features on the path followed, once per
node. An error returned by it aborts the prediction and is returned.
*/
func (t *Tree) PredictFunc(valueFor func(feature int) (int, error)) (Prediction, error) {
	if t == nil || t.Root == nil {
		return Unmatched, fmt.Errorf("nil tree cannot predict samples")
	}
	n := t.Root
	for !n.IsLeaf() {
		v, err := valueFor(n.Feature)
		if err != nil {
			return Unmatched, fmt.Errorf("obtaining value for feature %d: %v", n.Feature, err)
		}
		next, ok := n.Follow(v)
		if !ok {
			return Unmatched, nil
		}
		n = next
	}
	return Prediction{Class: n.Class, Matched: true}, nil
}

// Traverse takes a bottomup boolean and an error-returning function that
// takes a node and its depth, and goes through the tree running the
// function with every node. Traverse will call the function with a parent
// node before calling it for its children if bottomup is false, and call it
// after its children if bottomup is true. If the call to the function
// returns an error, the traversing is aborted and the error is returned.
func (t *Tree) Traverse(bottomup bool, f func(*Node, int) error) error {
	return traverse(t.Root, 0, bottomup, f)
}

func traverse(n *Node, depth int, bottomup bool, f func(*Node, int) error) error {
	var err error
	if !bottomup {
		err = f(n, depth)
	}
	if err != nil {
		return err
	}
	for _, b := range n.Branches {
		err = traverse(b.Node, depth+1, bottomup, f)
		if err != nil {
			return err
		}
	}
	if bottomup {
		err = f(n, depth)
	}
	return err
}

/*
Validate checks that every node of the tree is either a leaf without
branches or an internal node with at least one branch, that no two
branches of a node share a value, and that internal nodes split on a
feature within the tree's feature count. It returns an error wrapping
ErrInvalidTree describing the first violation found.
*/
func (t *Tree) Validate() error {
	if t.Root == nil {
		return fmt.Errorf("%w: no root node", ErrInvalidTree)
	}
	if t.FeatureCount < 1 {
		return fmt.Errorf("%w: feature count %d", ErrInvalidTree, t.FeatureCount)
	}
	return t.Traverse(false, func(n *Node, depth int) error {
		if n.IsLeaf() {
			if len(n.Branches) > 0 {
				return fmt.Errorf("%w: leaf at depth %d has %d branches", ErrInvalidTree, depth, len(n.Branches))
			}
			return nil
		}
		if len(n.Branches) == 0 {
			return fmt.Errorf("%w: internal node at depth %d has no branches", ErrInvalidTree, depth)
		}
		if n.Feature < 0 || n.Feature >= t.FeatureCount {
			return fmt.Errorf("%w: node at depth %d splits on feature %d", ErrInvalidTree, depth, n.Feature)
		}
		seen := make(map[int]bool)
		for _, b := range n.Branches {
			if b.Node == nil {
				return fmt.Errorf("%w: branch %d at depth %d has no node", ErrInvalidTree, b.Value, depth)
			}
			if seen[b.Value] {
				return fmt.Errorf("%w: node at depth %d has two branches for value %d", ErrInvalidTree, depth, b.Value)
			}
			seen[b.Value] = true
		}
		return nil
	})
}

func (t *Tree) String() string {
	return subtreeString(t.Root, "")
}

func subtreeString(n *Node, criterion string) string {
	var result string
	if criterion != "" {
		result = fmt.Sprintf("{ %s }\n", criterion)
	}
	if n.IsLeaf() {
		if n.Degenerate {
			result = fmt.Sprintf("%s{ %s (degenerate) }\n", result, n.Class)
		} else {
			result = fmt.Sprintf("%s{ %s }\n", result, n.Class)
		}
	}
	result = fmt.Sprintf("%s[ %d ]\n", result, n.Weight)
	if len(n.Branches) > 0 {
		result = fmt.Sprintf("%s|\n", result)
	} else {
		result = fmt.Sprintf("%s \n", result)
	}
	for i, b := range n.Branches {
		st := subtreeString(b.Node, fmt.Sprintf("f%d is %d", n.Feature, b.Value))
		for j, line := range strings.Split(st, "\n") {
			if len(line) > 0 {
				if j == 0 {
					result = fmt.Sprintf("%s|__%s\n", result, line)
				} else {
					if i == len(n.Branches)-1 {
						result = fmt.Sprintf("%s   %s\n", result, line)
					} else {
						result = fmt.Sprintf("%s|  %s\n", result, line)
					}
				}
			}
		}
	}
	return result
}
