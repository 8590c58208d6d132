package tree

/*
Node is a node of the tree. It is either a leaf, holding the class it
predicts, or an internal node, holding the feature on which it splits and
a branch for every value of that feature observed during training.
*/
type Node struct {
	// The index of the feature whose value selects the branch to follow.
	// Only meaningful for internal nodes.
	Feature int
	// The branches under this node. Empty for leaves.
	Branches []*Branch
	// The class predicted by a leaf.
	Class string
	// Whether the node is a leaf.
	Leaf bool
	// Whether the leaf was produced because the records reaching it could
	// not be split any further while having different classes. Its class
	// is then the majority one.
	Degenerate bool
	// The number of training records that reached the node.
	Weight int
}

/*
Branch connects an internal node with the node reached when a record's
value for the internal node's feature equals the branch Value.
*/
type Branch struct {
	Value int
	Node  *Node
}

/*
NewLeaf takes a class and a weight and returns a leaf node predicting the
class.
*/
func NewLeaf(class string, weight int) *Node {
	return &Node{Class: class, Leaf: true, Weight: weight}
}

/*
NewDegenerateLeaf takes the majority class of a set of records that cannot
be split any further and their number and returns a leaf flagged as
degenerate.
*/
func NewDegenerateLeaf(class string, weight int) *Node {
	return &Node{Class: class, Leaf: true, Degenerate: true, Weight: weight}
}

/*
NewInternal takes the index of a feature, the branches for the values of
the feature and a weight and returns an internal node.
*/
func NewInternal(feature int, branches []*Branch, weight int) *Node {
	return &Node{Feature: feature, Branches: branches, Weight: weight}
}

// IsLeaf returns whether the node is a leaf.
func (n *Node) IsLeaf() bool {
	return n.Leaf
}

/*
Follow takes a feature value and returns the node under the branch with
that value and true, or nil and false if the node has no such branch.
*/
func (n *Node) Follow(value int) (*Node, bool) {
	for _, b := range n.Branches {
		if b.Value == value {
			return b.Node, true
		}
	}
	return nil, false
}
