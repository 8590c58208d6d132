/*
Package redisstore provides a store for trees backed by a redis DB.

Each node of a stored tree is kept under its own key, made of the store
prefix, the tree ID and the node ID separated by colons. The tree itself is
kept under the key made of the prefix and the tree ID with its feature count,
the ID of its root and the IDs of all its nodes.
*/
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pbanos/id3/tree"
	"gopkg.in/redis.v5"
)

// ErrTreeNotFound is returned when loading or deleting a tree that is not stored.
var ErrTreeNotFound = errors.New("tree not found")

/*
Store saves, loads and deletes trees on a redis DB.
*/
type Store struct {
	rc     *redis.Client
	prefix string
}

type header struct {
	FeatureCount int      `json:"featureCount"`
	Root         string   `json:"root"`
	Nodes        []string `json:"nodes"`
}

type storedNode struct {
	Feature    int             `json:"f,omitempty"`
	Branches   []*storedBranch `json:"b,omitempty"`
	Class      string          `json:"c,omitempty"`
	Leaf       bool            `json:"l,omitempty"`
	Degenerate bool            `json:"d,omitempty"`
	Weight     int             `json:"w,omitempty"`
}

type storedBranch struct {
	Value int    `json:"v"`
	Node  string `json:"n"`
}

// New builds a Store backed by a redis DB that uses the given key prefix.
func New(rc *redis.Client, prefix string) *Store {
	return &Store{rc, prefix}
}

/*
Save takes a context and a tree, stores the tree under a newly generated ID
and returns the ID, or an error if the tree could not be encoded or stored.
*/
func (s *Store) Save(ctx context.Context, t *tree.Tree) (string, error) {
	if t == nil || t.Root == nil {
		return "", fmt.Errorf("cannot store a tree without root")
	}
	treeID := uuid.New().String()
	h, nodes, err := flatten(t)
	if err != nil {
		return "", fmt.Errorf("storing tree: %v", err)
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	pairs := make([]interface{}, 0, 2*len(nodes)+2)
	for id, data := range nodes {
		pairs = append(pairs, s.nodeKey(treeID, id), data)
	}
	hdata, err := json.Marshal(h)
	if err != nil {
		return "", fmt.Errorf("storing tree: encoding header: %v", err)
	}
	pairs = append(pairs, s.treeKey(treeID), hdata)
	err = s.rc.MSet(pairs...).Err()
	if err != nil {
		return "", fmt.Errorf("storing tree %q in redis: %v", treeID, err)
	}
	return treeID, nil
}

/*
Load takes a context and the ID of a stored tree and returns the tree, or
ErrTreeNotFound if there is no tree with the ID, or another error if it could
not be retrieved or decoded.
*/
func (s *Store) Load(ctx context.Context, id string) (*tree.Tree, error) {
	h, err := s.header(id)
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(h.Nodes))
	for i, nid := range h.Nodes {
		keys[i] = s.nodeKey(id, nid)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	values, err := s.rc.MGet(keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("retrieving nodes of tree %q: %v", id, err)
	}
	nodes := make(map[string][]byte, len(values))
	for i, v := range values {
		data, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("retrieving node %q of tree %q: not found", h.Nodes[i], id)
		}
		nodes[h.Nodes[i]] = []byte(data)
	}
	t, err := assemble(h, nodes)
	if err != nil {
		return nil, fmt.Errorf("decoding tree %q: %w", id, err)
	}
	return t, nil
}

/*
Delete takes a context and the ID of a stored tree and removes the tree and
all its nodes from redis. ErrTreeNotFound is returned if there is no tree
with the ID.
*/
func (s *Store) Delete(ctx context.Context, id string) error {
	h, err := s.header(id)
	if err != nil {
		return err
	}
	keys := []string{s.treeKey(id)}
	for _, nid := range h.Nodes {
		keys = append(keys, s.nodeKey(id, nid))
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	err = s.rc.Del(keys...).Err()
	if err != nil {
		return fmt.Errorf("deleting tree %q from redis: %v", id, err)
	}
	return nil
}

func (s *Store) header(id string) (*header, error) {
	data, err := s.rc.Get(s.treeKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrTreeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving tree %q: %v", id, err)
	}
	h := &header{}
	err = json.Unmarshal(data, h)
	if err != nil {
		return nil, fmt.Errorf("retrieving tree %q: decoding %q: %v", id, data, err)
	}
	return h, nil
}

func (s *Store) treeKey(treeID string) string {
	return fmt.Sprintf("%s:%s", s.prefix, treeID)
}

func (s *Store) nodeKey(treeID, nodeID string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, treeID, nodeID)
}

/*
flatten takes a tree and returns its header and the encoding of every node
indexed by a newly generated node ID.
*/
func flatten(t *tree.Tree) (*header, map[string][]byte, error) {
	h := &header{FeatureCount: t.FeatureCount}
	nodes := make(map[string][]byte)
	var encode func(n *tree.Node) (string, error)
	encode = func(n *tree.Node) (string, error) {
		id := uuid.New().String()
		h.Nodes = append(h.Nodes, id)
		sn := &storedNode{
			Feature:    n.Feature,
			Class:      n.Class,
			Leaf:       n.Leaf,
			Degenerate: n.Degenerate,
			Weight:     n.Weight,
		}
		for _, b := range n.Branches {
			if b.Node == nil {
				return "", fmt.Errorf("branch %d of node %s has no node", b.Value, id)
			}
			cid, err := encode(b.Node)
			if err != nil {
				return "", err
			}
			sn.Branches = append(sn.Branches, &storedBranch{Value: b.Value, Node: cid})
		}
		data, err := json.Marshal(sn)
		if err != nil {
			return "", fmt.Errorf("encoding node %s: %v", id, err)
		}
		nodes[id] = data
		return id, nil
	}
	root, err := encode(t.Root)
	if err != nil {
		return nil, nil, err
	}
	h.Root = root
	return h, nodes, nil
}

/*
assemble takes a header and the encoded nodes of a tree indexed by their
IDs and returns the decoded tree once validated.
*/
func assemble(h *header, nodes map[string][]byte) (*tree.Tree, error) {
	visited := make(map[string]bool)
	var decode func(id string) (*tree.Node, error)
	decode = func(id string) (*tree.Node, error) {
		if visited[id] {
			return nil, fmt.Errorf("node %s is reached more than once", id)
		}
		visited[id] = true
		data, ok := nodes[id]
		if !ok {
			return nil, fmt.Errorf("node %s not found", id)
		}
		sn := &storedNode{}
		err := json.Unmarshal(data, sn)
		if err != nil {
			return nil, fmt.Errorf("decoding node %s: %v", id, err)
		}
		n := &tree.Node{
			Feature:    sn.Feature,
			Class:      sn.Class,
			Leaf:       sn.Leaf,
			Degenerate: sn.Degenerate,
			Weight:     sn.Weight,
		}
		for _, sb := range sn.Branches {
			child, err := decode(sb.Node)
			if err != nil {
				return nil, err
			}
			n.Branches = append(n.Branches, &tree.Branch{Value: sb.Value, Node: child})
		}
		return n, nil
	}
	root, err := decode(h.Root)
	if err != nil {
		return nil, err
	}
	t := tree.New(root, h.FeatureCount)
	err = t.Validate()
	if err != nil {
		return nil, err
	}
	return t, nil
}
