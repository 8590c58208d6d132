package id3

import (
	"sync"
	"sync/atomic"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/tree"
	"github.com/rs/zerolog"
)

/*
Builder represents the context in which trees are grown. It holds the
configuration applied to the induction and the statistics of the last tree
it built.

A Builder must not be used to build several trees at the same time.
*/
type Builder struct {
	logger         zerolog.Logger
	concurrent     bool
	featureEntropy FeatureEntropyFunc
	stats          stats
}

/*
Option configures a Builder.
*/
type Option func(*Builder)

/*
Stats summarizes the shape of a grown tree.
*/
type Stats struct {
	Nodes            int
	Leaves           int
	DegenerateLeaves int
	MaxDepth         int
}

type stats struct {
	nodes, leaves, degenerate, maxDepth int64
}

// WithLogger makes the builder log through the given logger. Degenerate
// partitions are logged at warn level, the rest at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Builder) {
		b.logger = l
	}
}

// WithConcurrency makes the builder grow sibling subtrees concurrently when
// enabled. The grown tree is the same either way.
func WithConcurrency(enabled bool) Option {
	return func(b *Builder) {
		b.concurrent = enabled
	}
}

// WithFeatureEntropy replaces the function used to compute the entropy left
// after a split, FeatureEntropy by default.
func WithFeatureEntropy(fe FeatureEntropyFunc) Option {
	return func(b *Builder) {
		b.featureEntropy = fe
	}
}

/*
NewBuilder takes a list of options and returns a Builder configured with
them.
*/
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		logger:         zerolog.Nop(),
		featureEntropy: FeatureEntropy,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

/*
Build takes a dataset, a number of features and a list of options and
returns a tree grown from the dataset with a Builder configured with the
options.
*/
func Build(d dataset.Dataset, featureCount int, opts ...Option) (*tree.Tree, error) {
	return NewBuilder(opts...).Build(d, featureCount)
}

/*
Build takes a dataset and the number of features of its records and
returns a tree that predicts the labels of the records from their features,
or an *InvalidInputError if the dataset is empty, the number of features is
below 1 or a record does not have that number of features.

The tree is grown by recursively splitting the dataset on the feature with
the highest information gain, with a branch for every value of the feature
found in the records, until the records under a branch share the same
label. Records that cannot be split any further despite having different
labels end up on a degenerate leaf predicting their majority label.
*/
func (b *Builder) Build(d dataset.Dataset, featureCount int) (*tree.Tree, error) {
	if d.Empty() {
		return nil, invalidInput("cannot grow a tree from an empty dataset")
	}
	if featureCount < 1 {
		return nil, invalidInput("feature count must be at least 1, got %d", featureCount)
	}
	if err := d.Validate(featureCount); err != nil {
		return nil, invalidInput("%v", err)
	}
	b.stats = stats{}
	b.logger.Debug().Int("records", d.Len()).Int("features", featureCount).Bool("concurrent", b.concurrent).Msg("growing tree")
	root := b.induce(d, featureCount, 0)
	t := tree.New(root, featureCount)
	s := b.Stats()
	b.logger.Debug().Int("nodes", s.Nodes).Int("leaves", s.Leaves).Int("degenerate", s.DegenerateLeaves).Int("depth", s.MaxDepth).Msg("tree grown")
	return t, nil
}

// Stats returns the statistics of the last tree built.
func (b *Builder) Stats() Stats {
	return Stats{
		Nodes:            int(atomic.LoadInt64(&b.stats.nodes)),
		Leaves:           int(atomic.LoadInt64(&b.stats.leaves)),
		DegenerateLeaves: int(atomic.LoadInt64(&b.stats.degenerate)),
		MaxDepth:         int(atomic.LoadInt64(&b.stats.maxDepth)),
	}
}

func (b *Builder) induce(d dataset.Dataset, featureCount, depth int) *tree.Node {
	b.visit(depth)
	if label, ok := d.Pure(); ok {
		atomic.AddInt64(&b.stats.leaves, 1)
		return tree.NewLeaf(label, d.Len())
	}
	idx := bestSplitFeature(d, featureCount, b.featureEntropy)
	p := NewPartition(d, idx)
	if p.Len() == 1 {
		label, _ := d.MajorityLabel()
		atomic.AddInt64(&b.stats.leaves, 1)
		atomic.AddInt64(&b.stats.degenerate, 1)
		b.logger.Warn().
			Int("depth", depth).
			Int("records", d.Len()).
			Int("feature", idx).
			Strs("labels", d.Labels()).
			Str("class", label).
			Msg("degenerate partition")
		return tree.NewDegenerateLeaf(label, d.Len())
	}
	b.logger.Debug().Int("depth", depth).Int("records", d.Len()).Int("feature", idx).Int("branches", p.Len()).Msg("splitting")
	branches := make([]*tree.Branch, p.Len())
	var wg sync.WaitGroup
	for i, g := range p.Groups {
		branches[i] = &tree.Branch{Value: g.Value}
		if label, ok := g.Dataset.Pure(); ok {
			b.visit(depth + 1)
			atomic.AddInt64(&b.stats.leaves, 1)
			branches[i].Node = tree.NewLeaf(label, g.Dataset.Len())
			continue
		}
		if !b.concurrent {
			branches[i].Node = b.induce(g.Dataset, featureCount, depth+1)
			continue
		}
		wg.Add(1)
		go func(br *tree.Branch, gd dataset.Dataset) {
			defer wg.Done()
			br.Node = b.induce(gd, featureCount, depth+1)
		}(branches[i], g.Dataset)
	}
	wg.Wait()
	return tree.NewInternal(idx, branches, d.Len())
}

func (b *Builder) visit(depth int) {
	atomic.AddInt64(&b.stats.nodes, 1)
	d := int64(depth)
	for {
		current := atomic.LoadInt64(&b.stats.maxDepth)
		if d <= current || atomic.CompareAndSwapInt64(&b.stats.maxDepth, current, d) {
			return
		}
	}
}
