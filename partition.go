package id3

import (
	"github.com/pbanos/id3/dataset"
)

/*
Partition represents the split of a dataset according to the values of a
feature into groups of records sharing the same value.
*/
type Partition struct {
	Feature int
	Groups  []Group
}

/*
Group is the subset of a partitioned dataset whose records take Value for
the partition feature.
*/
type Group struct {
	Value   int
	Dataset dataset.Dataset
}

/*
NewPartition takes a dataset and a feature index and returns the partition
of the dataset for the feature. There is a group for every value that the
records of the dataset take for the feature, and only for those, in the
order in which the values are first found in the dataset.
*/
func NewPartition(d dataset.Dataset, feature int) *Partition {
	var values []int
	groups := make(map[int][]dataset.Record)
	for i := 0; i < d.Len(); i++ {
		r := d.Record(i)
		v := r.Features[feature]
		if _, ok := groups[v]; !ok {
			values = append(values, v)
		}
		groups[v] = append(groups[v], r)
	}
	p := &Partition{Feature: feature, Groups: make([]Group, 0, len(values))}
	for _, v := range values {
		p.Groups = append(p.Groups, Group{v, dataset.New(groups[v])})
	}
	return p
}

// Len returns the number of groups in the partition.
func (p *Partition) Len() int {
	return len(p.Groups)
}
