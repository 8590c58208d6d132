package id3

import (
	"math"

	"github.com/pbanos/id3/dataset"
	"gonum.org/v1/gonum/stat"
)

// gainTolerance absorbs rounding differences between information gains
// that are mathematically equal, so that ties go to the lowest index.
const gainTolerance = 1e-12

/*
FeatureEntropyFunc is the signature of functions computing the entropy
remaining on a dataset after splitting it on a feature.
*/
type FeatureEntropyFunc func(d dataset.Dataset, feature int) float64

/*
ClassEntropy takes a dataset and returns the Shannon entropy, in bits, of
the distribution of its labels: a measure of the disinformation we have on
the class of a record that belongs to it. It is 0 for class-pure datasets.

The dataset must not be empty.
*/
func ClassEntropy(d dataset.Dataset) float64 {
	if d.Empty() {
		return 0.0
	}
	counts := d.CountLabels()
	if len(counts) == 1 {
		return 0.0
	}
	total := float64(d.Len())
	probs := make([]float64, 0, len(counts))
	for _, l := range d.Labels() {
		probs = append(probs, float64(counts[l])/total)
	}
	return stat.Entropy(probs) / math.Ln2
}

/*
FeatureEntropy takes a dataset and a feature index and returns the expected
class entropy left after splitting the dataset on the feature: the sum of
the class entropy of every group of the partition weighted by the fraction
of records in it.
*/
func FeatureEntropy(d dataset.Dataset, feature int) float64 {
	if d.Empty() {
		return 0.0
	}
	var result float64
	total := float64(d.Len())
	for _, g := range NewPartition(d, feature).Groups {
		result += float64(g.Dataset.Len()) / total * ClassEntropy(g.Dataset)
	}
	return result
}

/*
ReferenceFeatureEntropy is an alternative FeatureEntropyFunc that weights
every class of a group separately: the class entropy of every group is
added once per distinct class in the group, weighted by the fraction of the
dataset records with that class in the group. Those weights add up to the
fraction of records in the group, so the result equals FeatureEntropy
except for rounding.
*/
func ReferenceFeatureEntropy(d dataset.Dataset, feature int) float64 {
	if d.Empty() {
		return 0.0
	}
	var result float64
	total := float64(d.Len())
	for _, g := range NewPartition(d, feature).Groups {
		ge := ClassEntropy(g.Dataset)
		counts := g.Dataset.CountLabels()
		for _, l := range g.Dataset.Labels() {
			result += float64(counts[l]) / total * ge
		}
	}
	return result
}

/*
InformationGain takes a dataset and a feature index and returns the
reduction in class entropy obtained by splitting the dataset on the
feature.
*/
func InformationGain(d dataset.Dataset, feature int) float64 {
	return informationGain(d, feature, FeatureEntropy)
}

func informationGain(d dataset.Dataset, feature int, fe FeatureEntropyFunc) float64 {
	return ClassEntropy(d) - fe(d, feature)
}

/*
BestSplitFeature takes a non-empty dataset and a number of features and
returns the index in [0, featureCount) of the feature whose split yields the
greatest information gain. When several features yield the same gain the
lowest index is returned.
*/
func BestSplitFeature(d dataset.Dataset, featureCount int) int {
	return bestSplitFeature(d, featureCount, FeatureEntropy)
}

func bestSplitFeature(d dataset.Dataset, featureCount int, fe FeatureEntropyFunc) int {
	var best int
	bestGain := math.Inf(-1)
	cEntropy := ClassEntropy(d)
	for i := 0; i < featureCount; i++ {
		gain := cEntropy - fe(d, i)
		if gain > bestGain+gainTolerance {
			best = i
			bestGain = gain
		}
	}
	return best
}
