package dataset

import (
	"fmt"
)

/*
Dataset represents a read-only collection of records.

Datasets are never modified: subsetting returns a new dataset with the
records that satisfy a constraint, in the same order they had in the
original one.
*/
type Dataset struct {
	records []Record
}

/*
New takes a slice of records and returns a dataset built with them.
*/
func New(records []Record) Dataset {
	return Dataset{records}
}

// Len returns the number of records in the dataset.
func (d Dataset) Len() int {
	return len(d.records)
}

// Empty returns whether the dataset has no records.
func (d Dataset) Empty() bool {
	return len(d.records) == 0
}

// Record returns the i-th record of the dataset.
func (d Dataset) Record(i int) Record {
	return d.records[i]
}

/*
Records returns a copy of the slice of records in the dataset.
*/
func (d Dataset) Records() []Record {
	return append([]Record(nil), d.records...)
}

/*
CountLabels returns a map with the number of records in the dataset for
each label.
*/
func (d Dataset) CountLabels() map[string]int {
	result := make(map[string]int)
	for _, r := range d.records {
		result[r.Label]++
	}
	return result
}

/*
Labels returns the distinct labels in the dataset in the order they are
first found.
*/
func (d Dataset) Labels() []string {
	var result []string
	encountered := make(map[string]bool)
	for _, r := range d.records {
		if !encountered[r.Label] {
			encountered[r.Label] = true
			result = append(result, r.Label)
		}
	}
	return result
}

/*
Pure returns the label shared by every record in the dataset and true if
the dataset is class-pure. It returns an empty string and false when the
dataset is empty or has more than one distinct label.
*/
func (d Dataset) Pure() (string, bool) {
	if len(d.records) == 0 {
		return "", false
	}
	label := d.records[0].Label
	for _, r := range d.records[1:] {
		if r.Label != label {
			return "", false
		}
	}
	return label, true
}

/*
MajorityLabel returns the most frequent label in the dataset and its count.
Ties are broken in favour of the label found first. It returns an empty
string and 0 for empty datasets.
*/
func (d Dataset) MajorityLabel() (label string, count int) {
	counts := d.CountLabels()
	for _, l := range d.Labels() {
		if counts[l] > count {
			label = l
			count = counts[l]
		}
	}
	return
}

/*
FeatureValues takes a feature index and returns the distinct values the
records of the dataset take for it, in the order they are first found.
*/
func (d Dataset) FeatureValues(idx int) []int {
	var result []int
	encountered := make(map[int]bool)
	for _, r := range d.records {
		v := r.Features[idx]
		if !encountered[v] {
			encountered[v] = true
			result = append(result, v)
		}
	}
	return result
}

/*
SubsetWith takes a feature index and a value and returns the subset of
the dataset with the records whose value for the feature equals the given
one.
*/
func (d Dataset) SubsetWith(idx, value int) Dataset {
	var records []Record
	for _, r := range d.records {
		if r.Features[idx] == value {
			records = append(records, r)
		}
	}
	return Dataset{records}
}

/*
Validate takes the expected number of features per record and returns
an error describing the first record whose feature vector has a different
length, or nil if all of them agree.
*/
func (d Dataset) Validate(featureCount int) error {
	for i, r := range d.records {
		if len(r.Features) != featureCount {
			return fmt.Errorf("record %d has %d features, expected %d", i, len(r.Features), featureCount)
		}
	}
	return nil
}

func (d Dataset) String() string {
	return fmt.Sprintf("dataset{%d records}", len(d.records))
}
