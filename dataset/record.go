package dataset

import (
	"fmt"
	"strconv"
)

/*
Record represents a labeled item from which to learn, or against which to
test, a tree. Its Features are the discretized values of the item, one per
feature index, and its Label is the class it belongs to.

Records are not modified once produced by a loader.
*/
type Record struct {
	Features []int
	Label    string
}

/*
RawRecord represents a labeled item as read from a source, before its
feature values are discretized.
*/
type RawRecord struct {
	Values []float64
	Label  string
}

/*
NewRecord takes a slice of feature values and a label and returns a record
with a copy of the feature values.
*/
func NewRecord(features []int, label string) Record {
	return Record{append([]int(nil), features...), label}
}

/*
CanonicalLabel takes a label string as read from a source and returns its
canonical form: labels that parse as numbers are formatted in their
shortest representation so that 1, 1.0 and 1e0 are the same class, other
labels are returned unchanged.
*/
func CanonicalLabel(label string) string {
	f, err := strconv.ParseFloat(label, 64)
	if err != nil {
		return label
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (r Record) String() string {
	return fmt.Sprintf("[%v => %s]", r.Features, r.Label)
}
