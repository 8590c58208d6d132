package tree

import (
	"fmt"

	"github.com/pbanos/id3/dataset"
)

/*
Score holds the outcome of testing a tree against a dataset: the number of
records whose class was predicted correctly, the number predicted wrongly
and the number the tree could not classify.
*/
type Score struct {
	Correct   int
	Wrong     int
	Unmatched int
}

// Total returns the number of records the score was computed over.
func (s Score) Total() int {
	return s.Correct + s.Wrong + s.Unmatched
}

/*
Accuracy returns the ratio of correct predictions over all tested records,
counting unmatched records as failures. It returns 0 for an empty score.
*/
func (s Score) Accuracy() float64 {
	if s.Total() == 0 {
		return 0.0
	}
	return float64(s.Correct) / float64(s.Total())
}

func (s Score) String() string {
	return fmt.Sprintf("correct=%d wrong=%d unmatched=%d", s.Correct, s.Wrong, s.Unmatched)
}

/*
Evaluate takes a tree and a dataset and returns the Score of the tree
predicting the labels of the dataset records, or an error if a record
cannot be fed to the tree.
*/
func Evaluate(t *Tree, d dataset.Dataset) (Score, error) {
	var s Score
	for i := 0; i < d.Len(); i++ {
		r := d.Record(i)
		p, err := t.Predict(r.Features)
		if err != nil {
			return Score{}, fmt.Errorf("testing tree with record %d: %v", i, err)
		}
		switch {
		case !p.Matched:
			s.Unmatched++
		case p.Class == r.Label:
			s.Correct++
		default:
			s.Wrong++
		}
	}
	return s, nil
}
