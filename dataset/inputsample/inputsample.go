/*
Package inputsample provides raw feature values for a record that are read
from an io.Reader as they are needed.
*/
package inputsample

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

/*
ValueRequester represents a way to ask for feature values and reject the
given values.
*/
type ValueRequester interface {
	RequestValueFor(feature int) error
	RejectValueFor(feature int, value string) error
}

/*
Sample represents a record whose raw feature values are retrieved from a
reader. A feature value will be requested using a ValueRequester before
reading it.
*/
type Sample struct {
	obtainedValues map[int]float64
	featureCount   int
	scanner        *bufio.Scanner
	requester      ValueRequester
}

/*
New takes an io.Reader, a number of features and a ValueRequester and
returns a Sample.

The returned Sample ValueFor method reads feature values first requesting
them with the given ValueRequester and then parsing the values from the
reader. The parsing expects each value to be presented ending with the '\n'
character, that is in new lines. Lines will be read from the reader until a
line containing a valid float64 number is found, non accepted values being
rejected with the ValueRequester's RejectValueFor method.
*/
func New(r io.Reader, featureCount int, requester ValueRequester) *Sample {
	return &Sample{make(map[int]float64), featureCount, bufio.NewScanner(r), requester}
}

/*
ValueFor takes the index of a feature and returns the sample's value for
it, reading it if it was not read before. An error is returned if the
feature is out of range, the value cannot be requested or the reader ends
before a valid value is read.
*/
func (s *Sample) ValueFor(feature int) (float64, error) {
	if feature < 0 || feature >= s.featureCount {
		return 0, fmt.Errorf("feature %d out of range [0, %d)", feature, s.featureCount)
	}
	value, ok := s.obtainedValues[feature]
	if ok {
		return value, nil
	}
	err := s.requester.RequestValueFor(feature)
	if err != nil {
		return 0, err
	}
	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		value, err = strconv.ParseFloat(line, 64)
		if err == nil {
			s.obtainedValues[feature] = value
			return value, nil
		}
		err = s.requester.RejectValueFor(feature, line)
		if err != nil {
			return 0, err
		}
	}
	err = s.scanner.Err()
	if err != nil {
		return 0, err
	}
	return 0, fmt.Errorf("EOF when requesting value")
}

// Obtained returns the number of values read so far.
func (s *Sample) Obtained() int {
	return len(s.obtainedValues)
}
