/*
Package csv reads and writes raw records in CSV format.

Every row holds a record: its label on the first field followed by one
field per feature with the feature's raw numeric value. Blank lines are
ignored.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pbanos/id3/dataset"
)

/*
Read takes an io.Reader for a CSV stream and a number of features and
returns the raw records parsed from it or an error. A featureCount of 0
means that the number of features is taken from the first row, every
other row must have the same number of fields.
*/
func Read(reader io.Reader, featureCount int) ([]dataset.RawRecord, error) {
	var records []dataset.RawRecord
	err := ReadByRecord(reader, featureCount, func(_ int, r dataset.RawRecord) (bool, error) {
		records = append(records, r)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

/*
ReadByRecord takes an io.Reader for a CSV stream, a number of features and
a lambda function on an integer and a raw record that returns a boolean
value. It parses the records from the reader and for each it calls the
lambda function with its index and the record. If the lambda function
returns true, it will continue processing the next record, otherwise it
will stop. An error is returned if something goes wrong when reading the
stream, parsing a record or if the lambda returns one.
*/
func ReadByRecord(reader io.Reader, featureCount int, lambda func(int, dataset.RawRecord) (bool, error)) error {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	for i := 0; ; i++ {
		row, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading CSV: %v", err)
		}
		line, _ := r.FieldPos(0)
		if featureCount == 0 {
			featureCount = len(row) - 1
			if featureCount < 1 {
				return fmt.Errorf("parsing line %d: no feature values", line)
			}
		}
		record, err := parseRow(row, featureCount)
		if err != nil {
			return fmt.Errorf("parsing line %d: %v", line, err)
		}
		ok, err := lambda(i, record)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

/*
ReadFile takes a filepath string and a number of features, opens the file
to which the filepath points and uses Read to return the raw records in it
or an error.
*/
func ReadFile(filepath string, featureCount int) ([]dataset.RawRecord, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %v", filepath, err)
	}
	defer f.Close()
	records, err := Read(f, featureCount)
	if err != nil {
		err = fmt.Errorf("reading %s: %v", filepath, err)
	}
	return records, err
}

func parseRow(row []string, featureCount int) (dataset.RawRecord, error) {
	if len(row) != featureCount+1 {
		return dataset.RawRecord{}, fmt.Errorf("got %d feature values, expected %d", len(row)-1, featureCount)
	}
	label := strings.TrimSpace(row[0])
	if label == "" {
		return dataset.RawRecord{}, fmt.Errorf("empty label")
	}
	values := make([]float64, featureCount)
	for i, field := range row[1:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return dataset.RawRecord{}, fmt.Errorf("converting feature %d value %q to float64: %v", i, field, err)
		}
		values[i] = v
	}
	return dataset.RawRecord{Values: values, Label: dataset.CanonicalLabel(label)}, nil
}

/*
Writer writes raw records onto an io.Writer in the format Read expects.
*/
type Writer struct {
	count int
	w     *csv.Writer
}

// NewWriter takes an io.Writer and returns a Writer over it.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: csv.NewWriter(w)}
}

/*
Write takes a slice of raw records and writes them, returning the number
of records written and an error if not all of them could be.
*/
func (cw *Writer) Write(records []dataset.RawRecord) (int, error) {
	for i, r := range records {
		row := make([]string, 0, len(r.Values)+1)
		row = append(row, r.Label)
		for _, v := range r.Values {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.w.Write(row); err != nil {
			return i, fmt.Errorf("writing record: %v", err)
		}
		cw.count++
	}
	return len(records), nil
}

// Count returns the total number of records written.
func (cw *Writer) Count() int {
	return cw.count
}

// Flush ensures any buffered records are written to the underlying
// io.Writer.
func (cw *Writer) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}
