package sqldataset

import (
	"context"
	"fmt"

	"github.com/pbanos/id3/dataset"
)

/*
Write takes a context, an Adapter and a slice of raw records and stores the
records on the adapter's database, creating the records table if needed.
*/
func Write(ctx context.Context, a Adapter, records []dataset.RawRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	err := a.CreateRecordTable(ctx, len(records[0].Values))
	if err != nil {
		return 0, err
	}
	return a.AddRecords(ctx, records)
}

/*
Read takes a context, an Adapter and a number of features and returns the
raw records on the adapter's database in the order they were added.
*/
func Read(ctx context.Context, a Adapter, featureCount int) ([]dataset.RawRecord, error) {
	if featureCount < 1 {
		return nil, fmt.Errorf("feature count must be at least 1, got %d", featureCount)
	}
	return a.ListRecords(ctx, featureCount)
}
