package sqlite3adapter

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/dataset/sqldataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteThenRead(t *testing.T) {
	ctx := context.Background()
	a, err := New(filepath.Join(t.TempDir(), "records.db"), 1)
	require.NoError(t, err)
	defer a.Close()

	var records []dataset.RawRecord
	for i := 0; i < 2*sqldataset.MaxRecordInsertionsPerStatement+3; i++ {
		records = append(records, dataset.RawRecord{
			Values: []float64{float64(i), float64(i) / 10, -float64(i)},
			Label:  []string{"0", "1"}[i%2],
		})
	}
	n, err := sqldataset.Write(ctx, a, records)
	require.NoError(t, err)
	assert.Equal(t, len(records), n)

	count, err := a.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(records), count)

	read, err := sqldataset.Read(ctx, a, 3)
	require.NoError(t, err)
	assert.Equal(t, records, read)

	_, err = sqldataset.Read(ctx, a, 0)
	assert.Error(t, err)
}

func TestAddRecordsRejectsMixedLengths(t *testing.T) {
	ctx := context.Background()
	a, err := New(filepath.Join(t.TempDir(), "records.db"), 1)
	require.NoError(t, err)
	defer a.Close()
	require.NoError(t, a.CreateRecordTable(ctx, 2))
	_, err = a.AddRecords(ctx, []dataset.RawRecord{
		{Values: []float64{1, 2}, Label: "1"},
		{Values: []float64{1}, Label: "0"},
	})
	assert.Error(t, err)
	count, err := a.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
