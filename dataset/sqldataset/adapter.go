package sqldataset

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"

	"github.com/pbanos/id3/dataset"
)

/*
MaxRecordInsertionsPerStatement is the maximum number of records that are
added with a single insert command by the AddRecords method of an adapter.
Adding more will result in more insert commands.
*/
const MaxRecordInsertionsPerStatement = 10

/*
Adapter is an interface providing the methods needed to store and
retrieve raw records on a database.
*/
type Adapter interface {
	CreateRecordTable(ctx context.Context, featureCount int) error
	AddRecords(ctx context.Context, records []dataset.RawRecord) (int, error)
	ListRecords(ctx context.Context, featureCount int) ([]dataset.RawRecord, error)
	CountRecords(ctx context.Context) (int, error)
	Close() error
}

/*
Dialect holds what differs between the SQL understood by the supported
databases.
*/
type Dialect struct {
	// IDColumnDefinition is the definition of an auto-incremented integer
	// primary key column.
	IDColumnDefinition string
	// Placeholder returns the placeholder for the i-th (starting at 1)
	// parameter of a statement.
	Placeholder func(i int) string
}

type adapter struct {
	db      *sql.DB
	dialect Dialect
}

/*
NewAdapter takes a database handle and the dialect it speaks and returns
an Adapter working on it.
*/
func NewAdapter(db *sql.DB, d Dialect) Adapter {
	return &adapter{db, d}
}

// ColumnName returns the name of the column holding the values of the
// feature with the given index.
func ColumnName(feature int) string {
	return fmt.Sprintf("f%d", feature)
}

func (a *adapter) CreateRecordTable(ctx context.Context, featureCount int) error {
	if featureCount < 1 {
		return fmt.Errorf("no features to store")
	}
	var createStmtBuf bytes.Buffer
	createStmtBuf.WriteString(`CREATE TABLE IF NOT EXISTS records (`)
	createStmtBuf.WriteString(fmt.Sprintf(`"id" %s, "label" TEXT NOT NULL`, a.dialect.IDColumnDefinition))
	for i := 0; i < featureCount; i++ {
		createStmtBuf.WriteString(fmt.Sprintf(`, "%s" REAL NOT NULL`, ColumnName(i)))
	}
	createStmtBuf.WriteString(`)`)
	_, err := a.db.ExecContext(ctx, createStmtBuf.String())
	if err != nil {
		return fmt.Errorf("ensuring records table exists: %v", err)
	}
	return nil
}

func (a *adapter) AddRecords(ctx context.Context, records []dataset.RawRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	featureCount := len(records[0].Values)
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting transaction to add records: %v", err)
	}
	for chunkStart := 0; chunkStart < len(records); chunkStart += MaxRecordInsertionsPerStatement {
		chunkEnd := chunkStart + MaxRecordInsertionsPerStatement
		if chunkEnd > len(records) {
			chunkEnd = len(records)
		}
		chunk := records[chunkStart:chunkEnd]
		args := make([]interface{}, 0, len(chunk)*(featureCount+1))
		for i, r := range chunk {
			if len(r.Values) != featureCount {
				tx.Rollback()
				return 0, fmt.Errorf("record %d has %d features, expected %d", chunkStart+i, len(r.Values), featureCount)
			}
			args = append(args, r.Label)
			for _, v := range r.Values {
				args = append(args, v)
			}
		}
		_, err = tx.ExecContext(ctx, a.insertStatement(len(chunk), featureCount), args...)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("inserting records %d to %d: %v", chunkStart, chunkEnd, err)
		}
	}
	err = tx.Commit()
	if err != nil {
		return 0, fmt.Errorf("committing records: %v", err)
	}
	return len(records), nil
}

func (a *adapter) insertStatement(recordCount, featureCount int) string {
	var buf bytes.Buffer
	buf.WriteString(`INSERT INTO records ("label"`)
	for i := 0; i < featureCount; i++ {
		buf.WriteString(fmt.Sprintf(`, "%s"`, ColumnName(i)))
	}
	buf.WriteString(`) VALUES `)
	p := 1
	for r := 0; r < recordCount; r++ {
		if r > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("(")
		for c := 0; c <= featureCount; c++ {
			if c > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(a.dialect.Placeholder(p))
			p++
		}
		buf.WriteString(")")
	}
	return buf.String()
}

func (a *adapter) ListRecords(ctx context.Context, featureCount int) ([]dataset.RawRecord, error) {
	var queryBuf bytes.Buffer
	queryBuf.WriteString(`SELECT "label"`)
	for i := 0; i < featureCount; i++ {
		queryBuf.WriteString(fmt.Sprintf(`, "%s"`, ColumnName(i)))
	}
	queryBuf.WriteString(` FROM records ORDER BY "id"`)
	rows, err := a.db.QueryContext(ctx, queryBuf.String())
	if err != nil {
		return nil, fmt.Errorf("querying records: %v", err)
	}
	defer rows.Close()
	var result []dataset.RawRecord
	for rows.Next() {
		r := dataset.RawRecord{Values: make([]float64, featureCount)}
		dest := make([]interface{}, 0, featureCount+1)
		dest = append(dest, &r.Label)
		for i := range r.Values {
			dest = append(dest, &r.Values[i])
		}
		err = rows.Scan(dest...)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %v", err)
		}
		r.Label = dataset.CanonicalLabel(r.Label)
		result = append(result, r)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterating records: %v", err)
	}
	return result, nil
}

func (a *adapter) CountRecords(ctx context.Context) (int, error) {
	var count int
	err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting records: %v", err)
	}
	return count, nil
}

func (a *adapter) Close() error {
	return a.db.Close()
}
