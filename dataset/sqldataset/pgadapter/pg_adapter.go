/*
Package pgadapter provides an implementation of the Adapter interface in
the sqldataset package that works over a PostgreSQL database.
*/
package pgadapter

import (
	"database/sql"
	"fmt"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
	"github.com/pbanos/id3/dataset/sqldataset"
)

// Dialect is the SQL dialect of PostgreSQL.
var Dialect = sqldataset.Dialect{
	IDColumnDefinition: "SERIAL PRIMARY KEY",
	Placeholder:        func(i int) string { return fmt.Sprintf("$%d", i) },
}

/*
New takes a PostgreSQL database connection URL and returns an Adapter that
works on the database or an error if it fails to connect to it.
*/
func New(url string) (sqldataset.Adapter, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	err = db.Ping()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to %s: %v", url, err)
	}
	return sqldataset.NewAdapter(db, Dialect), nil
}
