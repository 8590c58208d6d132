/*
Package sqldataset reads and writes raw records on SQL databases.

Records are stored on a single table named records, with an id column
keeping their order, a label column and one REAL column per feature named
after the feature index (f0, f1, ...).

Specific databases are supported through the Adapter implementations on
the sqlite3adapter and pgadapter subpackages.
*/
package sqldataset
