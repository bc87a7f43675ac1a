// Package store provides the tabular storage contract the ingestion pipeline
// consumes: named tables with a header row, whole-table reads, appends that
// report the new row's position, and point updates of single cells.
package store

import "errors"

// ErrTableNotFound reports a structurally missing table. Callers treat it as
// fatal for the whole operation, not as a per-submission validation error.
var ErrTableNotFound = errors.New("store: table not found")

// Store is a named-table store. Row numbers are 1-based and include the
// header, so the first data row is row 2 (spreadsheet convention). The
// position returned by Append exists to satisfy the contract; record IDs are
// allocated independently of storage position.
type Store interface {
	// Read returns a table's header and data rows.
	Read(table string) (header []string, rows [][]string, err error)

	// Append adds one data row and returns its row number.
	Append(table string, row []string) (rowNum int, err error)

	// UpdateCell overwrites a single cell. col is 0-based.
	UpdateCell(table string, rowNum, col int, value string) error

	// Create makes an empty table with the given header. Creating a table
	// that already exists is an error.
	Create(table string, header []string) error

	// Exists reports whether a table is present.
	Exists(table string) bool
}
