// Package tabular reads and writes spreadsheet files as named-column row
// sets. It is the engine's only interface to tabular data on disk: all
// higher-level packages deal in Tables and Rows and never touch the
// spreadsheet library directly.
package tabular

import (
	"fmt"
	"strings"
)

// Row is one spreadsheet row addressed by column name. Cell values are kept
// as strings; interpretation (trimming, numeric parsing) is caller policy.
type Row map[string]string

// Get returns the cell value for the given column, or "" when the column is
// absent from the row.
func (r Row) Get(column string) string {
	return r[column]
}

// Table is an in-memory spreadsheet sheet: an ordered header plus its data
// rows. The header order is preserved across a read/write round trip.
type Table struct {
	Header []string
	Rows   []Row
}

// New returns an empty table with the given header.
func New(header ...string) *Table {
	return &Table{Header: header}
}

// Append adds a data row built from cell values in header order. Extra
// values beyond the header are dropped; missing ones are left empty.
func (t *Table) Append(cells ...string) {
	row := make(Row, len(t.Header))
	for i, col := range t.Header {
		if i < len(cells) {
			row[col] = cells[i]
		}
	}
	t.Rows = append(t.Rows, row)
}

// HasColumn reports whether the header contains the given column name.
func (t *Table) HasColumn(name string) bool {
	for _, col := range t.Header {
		if col == name {
			return true
		}
	}
	return false
}

// MissingColumnError reports header columns that a source is required to
// have but does not. It is returned before any row processing begins.
type MissingColumnError struct {
	Source  string
	Columns []string
}

// Error implements the error interface.
func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("source %q is missing required columns: %s", e.Source, strings.Join(e.Columns, ", "))
}

// RequireColumns verifies that every named column exists in the table's
// header. Empty column names are ignored so optional schema fields can be
// passed through unchecked. All missing columns are reported in one error.
func (t *Table) RequireColumns(source string, columns ...string) error {
	var missing []string
	for _, col := range columns {
		if col == "" {
			continue
		}
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnError{Source: source, Columns: missing}
	}
	return nil
}
