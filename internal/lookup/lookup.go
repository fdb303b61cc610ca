// Package lookup generates and reads the per-employer lookup table, the
// primary identity source for every other operation. The table lives next
// to the employer's schedule files as vlookup_<employer>.xlsx.
package lookup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/knd/schedrec/internal/identity"
	"github.com/knd/schedrec/internal/schema"
	"github.com/knd/schedrec/internal/tabular"
)

// ErrNotFound reports that an employer folder has no lookup table yet. The
// caller should instruct the operator to run the lookup operation first.
var ErrNotFound = errors.New("lookup table not found")

// FileName returns the lookup table file name for an employer.
func FileName(employer string) string {
	return "vlookup_" + employer + ".xlsx"
}

// PathFor returns the lookup table path for an employer folder; the folder
// base name is the employer name.
func PathFor(folder string) string {
	return filepath.Join(folder, FileName(filepath.Base(folder)))
}

// Generate filters the master report down to one employer's rows and
// reshapes them into the lookup-table schema. Identifiers are trimmed; row
// order follows the master report. An employer with no rows is an error so
// a misspelled folder name surfaces immediately.
func Generate(master *tabular.Table, ms, ls schema.SourceSchema, employer string) (*tabular.Table, error) {
	required := []string{ms.Identifier, ms.Account, ms.Account2, ms.Surname, ms.FirstName, ms.OtherNames, ms.Employer}
	if err := master.RequireColumns(ms.Role, required...); err != nil {
		return nil, err
	}

	out := tabular.New(ls.Account, ls.Surname, ls.FirstName, ls.OtherNames, ls.Identifier, ls.Account2)
	for _, row := range master.Rows {
		if row.Get(ms.Employer) != employer {
			continue
		}
		out.Append(
			row.Get(ms.Account),
			row.Get(ms.Surname),
			row.Get(ms.FirstName),
			row.Get(ms.OtherNames),
			identity.NormalizeID(row.Get(ms.Identifier)),
			row.Get(ms.Account2),
		)
	}

	if len(out.Rows) == 0 {
		return nil, fmt.Errorf("no rows for employer %q in the master report", employer)
	}
	return out, nil
}

// Read loads the employer folder's lookup table.
func Read(folder string) (*tabular.Table, error) {
	path := PathFor(folder)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return tabular.ReadFile(path)
}

// Records converts lookup-table rows into identity records for duplicate
// detection. Rows with an empty identifier are kept: a missing membership
// number can still collide on name or account.
func Records(t *tabular.Table, ls schema.SourceSchema) []identity.Record {
	records := make([]identity.Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		records = append(records, identity.Record{
			Identifier:     row.Get(ls.Identifier),
			AccountNumber:  row.Get(ls.Account),
			AccountNumber2: row.Get(ls.Account2),
			Surname:        row.Get(ls.Surname),
			FirstName:      row.Get(ls.FirstName),
			OtherNames:     row.Get(ls.OtherNames),
			Provenance:     identity.SourceLookup,
		})
	}
	return records
}
