// Package annotate applies an identity mapping to schedule rows, filling
// the standardized account/name fields and computing the contribution
// tiers. It never aborts a file over a single bad row: unparseable salaries
// become null derived values and unmapped identifiers become diagnostics.
package annotate

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/knd/schedrec/internal/ctxlog"
	"github.com/knd/schedrec/internal/identity"
	"github.com/knd/schedrec/internal/schema"
	"github.com/knd/schedrec/internal/tabular"
)

// Unmapped identifies one schedule row whose identifier has no mapping
// entry. Row is the 1-based data row number within the file.
type Unmapped struct {
	File       string
	Row        int
	Identifier string
}

// ParseAmount parses a monetary cell value, tolerating thousands separators
// and stray whitespace ("12,345.50" parses to 12345.5).
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	s = strings.ReplaceAll(s, " ", "")
	return decimal.NewFromString(s)
}

// Annotate produces the canonical annotated row set for one schedule file.
//
// Each row's identifier is normalized exactly as the mapping builder
// normalizes it. A mapped row takes every non-empty field from its mapping
// entry, keeping its own value where the entry is silent; an unmapped row
// gets blank identity fields and one Unmapped diagnostic. Tier1 is the
// configured fixed amount; tier2 is salary times the configured rate,
// stored at full precision. A salary that does not parse leaves tier2
// empty for that row and processing continues.
//
// A schedule without the identifier column fails before any row work.
func Annotate(ctx context.Context, t *tabular.Table, m *identity.Mapping, file string, sched schema.ScheduleSchema, tiers schema.TierParams) (*tabular.Table, []Unmapped, error) {
	logger := ctxlog.FromContext(ctx).With("file", file)

	if err := t.RequireColumns(file, sched.Identifier); err != nil {
		return nil, nil, err
	}

	out := tabular.New(sched.OutputHeader()...)
	var unmapped []Unmapped

	for i, row := range t.Rows {
		id := identity.NormalizeID(row.Get(sched.Identifier))

		account := strings.TrimSpace(row.Get(sched.Account))
		surname := strings.TrimSpace(row.Get(sched.Surname))
		firstName := strings.TrimSpace(row.Get(sched.FirstName))
		otherNames := strings.TrimSpace(row.Get(sched.OtherNames))

		if rec, ok := m.Get(id); ok {
			take(&account, rec.AccountNumber)
			take(&surname, rec.Surname)
			take(&firstName, rec.FirstName)
			take(&otherNames, rec.OtherNames)
		} else {
			account, surname, firstName, otherNames = "", "", "", ""
			unmapped = append(unmapped, Unmapped{File: file, Row: i + 1, Identifier: id})
		}

		tier2 := ""
		salary, err := ParseAmount(row.Get(sched.Salary))
		if err != nil {
			logger.Warn("Unparseable salary, leaving tier2 null.", "row", i+1, "value", row.Get(sched.Salary))
		} else {
			tier2 = salary.Mul(tiers.Tier2Rate).String()
		}

		out.Append(account, surname, firstName, otherNames, id, tiers.Tier1.String(), tier2)
	}

	return out, unmapped, nil
}

// take overwrites dst with src when src is non-empty.
func take(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}
