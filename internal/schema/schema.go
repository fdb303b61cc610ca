// Package schema defines the external schema contract for every tabular
// source the engine touches: which column names mean what in the master
// report, the lookup table, and the schedule files, plus the tier
// parameters. Column names are configuration, never engine logic; a profile
// HCL file can override any of them, and the compiled-in defaults match the
// spreadsheets the pension operations team already uses.
package schema

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SourceSchema names the identity columns of one identity source. Only
// Identifier is required; the engine treats a row's other fields as absent
// when their column name is empty or missing from the file.
type SourceSchema struct {
	// Role is the source's role name ("lookup" or "master"), used in
	// error messages.
	Role string

	Identifier string
	Account    string
	Account2   string
	Surname    string
	FirstName  string
	OtherNames string

	// Employer is the column that names the employer a row belongs to.
	// Only the master report carries it; it drives lookup generation.
	Employer string
}

// ScheduleSchema names the columns of a per-employer schedule file,
// including the canonical output columns written back after annotation.
type ScheduleSchema struct {
	Identifier string
	Name       string
	Salary     string
	Account    string
	Surname    string
	FirstName  string
	OtherNames string
	Tier1      string
	Tier2      string
}

// OutputHeader returns the canonical annotated-schedule columns in their
// fixed order.
func (s ScheduleSchema) OutputHeader() []string {
	return []string{s.Account, s.Surname, s.FirstName, s.OtherNames, s.Identifier, s.Tier1, s.Tier2}
}

// TierParams holds the contribution formula parameters. Tier1 is a fixed
// amount reserved for future use; tier2 is Tier2Rate times salary.
type TierParams struct {
	Tier1     decimal.Decimal
	Tier2Rate decimal.Decimal
}

// Profile is the complete schema configuration for one run.
type Profile struct {
	Lookup   SourceSchema
	Master   SourceSchema
	Schedule ScheduleSchema
	Tiers    TierParams
}

// Default returns the profile matching the operations team's standard
// spreadsheets: the master report as exported from the administration
// system, the generated lookup table, and lower-cased schedule columns.
func Default() *Profile {
	return &Profile{
		Lookup: SourceSchema{
			Role:       "lookup",
			Identifier: "Ssnit",
			Account:    "Accountno",
			Account2:   "Accountno2",
			Surname:    "Surname",
			FirstName:  "First_Name",
			OtherNames: "Other_Names",
		},
		Master: SourceSchema{
			Role:       "master",
			Identifier: "Ssnit",
			Account:    "Client Account Number",
			Account2:   "Accountno",
			Surname:    "Surname",
			FirstName:  "First Name",
			OtherNames: "Other Names",
			Employer:   "Employer Name",
		},
		Schedule: ScheduleSchema{
			Identifier: "ssnit",
			Name:       "name",
			Salary:     "salary",
			Account:    "accountno",
			Surname:    "surname",
			FirstName:  "first_name",
			OtherNames: "other_name",
			Tier1:      "tier1",
			Tier2:      "tier2",
		},
		Tiers: TierParams{
			Tier1:     decimal.Zero,
			Tier2Rate: decimal.RequireFromString("0.05"),
		},
	}
}

func (p *Profile) validate() error {
	for _, src := range []SourceSchema{p.Lookup, p.Master} {
		if src.Identifier == "" {
			return fmt.Errorf("source %q must name an identifier column", src.Role)
		}
	}
	if p.Schedule.Identifier == "" {
		return fmt.Errorf("schedule must name an identifier column")
	}
	if p.Tiers.Tier2Rate.IsNegative() {
		return fmt.Errorf("tier2 rate must not be negative, got %s", p.Tiers.Tier2Rate)
	}
	return nil
}
