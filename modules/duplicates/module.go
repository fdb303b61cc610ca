// Package duplicates implements the duplicates operation: it checks the
// employer's lookup table for colliding membership numbers, names, and
// account numbers, cross-checks name collisions against the schedule
// files, and exports a multi-sheet analysis file.
package duplicates

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/knd/schedrec/internal/ctxlog"
	"github.com/knd/schedrec/internal/dedup"
	"github.com/knd/schedrec/internal/identity"
	"github.com/knd/schedrec/internal/lookup"
	"github.com/knd/schedrec/internal/registry"
	"github.com/knd/schedrec/internal/schema"
	"github.com/knd/schedrec/internal/search"
	"github.com/knd/schedrec/internal/session"
	"github.com/knd/schedrec/internal/tabular"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the duplicates operation.
func (m Module) Register(r *registry.Registry) {
	r.RegisterOperation(&registry.Operation{
		Name:    "duplicates",
		Summary: "Find duplicate identifiers, names, and account numbers in the lookup table.",
		Run:     run,
	})
}

func run(ctx context.Context, sess *session.Session) error {
	logger := ctxlog.FromContext(ctx)

	table, err := lookup.Read(sess.Folder)
	if err != nil {
		if errors.Is(err, lookup.ErrNotFound) {
			return fmt.Errorf("%w; run the lookup command first", err)
		}
		return err
	}

	records := lookup.Records(table, sess.Profile.Lookup)
	logger.Debug("Lookup table loaded for duplicate check.", "records", len(records))

	checks := []struct {
		sheet    string
		keyLabel string
		key      dedup.KeyFunc
	}{
		{"Ssnit_Duplicates", "Ssnit", dedup.ByIdentifier},
		{"Name_Duplicates", "SortedFullName", dedup.BySortedName},
		{"FullName_Duplicates", "FullName", dedup.ByFoldedName},
		{"Account_Duplicates", "Accountno", dedup.ByAccount},
	}

	var sheets []tabular.Sheet
	var nameGroups []dedup.Group
	total := 0
	for _, check := range checks {
		groups := dedup.Find(records, check.key)
		fmt.Fprintf(sess.Out, "%s: %d group(s)\n", check.sheet, len(groups))
		if check.keyLabel == "SortedFullName" {
			nameGroups = groups
		}
		if len(groups) == 0 {
			continue
		}
		total += len(groups)
		sheets = append(sheets, tabular.Sheet{
			Name:  check.sheet,
			Table: groupTable(groups, check.keyLabel, sess.Profile.Lookup),
		})
	}

	if total == 0 {
		fmt.Fprintln(sess.Out, "No duplicates found.")
		return nil
	}

	// A name shared by two membership numbers matters most when both
	// numbers appear on the same schedule: someone may be paid twice.
	findings, err := scanSchedules(ctx, sess, nameGroups)
	if err != nil {
		return err
	}
	if findings != nil {
		sheets = append(sheets, tabular.Sheet{Name: "Schedule_Findings", Table: findings})
	}

	path := filepath.Join(sess.Folder, "duplicate_analysis_"+sess.Employer()+".xlsx")
	if err := tabular.WriteSheets(path, sheets); err != nil {
		return err
	}

	logger.Info("Duplicate analysis written.", "path", path, "groups", total)
	fmt.Fprintf(sess.Out, "Duplicate analysis -> %s\n", path)
	return nil
}

// scanSchedules cross-checks each duplicate-name group against the
// schedule files: a file carrying two or more of a group's membership
// numbers is reported. Returns nil when there is nothing to report.
func scanSchedules(ctx context.Context, sess *session.Session, nameGroups []dedup.Group) (*tabular.Table, error) {
	sched := sess.Profile.Schedule
	var findings *tabular.Table

	for _, group := range nameGroups {
		ids := groupIdentifiers(group)
		if len(ids) < 2 {
			continue
		}

		collisions, err := search.FindCollisions(ctx, sess.Folder, ids, sched, sess.Recursive)
		if err != nil {
			return nil, err
		}
		if len(collisions) == 0 {
			fmt.Fprintf(sess.Out, "%s: no schedule file carries more than one of its membership numbers\n", group.Key)
			continue
		}

		if findings == nil {
			findings = tabular.New("SortedFullName", "File", "Ssnit_Numbers")
		}
		for _, c := range collisions {
			fmt.Fprintf(sess.Out, "%s: %s carries %s\n", group.Key, c.File, strings.Join(c.Identifiers, ", "))
			findings.Append(group.Key, c.File, strings.Join(c.Identifiers, ", "))
		}
	}

	return findings, nil
}

// groupIdentifiers returns the distinct normalized membership numbers of
// one duplicate group.
func groupIdentifiers(group dedup.Group) []string {
	seen := make(map[string]bool, len(group.Records))
	var ids []string
	for _, rec := range group.Records {
		id := identity.NormalizeID(rec.Identifier)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// groupTable flattens duplicate groups into an export sheet, one row per
// record. The normalized key gets its own leading column unless it would
// shadow one of the record columns.
func groupTable(groups []dedup.Group, keyLabel string, ls schema.SourceSchema) *tabular.Table {
	recordCols := []string{ls.Identifier, ls.Account, ls.Surname, ls.FirstName, ls.OtherNames, ls.Account2}
	keyed := !slices.Contains(recordCols, keyLabel)

	header := recordCols
	if keyed {
		header = append([]string{keyLabel}, recordCols...)
	}

	t := tabular.New(header...)
	for _, group := range groups {
		for _, rec := range group.Records {
			cells := []string{rec.Identifier, rec.AccountNumber, rec.Surname, rec.FirstName, rec.OtherNames, rec.AccountNumber2}
			if keyed {
				cells = append([]string{group.Key}, cells...)
			}
			t.Append(cells...)
		}
	}
	return t
}
