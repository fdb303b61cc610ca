// Package search locates member identifiers across an employer's schedule
// files and lookup table.
package search

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/knd/schedrec/internal/batch"
	"github.com/knd/schedrec/internal/ctxlog"
	"github.com/knd/schedrec/internal/fsutil"
	"github.com/knd/schedrec/internal/identity"
	"github.com/knd/schedrec/internal/schema"
	"github.com/knd/schedrec/internal/tabular"
)

// Hit is one occurrence of the searched identifier. Row is the 1-based
// data row within File; Name, Salary, and Account are best-effort display
// fields and empty when the source lacks them.
type Hit struct {
	File    string
	Row     int
	Name    string
	Salary  string
	Account string
}

// FindIdentifier scans the schedule files under root for a membership
// number. Files without the identifier column are passed over silently,
// matching how mixed folders are handled everywhere else. Comparison uses
// the same normalization as the mapping builder.
func FindIdentifier(ctx context.Context, root, id string, sched schema.ScheduleSchema, recursive bool, obs batch.Observer) ([]Hit, error) {
	logger := ctxlog.FromContext(ctx)
	want := identity.NormalizeID(id)

	files, err := fsutil.FindScheduleFiles(root, recursive)
	if err != nil {
		return nil, err
	}

	var hits []Hit
	for i, path := range files {
		if t, err := tabular.ReadFile(path); err != nil {
			logger.Warn("Unreadable file skipped during search.", "file", path, "error", err)
		} else if !t.HasColumn(sched.Identifier) {
			logger.Debug("File has no identifier column, skipping.", "file", path)
		} else {
			hits = append(hits, matchRows(t, want, filepath.Base(path), sched)...)
		}

		// Skipped files still count towards progress.
		if obs != nil {
			obs(i+1, len(files))
		}
	}

	return hits, nil
}

// InLookup returns the hits for an identifier within a loaded lookup
// table. Lookup rows have no salary; the hit instead carries the member's
// name and account number so a match shows who the number belongs to.
func InLookup(t *tabular.Table, id, file string, ls schema.SourceSchema) []Hit {
	want := identity.NormalizeID(id)

	var hits []Hit
	for i, row := range t.Rows {
		if identity.NormalizeID(row.Get(ls.Identifier)) != want {
			continue
		}
		hits = append(hits, Hit{
			File:    file,
			Row:     i + 1,
			Name:    displayName(row.Get(ls.Surname), row.Get(ls.FirstName), row.Get(ls.OtherNames)),
			Account: row.Get(ls.Account),
		})
	}
	return hits
}

// Collision reports one schedule file containing more than one of a set
// of colliding identifiers.
type Collision struct {
	File        string
	Identifiers []string
}

// FindCollisions scans the schedule files under root for a group of
// identifiers that share a name, reporting every file that contains two
// or more of them. A member paid twice in one month under different
// membership numbers shows up here.
func FindCollisions(ctx context.Context, root string, ids []string, sched schema.ScheduleSchema, recursive bool) ([]Collision, error) {
	logger := ctxlog.FromContext(ctx)

	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id = identity.NormalizeID(id); id != "" {
			want[id] = true
		}
	}

	files, err := fsutil.FindScheduleFiles(root, recursive)
	if err != nil {
		return nil, err
	}

	var collisions []Collision
	for _, path := range files {
		t, err := tabular.ReadFile(path)
		if err != nil {
			logger.Warn("Unreadable file skipped during collision scan.", "file", path, "error", err)
			continue
		}
		if !t.HasColumn(sched.Identifier) {
			continue
		}

		found := make(map[string]bool)
		for _, row := range t.Rows {
			if id := identity.NormalizeID(row.Get(sched.Identifier)); want[id] {
				found[id] = true
			}
		}
		if len(found) < 2 {
			continue
		}

		present := make([]string, 0, len(found))
		for id := range found {
			present = append(present, id)
		}
		sort.Strings(present)
		collisions = append(collisions, Collision{File: filepath.Base(path), Identifiers: present})
	}

	return collisions, nil
}

func matchRows(t *tabular.Table, want, file string, sched schema.ScheduleSchema) []Hit {
	var hits []Hit
	for i, row := range t.Rows {
		if identity.NormalizeID(row.Get(sched.Identifier)) != want {
			continue
		}
		hits = append(hits, Hit{
			File:   file,
			Row:    i + 1,
			Name:   row.Get(sched.Name),
			Salary: row.Get(sched.Salary),
		})
	}
	return hits
}

// displayName joins the non-empty trimmed name parts as written, without
// the upper-casing the comparison keys apply.
func displayName(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
