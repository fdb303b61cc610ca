// Package findschedule implements the search operation: it locates one
// membership number in the employer's lookup table and schedule files and
// exports the occurrences.
package findschedule

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/knd/schedrec/internal/batch"
	"github.com/knd/schedrec/internal/ctxlog"
	"github.com/knd/schedrec/internal/identity"
	"github.com/knd/schedrec/internal/lookup"
	"github.com/knd/schedrec/internal/registry"
	"github.com/knd/schedrec/internal/search"
	"github.com/knd/schedrec/internal/session"
	"github.com/knd/schedrec/internal/tabular"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the search operation.
func (m Module) Register(r *registry.Registry) {
	r.RegisterOperation(&registry.Operation{
		Name:    "search",
		Summary: "Find a membership number across the lookup table and schedule files.",
		Run:     run,
	})
}

func run(ctx context.Context, sess *session.Session) error {
	logger := ctxlog.FromContext(ctx)

	if sess.Identifier == "" {
		return errors.New("the search operation needs a membership number: pass -id")
	}

	// The lookup table leg is best-effort: searching still works in a
	// folder that has no lookup table yet.
	var lookupHits []search.Hit
	if table, err := lookup.Read(sess.Folder); err == nil {
		file := filepath.Base(lookup.PathFor(sess.Folder))
		lookupHits = search.InLookup(table, sess.Identifier, file, sess.Profile.Lookup)
	} else if !errors.Is(err, lookup.ErrNotFound) {
		return err
	} else {
		logger.Debug("No lookup table in folder, searching schedule files only.")
	}

	scheduleHits, err := search.FindIdentifier(ctx, sess.Folder, sess.Identifier,
		sess.Profile.Schedule, sess.Recursive, batch.LogProgress(ctx))
	if err != nil {
		return err
	}

	total := len(lookupHits) + len(scheduleHits)
	if total == 0 {
		fmt.Fprintf(sess.Out, "No matches for %s.\n", sess.Identifier)
		return nil
	}

	fmt.Fprintf(sess.Out, "Found %d occurrence(s) of %s:\n", total, sess.Identifier)
	for _, hit := range lookupHits {
		fmt.Fprintf(sess.Out, "  %s row %d", hit.File, hit.Row)
		if hit.Name != "" {
			fmt.Fprintf(sess.Out, "  %s", hit.Name)
		}
		if hit.Account != "" {
			fmt.Fprintf(sess.Out, "  account %s", hit.Account)
		}
		fmt.Fprintln(sess.Out)
	}
	for _, hit := range scheduleHits {
		fmt.Fprintf(sess.Out, "  %s row %d", hit.File, hit.Row)
		if hit.Name != "" {
			fmt.Fprintf(sess.Out, "  %s", hit.Name)
		}
		if hit.Salary != "" {
			fmt.Fprintf(sess.Out, "  %s", hit.Salary)
		}
		fmt.Fprintln(sess.Out)
	}

	exportPath := exportHits(sess, lookupHits, scheduleHits)
	if exportPath != "" {
		logger.Info("Search results exported.", "path", exportPath, "hits", total)
		fmt.Fprintf(sess.Out, "Results exported -> %s\n", exportPath)
	}
	return nil
}

// exportHits writes the hits next to the schedule files, lookup-table
// matches and schedule matches on separate sheets. Export failure is not
// fatal to the search itself; the hits were already printed.
func exportHits(sess *session.Session, lookupHits, scheduleHits []search.Hit) string {
	var sheets []tabular.Sheet

	if len(lookupHits) > 0 {
		t := tabular.New("File", "Row", "Name", "Accountno")
		for _, hit := range lookupHits {
			t.Append(hit.File, strconv.Itoa(hit.Row), hit.Name, hit.Account)
		}
		sheets = append(sheets, tabular.Sheet{Name: "VLOOKUP_Results", Table: t})
	}
	if len(scheduleHits) > 0 {
		t := tabular.New("File", "Row", "Name", "Salary")
		for _, hit := range scheduleHits {
			t.Append(hit.File, strconv.Itoa(hit.Row), hit.Name, hit.Salary)
		}
		sheets = append(sheets, tabular.Sheet{Name: "Schedule_Results", Table: t})
	}

	path := filepath.Join(sess.Folder, "ssnit_search_"+identity.NormalizeID(sess.Identifier)+".xlsx")
	if err := tabular.WriteSheets(path, sheets); err != nil {
		fmt.Fprintf(sess.Out, "Could not export results: %v\n", err)
		return ""
	}
	return path
}
