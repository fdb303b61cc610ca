// Package validate implements the validation operation: it builds the
// identity mapping from the lookup table and the master report, then
// annotates every schedule file in the employer folder in place.
package validate

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/knd/schedrec/internal/annotate"
	"github.com/knd/schedrec/internal/batch"
	"github.com/knd/schedrec/internal/ctxlog"
	"github.com/knd/schedrec/internal/fsutil"
	"github.com/knd/schedrec/internal/lookup"
	"github.com/knd/schedrec/internal/mapping"
	"github.com/knd/schedrec/internal/registry"
	"github.com/knd/schedrec/internal/session"
	"github.com/knd/schedrec/internal/tabular"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the validate operation.
func (m Module) Register(r *registry.Registry) {
	r.RegisterOperation(&registry.Operation{
		Name:    "validate",
		Summary: "Annotate schedule files with standardized identity fields and computed tiers.",
		Run:     run,
	})
}

func run(ctx context.Context, sess *session.Session) error {
	logger := ctxlog.FromContext(ctx)

	if sess.MasterPath == "" {
		return errors.New("the validate operation needs the master report: pass -master")
	}

	lookupTable, err := lookup.Read(sess.Folder)
	if err != nil {
		if errors.Is(err, lookup.ErrNotFound) {
			return fmt.Errorf("%w; run the lookup command first", err)
		}
		return err
	}
	master, err := tabular.ReadFile(sess.MasterPath)
	if err != nil {
		return err
	}

	m, err := mapping.Build(ctx, lookupTable, master, sess.Profile.Lookup, sess.Profile.Master)
	if err != nil {
		return err
	}
	logger.Info("Identity mapping built.", "records", m.Len())

	files, err := fsutil.FindScheduleFiles(sess.Folder, sess.Recursive)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(sess.Out, "No schedule files to process.")
		return nil
	}

	sched := sess.Profile.Schedule
	var unmapped []annotate.Unmapped

	op := func(ctx context.Context, path string) error {
		t, err := tabular.ReadFile(path)
		if err != nil {
			return err
		}
		if !t.HasColumn(sched.Identifier) {
			return fmt.Errorf("%w: no %q column", batch.ErrSkip, sched.Identifier)
		}

		out, fileUnmapped, err := annotate.Annotate(ctx, t, m, filepath.Base(path), sched, sess.Profile.Tiers)
		if err != nil {
			return err
		}
		if err := tabular.WriteFile(path, out); err != nil {
			return err
		}

		unmapped = append(unmapped, fileUnmapped...)
		return nil
	}

	results := batch.Run(ctx, files, op, batch.LogProgress(ctx))

	for _, res := range results {
		fmt.Fprintf(sess.Out, "%-9s  %s\n", res.Outcome, res.Path)
	}
	processed, failed, skipped := batch.Tally(results)
	fmt.Fprintf(sess.Out, "Validation complete: %d processed, %d failed, %d skipped.\n", processed, failed, skipped)

	if len(unmapped) > 0 {
		fmt.Fprintf(sess.Out, "Unmapped membership numbers (%d):\n", len(unmapped))
		for _, u := range unmapped {
			fmt.Fprintf(sess.Out, "  %s row %d: %s\n", u.File, u.Row, u.Identifier)
		}
	}
	return nil
}
