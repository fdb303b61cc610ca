// Package appendtotal implements the append-total operation: each
// processed schedule file is renamed so its name carries the tier2
// column's sum.
package appendtotal

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/knd/schedrec/internal/batch"
	"github.com/knd/schedrec/internal/fsutil"
	"github.com/knd/schedrec/internal/registry"
	"github.com/knd/schedrec/internal/session"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the append-total operation.
func (m Module) Register(r *registry.Registry) {
	r.RegisterOperation(&registry.Operation{
		Name:    "append-total",
		Summary: "Rename schedule files to carry the tier2 sum in the file name.",
		Run:     run,
	})
}

func run(ctx context.Context, sess *session.Session) error {
	all, err := fsutil.FindScheduleFiles(sess.Folder, sess.Recursive)
	if err != nil {
		return err
	}

	// Files already renamed by a previous run carry the total in their
	// base name and are not processed again.
	var files []string
	for _, path := range all {
		if !fsutil.HasAppendedTotal(filepath.Base(path)) {
			files = append(files, path)
		}
	}
	if len(files) == 0 {
		fmt.Fprintln(sess.Out, "No schedule files to process.")
		return nil
	}

	results := batch.Run(ctx, files, batch.AppendTotal(sess.Profile.Schedule), batch.LogProgress(ctx))

	for _, res := range results {
		fmt.Fprintf(sess.Out, "%-9s  %s\n", res.Outcome, res.Path)
		if res.Err != nil {
			fmt.Fprintf(sess.Out, "           %v\n", res.Err)
		}
	}
	processed, failed, _ := batch.Tally(results)
	fmt.Fprintf(sess.Out, "Append total complete: %d of %d file(s) processed", processed, len(files))
	if failed > 0 {
		fmt.Fprintf(sess.Out, ", %d failed", failed)
	}
	fmt.Fprintln(sess.Out, ".")
	return nil
}
