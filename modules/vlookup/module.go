// Package vlookup implements the lookup operation: it filters the master
// report down to one employer and writes the per-employer lookup table that
// every other operation joins against.
package vlookup

import (
	"context"
	"errors"
	"fmt"

	"github.com/knd/schedrec/internal/ctxlog"
	"github.com/knd/schedrec/internal/lookup"
	"github.com/knd/schedrec/internal/registry"
	"github.com/knd/schedrec/internal/session"
	"github.com/knd/schedrec/internal/tabular"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the lookup operation.
func (m Module) Register(r *registry.Registry) {
	r.RegisterOperation(&registry.Operation{
		Name:    "lookup",
		Summary: "Generate the per-employer lookup table from the master report.",
		Run:     run,
	})
}

func run(ctx context.Context, sess *session.Session) error {
	logger := ctxlog.FromContext(ctx)

	if sess.MasterPath == "" {
		return errors.New("the lookup operation needs the master report: pass -master")
	}

	master, err := tabular.ReadFile(sess.MasterPath)
	if err != nil {
		return err
	}
	logger.Debug("Master report loaded.", "rows", len(master.Rows))

	employer := sess.Employer()
	table, err := lookup.Generate(master, sess.Profile.Master, sess.Profile.Lookup, employer)
	if err != nil {
		return err
	}

	path := lookup.PathFor(sess.Folder)
	if err := tabular.WriteFile(path, table); err != nil {
		return err
	}

	logger.Info("Lookup table written.", "path", path, "records", len(table.Rows))
	fmt.Fprintf(sess.Out, "Lookup table for %s: %d records -> %s\n", employer, len(table.Rows), path)
	return nil
}
