package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/knd/schedrec/internal/ctxlog"
	"github.com/knd/schedrec/internal/session"
)

// Run resolves the configured command against the registry and executes it.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", a.config.Command)

	op, ok := a.registry.Lookup(a.config.Command)
	if !ok {
		return fmt.Errorf("unknown command %q (available: %s)",
			a.config.Command, strings.Join(a.registry.Names(), ", "))
	}

	sess := &session.Session{
		Folder:       a.config.Folder,
		MasterPath:   a.config.MasterPath,
		EmployerName: a.config.Employer,
		Identifier:   a.config.Identifier,
		Recursive:    a.config.Recursive,
		Profile:      a.profile,
		Out:          a.outW,
	}

	a.logger.Info("Running operation.", "command", op.Name, "folder", sess.Folder, "employer", sess.Employer())
	if err := op.Run(ctx, sess); err != nil {
		return fmt.Errorf("%s failed: %w", op.Name, err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
