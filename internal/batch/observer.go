package batch

import (
	"context"

	"github.com/knd/schedrec/internal/ctxlog"
)

// LogProgress returns an Observer that reports "done of total" progress
// through the context logger.
func LogProgress(ctx context.Context) Observer {
	logger := ctxlog.FromContext(ctx)
	return func(done, total int) {
		logger.Info("Progress.", "done", done, "total", total)
	}
}
