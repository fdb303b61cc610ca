// Package batch iterates a per-file operation over a set of schedule files,
// tracking per-file outcomes. One file's failure never aborts the run; the
// failure becomes that file's outcome and the batch moves on. Cancellation
// is checked between files, never mid-file.
package batch

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/knd/schedrec/internal/ctxlog"
)

// Outcome is the terminal state of one file within a batch.
type Outcome int

const (
	OutcomeProcessed Outcome = iota
	OutcomeFailed
	OutcomeSkipped
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case OutcomeProcessed:
		return "Processed"
	case OutcomeFailed:
		return "Failed"
	case OutcomeSkipped:
		return "Skipped"
	default:
		return "Unknown"
	}
}

// ErrSkip is returned by an Operation to record a file as Skipped rather
// than Failed, e.g. a schedule without the identifier column.
var ErrSkip = errors.New("file skipped")

// Operation is the per-file work applied by a run.
type Operation func(ctx context.Context, path string) error

// Observer receives cooperative progress updates as "done of total" counts.
// It is invoked after each file completes; a nil Observer is allowed.
type Observer func(done, total int)

// Result records the outcome of one file. Err is non-nil only for Failed
// and for files Skipped via ErrSkip with a wrapped reason.
type Result struct {
	Path    string
	Outcome Outcome
	Err     error
}

// Run applies op to every file in order. Each run is tagged with a fresh
// run ID in its log records. When ctx is cancelled the remaining files are
// recorded as Skipped; the file currently in flight always runs to
// completion first.
func Run(ctx context.Context, files []string, op Operation, obs Observer) []Result {
	logger := ctxlog.FromContext(ctx).With("run_id", uuid.NewString())
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Batch run starting.", "files", len(files))

	results := make([]Result, 0, len(files))
	cancelled := false

	for i, path := range files {
		if !cancelled && ctx.Err() != nil {
			cancelled = true
			logger.Warn("Batch cancelled, skipping remaining files.", "remaining", len(files)-i)
		}
		if cancelled {
			results = append(results, Result{Path: path, Outcome: OutcomeSkipped, Err: ctx.Err()})
			continue
		}

		res := Result{Path: path, Outcome: OutcomeProcessed}
		switch err := op(ctx, path); {
		case err == nil:
			logger.Debug("File processed.", "file", path)
		case errors.Is(err, ErrSkip):
			res.Outcome = OutcomeSkipped
			res.Err = err
			logger.Info("File skipped.", "file", path, "reason", err)
		default:
			res.Outcome = OutcomeFailed
			res.Err = err
			logger.Error("File failed.", "file", path, "error", err)
		}
		results = append(results, res)

		if obs != nil {
			obs(i+1, len(files))
		}
	}

	logger.Debug("Batch run finished.", "files", len(files))
	return results
}

// Tally counts the results per outcome.
func Tally(results []Result) (processed, failed, skipped int) {
	for _, r := range results {
		switch r.Outcome {
		case OutcomeProcessed:
			processed++
		case OutcomeFailed:
			failed++
		case OutcomeSkipped:
			skipped++
		}
	}
	return processed, failed, skipped
}
