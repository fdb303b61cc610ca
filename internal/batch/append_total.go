package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/knd/schedrec/internal/annotate"
	"github.com/knd/schedrec/internal/ctxlog"
	"github.com/knd/schedrec/internal/schema"
	"github.com/knd/schedrec/internal/tabular"
)

// AppendTotal returns the operation that renames a processed schedule file
// so its name carries the tier2 column's sum: base.xlsx becomes
// base_<sum>.xlsx with the sum formatted to two decimal places. A file
// without the tier2 column fails and is left untouched, as is a file whose
// target name already exists.
func AppendTotal(sched schema.ScheduleSchema) Operation {
	return func(ctx context.Context, path string) error {
		t, err := tabular.ReadFile(path)
		if err != nil {
			return err
		}
		if err := t.RequireColumns(filepath.Base(path), sched.Tier2); err != nil {
			return err
		}

		total := decimal.Zero
		for i, row := range t.Rows {
			cell := strings.TrimSpace(row.Get(sched.Tier2))
			if cell == "" {
				continue
			}
			v, err := annotate.ParseAmount(cell)
			if err != nil {
				return fmt.Errorf("row %d: unparseable tier2 value %q: %w", i+1, cell, err)
			}
			total = total.Add(v)
		}

		ext := filepath.Ext(path)
		newPath := strings.TrimSuffix(path, ext) + "_" + total.StringFixed(2) + ext
		if _, err := os.Stat(newPath); err == nil {
			return fmt.Errorf("target %s already exists", newPath)
		}

		if err := os.Rename(path, newPath); err != nil {
			return fmt.Errorf("failed to rename %s: %w", path, err)
		}

		ctxlog.FromContext(ctx).Info("Total appended.",
			"file", filepath.Base(newPath),
			"total", total.StringFixed(2),
			"rows", len(t.Rows),
		)
		return nil
	}
}
