package tabular

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Sheet pairs a sheet name with its table, for multi-sheet report files.
type Sheet struct {
	Name  string
	Table *Table
}

// WriteFile writes a single-sheet .xlsx file. The write is atomic from the
// caller's point of view: content goes to a temp file in the destination
// directory which is then renamed over the target, so a crash mid-write
// never leaves a truncated spreadsheet behind.
func WriteFile(path string, t *Table) error {
	return WriteSheets(path, []Sheet{{Name: "Sheet1", Table: t}})
}

// WriteSheets writes an .xlsx file containing one sheet per entry, in
// order, with the same atomic-replace behavior as WriteFile.
func WriteSheets(path string, sheets []Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("no sheets to write to %s", path)
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			// The workbook starts with one default sheet; rename it.
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", sheet.Name, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("failed to add sheet %q: %w", sheet.Name, err)
		}

		if err := writeSheet(f, sheet.Name, sheet.Table); err != nil {
			return err
		}
	}

	return saveAtomic(f, path)
}

func writeSheet(f *excelize.File, name string, t *Table) error {
	header := make([]any, len(t.Header))
	for i, col := range t.Header {
		header[i] = col
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of sheet %q: %w", name, err)
	}

	for i, row := range t.Rows {
		cells := make([]any, len(t.Header))
		for j, col := range t.Header {
			cells[j] = row[col]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d of sheet %q: %w", i+2, name, err)
		}
	}

	return nil
}

func saveAtomic(f *excelize.File, path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".schedrec-*.xlsx")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file for %s: %w", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
