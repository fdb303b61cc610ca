package tabular

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ReadFile loads the first sheet of an .xlsx file into a Table. The first
// row is taken as the header; ragged data rows are padded with empty cells.
func ReadFile(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return fromWorkbook(f)
}

// Read loads the first sheet of an .xlsx stream into a Table.
func Read(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}
	defer f.Close()

	return fromWorkbook(f)
}

func fromWorkbook(f *excelize.File) (*Table, error) {
	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	if len(rows) == 0 {
		return &Table{}, nil
	}

	t := &Table{Header: rows[0]}
	for _, cells := range rows[1:] {
		t.Append(cells...)
	}
	return t, nil
}
