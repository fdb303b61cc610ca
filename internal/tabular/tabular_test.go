package tabular

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteThenRead_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "schedule.xlsx")

	in := New("accountno", "surname", "first_name", "other_name", "ssnit", "tier1", "tier2")
	in.Append("ACC1", "Mensah", "Kofi", "", "C001", "0", "617.275")
	in.Append("ACC2", "Owusu", "Ama", "Serwaa", "C002", "0", "50")

	require.NoError(t, WriteFile(path, in))

	out, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, in.Header, out.Header)
	require.Len(t, out.Rows, 2)
	for i, row := range in.Rows {
		for _, col := range in.Header {
			require.Equal(t, row.Get(col), out.Rows[i].Get(col), "column %q of row %d", col, i)
		}
	}
}

func TestReadFile_RaggedRowsArePadded(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ragged.xlsx")

	in := New("a", "b", "c")
	in.Append("1")
	require.NoError(t, WriteFile(path, in))

	out, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, out.Rows, 1)
	require.Equal(t, "1", out.Rows[0].Get("a"))
	require.Equal(t, "", out.Rows[0].Get("c"))
}

func TestWriteFile_ReplacesExistingAtomically(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.xlsx")

	first := New("a")
	first.Append("old")
	require.NoError(t, WriteFile(path, first))

	second := New("a")
	second.Append("new")
	require.NoError(t, WriteFile(path, second))

	out, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "new", out.Rows[0].Get("a"))

	// No temp droppings left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestWriteSheets_MultiSheet(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.xlsx")

	a := New("x")
	a.Append("1")
	b := New("y")
	b.Append("2")

	require.NoError(t, WriteSheets(path, []Sheet{
		{Name: "First", Table: a},
		{Name: "Second", Table: b},
	}))

	// ReadFile reads the first sheet.
	out, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, out.Header)
	require.Equal(t, "1", out.Rows[0].Get("x"))
}

func TestRequireColumns(t *testing.T) {
	t.Parallel()

	table := New("Ssnit", "Surname")

	require.NoError(t, table.RequireColumns("lookup", "Ssnit", "Surname"))
	require.NoError(t, table.RequireColumns("lookup", "Ssnit", ""), "empty column names are unchecked")

	err := table.RequireColumns("lookup", "Ssnit", "Accountno", "First_Name")
	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "lookup", missing.Source)
	require.Equal(t, []string{"Accountno", "First_Name"}, missing.Columns)
	require.Contains(t, err.Error(), "Accountno")
}

func TestReadFile_NotFound(t *testing.T) {
	t.Parallel()

	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.xlsx"))
	require.Error(t, err)
}
