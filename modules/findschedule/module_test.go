package findschedule

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/knd/schedrec/internal/lookup"
	"github.com/knd/schedrec/internal/schema"
	"github.com/knd/schedrec/internal/session"
	"github.com/knd/schedrec/internal/testutil"
)

func TestRun_FindsHitsInLookupAndSchedules(t *testing.T) {
	t.Parallel()

	folder := filepath.Join(t.TempDir(), "Acme Ltd")
	testutil.WriteXLSX(t, lookup.PathFor(folder),
		[]string{"Accountno", "Surname", "First_Name", "Other_Names", "Ssnit", "Accountno2"},
		[]string{"ACC1", "Mensah", "Kofi", "", "C001", ""},
	)
	testutil.WriteXLSX(t, filepath.Join(folder, "april.xlsx"),
		[]string{"ssnit", "name", "salary"},
		[]string{"C001", "Kofi Mensah", "1000"},
		[]string{"C002", "Ama Owusu", "1500"},
	)

	out := &bytes.Buffer{}
	sess := &session.Session{
		Folder:     folder,
		Identifier: "c001",
		Recursive:  true,
		Profile:    schema.Default(),
		Out:        out,
	}

	require.NoError(t, run(context.Background(), sess))

	require.Contains(t, out.String(), "Found 2 occurrence(s) of c001:")
	require.Contains(t, out.String(), "vlookup_Acme Ltd.xlsx row 1  Mensah Kofi  account ACC1")
	require.Contains(t, out.String(), "april.xlsx row 1")

	// Lookup and schedule hits land on separate export sheets.
	exportPath := filepath.Join(folder, "ssnit_search_C001.xlsx")
	require.FileExists(t, exportPath)
	require.Equal(t, []string{"VLOOKUP_Results", "Schedule_Results"}, testutil.SheetNames(t, exportPath))

	vlookupRows := testutil.ReadSheet(t, exportPath, "VLOOKUP_Results")
	require.Equal(t, []string{"File", "Row", "Name", "Accountno"}, vlookupRows[0])
	require.Equal(t, []string{"vlookup_Acme Ltd.xlsx", "1", "Mensah Kofi", "ACC1"}, vlookupRows[1])

	scheduleRows := testutil.ReadSheet(t, exportPath, "Schedule_Results")
	require.Equal(t, []string{"File", "Row", "Name", "Salary"}, scheduleRows[0])
	require.Equal(t, []string{"april.xlsx", "1", "Kofi Mensah", "1000"}, scheduleRows[1])
}

func TestRun_NoLookupTableStillSearches(t *testing.T) {
	t.Parallel()

	folder := t.TempDir()
	testutil.WriteXLSX(t, filepath.Join(folder, "april.xlsx"),
		[]string{"ssnit", "name", "salary"},
		[]string{"C001", "Kofi Mensah", "1000"},
	)

	out := &bytes.Buffer{}
	sess := &session.Session{
		Folder:     folder,
		Identifier: "C001",
		Recursive:  false,
		Profile:    schema.Default(),
		Out:        out,
	}

	require.NoError(t, run(context.Background(), sess))
	require.Contains(t, out.String(), "Found 1 occurrence(s) of C001:")
}

func TestRun_NoMatches(t *testing.T) {
	t.Parallel()

	folder := t.TempDir()
	testutil.WriteXLSX(t, filepath.Join(folder, "april.xlsx"),
		[]string{"ssnit", "name", "salary"},
		[]string{"C001", "Kofi Mensah", "1000"},
	)

	out := &bytes.Buffer{}
	sess := &session.Session{
		Folder:     folder,
		Identifier: "C999",
		Profile:    schema.Default(),
		Out:        out,
	}

	require.NoError(t, run(context.Background(), sess))
	require.Contains(t, out.String(), "No matches for C999.")
	require.NoFileExists(t, filepath.Join(folder, "ssnit_search_C999.xlsx"))
}

func TestRun_RequiresIdentifier(t *testing.T) {
	t.Parallel()

	sess := &session.Session{
		Folder:  t.TempDir(),
		Profile: schema.Default(),
		Out:     &bytes.Buffer{},
	}

	err := run(context.Background(), sess)
	require.Error(t, err)
	require.Contains(t, err.Error(), "-id")
}
