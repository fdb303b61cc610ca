package vlookup

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/knd/schedrec/internal/lookup"
	"github.com/knd/schedrec/internal/schema"
	"github.com/knd/schedrec/internal/session"
	"github.com/knd/schedrec/internal/testutil"
)

func masterHeader() []string {
	return []string{
		"Ssnit", "Client Account Number", "Accountno",
		"Surname", "First Name", "Other Names", "Employer Name",
	}
}

func TestRun_WritesLookupTable(t *testing.T) {
	t.Parallel()

	folder := filepath.Join(t.TempDir(), "Acme Ltd")
	require.NoError(t, os.MkdirAll(folder, 0755))

	masterPath := filepath.Join(t.TempDir(), "master.xlsx")
	testutil.WriteXLSX(t, masterPath, masterHeader(),
		[]string{"C001", "ACC1", "ALT1", "Mensah", "Kofi", "", "Acme Ltd"},
		[]string{"C002", "ACC2", "ALT2", "Owusu", "Ama", "Serwaa", "Acme Ltd"},
		[]string{"C003", "ACC3", "ALT3", "Asante", "Yaw", "", "Other Corp"},
	)

	out := &bytes.Buffer{}
	sess := &session.Session{
		Folder:     folder,
		MasterPath: masterPath,
		Profile:    schema.Default(),
		Out:        out,
	}

	require.NoError(t, run(context.Background(), sess))
	require.Contains(t, out.String(), "2 records")

	table, err := lookup.Read(folder)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	require.Equal(t, "C001", table.Rows[0].Get("Ssnit"))
	require.Equal(t, "ACC2", table.Rows[1].Get("Accountno"))
}

func TestRun_EmployerOverride(t *testing.T) {
	t.Parallel()

	folder := filepath.Join(t.TempDir(), "misnamed-folder")
	require.NoError(t, os.MkdirAll(folder, 0755))

	masterPath := filepath.Join(t.TempDir(), "master.xlsx")
	testutil.WriteXLSX(t, masterPath, masterHeader(),
		[]string{"C003", "ACC3", "ALT3", "Asante", "Yaw", "", "Other Corp"},
	)

	sess := &session.Session{
		Folder:       folder,
		MasterPath:   masterPath,
		EmployerName: "Other Corp",
		Profile:      schema.Default(),
		Out:          &bytes.Buffer{},
	}

	require.NoError(t, run(context.Background(), sess))
	require.FileExists(t, filepath.Join(folder, "vlookup_misnamed-folder.xlsx"))
}

func TestRun_RequiresMasterPath(t *testing.T) {
	t.Parallel()

	sess := &session.Session{
		Folder:  t.TempDir(),
		Profile: schema.Default(),
		Out:     &bytes.Buffer{},
	}

	err := run(context.Background(), sess)
	require.Error(t, err)
	require.Contains(t, err.Error(), "-master")
}
