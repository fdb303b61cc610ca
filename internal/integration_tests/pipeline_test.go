package integration_tests

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/knd/schedrec/internal/app"
	"github.com/knd/schedrec/internal/tabular"
	"github.com/knd/schedrec/internal/testutil"
)

// runCommand drives one operation through the real composition root, the
// way main does, with logs discarded.
func runCommand(t *testing.T, cfg app.Config) string {
	t.Helper()

	config, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	a := app.NewApp(out, io.Discard, config)
	require.NoError(t, a.Run(context.Background()))
	return out.String()
}

// TestPipeline walks the full monthly flow over one employer folder:
// generate the lookup table, check it for duplicates, validate the
// schedule files, and append the tier2 totals to their names.
func TestPipeline(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	folder := filepath.Join(root, "Acme Ltd")
	require.NoError(t, os.MkdirAll(folder, 0755))

	masterPath := filepath.Join(root, "master.xlsx")
	testutil.WriteXLSX(t, masterPath,
		[]string{"Ssnit", "Client Account Number", "Accountno",
			"Surname", "First Name", "Other Names", "Employer Name"},
		[]string{"C001", "ACC1", "ALT1", "Mensah", "Kofi", "", "Acme Ltd"},
		[]string{"C002", "ACC2", "ALT2", "Owusu", "Ama", "Serwaa", "Acme Ltd"},
		[]string{"C003", "ACC3", "ALT3", "Asante", "Yaw", "", "Other Corp"},
	)

	schedulePath := filepath.Join(folder, "june.xlsx")
	testutil.WriteXLSX(t, schedulePath,
		[]string{"ssnit", "name", "salary"},
		[]string{"c001", "KOFI MENSAH", "1,000"},
		[]string{"C002", "Ama Owusu", "2000"},
	)

	base := app.Config{
		Folder:     folder,
		Recursive:  true,
		LogFormat:  "text",
		LogLevel:   "error",
		MasterPath: masterPath,
	}

	// --- lookup ---
	cfg := base
	cfg.Command = "lookup"
	output := runCommand(t, cfg)
	require.Contains(t, output, "2 records")
	require.FileExists(t, filepath.Join(folder, "vlookup_Acme Ltd.xlsx"))

	// --- duplicates ---
	cfg = base
	cfg.Command = "duplicates"
	output = runCommand(t, cfg)
	require.Contains(t, output, "No duplicates found.")

	// --- validate ---
	cfg = base
	cfg.Command = "validate"
	output = runCommand(t, cfg)
	require.Contains(t, output, "1 processed, 0 failed, 0 skipped")
	require.NotContains(t, output, "Unmapped")

	annotated, err := tabular.ReadFile(schedulePath)
	require.NoError(t, err)
	require.Equal(t, "ACC1", annotated.Rows[0].Get("accountno"))
	require.Equal(t, "50", annotated.Rows[0].Get("tier2"))
	require.Equal(t, "100", annotated.Rows[1].Get("tier2"))

	// --- append-total ---
	cfg = base
	cfg.Command = "append-total"
	output = runCommand(t, cfg)
	require.Contains(t, output, "1 of 1 file(s) processed")
	require.NoFileExists(t, schedulePath)
	require.FileExists(t, filepath.Join(folder, "june_150.00.xlsx"))

	// A second append-total run has nothing left to do: the renamed file
	// and the generated analysis files are all passed over.
	output = runCommand(t, cfg)
	require.Contains(t, output, "No schedule files to process.")
}

// TestPipeline_WithProfile overrides schedule column names through an HCL
// profile and checks the validation still lines up.
func TestPipeline_WithProfile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	folder := filepath.Join(root, "Acme Ltd")
	require.NoError(t, os.MkdirAll(folder, 0755))

	profilePath := filepath.Join(root, "profile.hcl")
	profileHCL := `
schedule {
  identifier = "member_no"
  salary     = "gross_pay"
}

tiers {
  tier2_rate = 0.10
}
`
	require.NoError(t, os.WriteFile(profilePath, []byte(profileHCL), 0600))

	masterPath := filepath.Join(root, "master.xlsx")
	testutil.WriteXLSX(t, masterPath,
		[]string{"Ssnit", "Client Account Number", "Accountno",
			"Surname", "First Name", "Other Names", "Employer Name"},
		[]string{"C001", "ACC1", "", "Mensah", "Kofi", "", "Acme Ltd"},
	)

	schedulePath := filepath.Join(folder, "june.xlsx")
	testutil.WriteXLSX(t, schedulePath,
		[]string{"member_no", "gross_pay"},
		[]string{"C001", "1000"},
	)

	base := app.Config{
		Folder:      folder,
		Recursive:   true,
		LogFormat:   "text",
		LogLevel:    "error",
		MasterPath:  masterPath,
		ProfilePath: profilePath,
	}

	cfg := base
	cfg.Command = "lookup"
	runCommand(t, cfg)

	cfg = base
	cfg.Command = "validate"
	output := runCommand(t, cfg)
	require.Contains(t, output, "1 processed, 0 failed, 0 skipped")

	annotated, err := tabular.ReadFile(schedulePath)
	require.NoError(t, err)
	require.Equal(t, "C001", annotated.Rows[0].Get("member_no"))
	require.Equal(t, "100", annotated.Rows[0].Get("tier2"))
}
