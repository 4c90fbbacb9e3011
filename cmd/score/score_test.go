package score

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Alijeyrad/angket_backend/config"
)

const batchYAML = `
institution: SLB Harapan
date: "2026-10-16"
subjects:
  - subject_name: Adi
    scores: {16: 4}
  - subject_name: Budi
`

func TestRunWritesWorkbook(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "batch.yaml")
	output := filepath.Join(dir, "out.xlsx")
	require.NoError(t, os.WriteFile(input, []byte(batchYAML), 0o600))

	cfg := &config.Config{}
	cfg.Export.LedgerSheet = "Ledger"
	cfg.Export.ItemsSheet = "Items"

	var stdout bytes.Buffer
	err := run(context.Background(), cfg, options{input: input, output: output, audit: true}, &stdout)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "2 learners scored")

	f, err := excelize.OpenFile(output)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Ledger", "Items"}, f.GetSheetList())

	rows, err := f.GetRows("Ledger")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "46", rows[1][8])
	assert.Equal(t, "43", rows[2][8])
}

func TestRunMissingInput(t *testing.T) {
	err := run(context.Background(), &config.Config{}, options{input: filepath.Join(t.TempDir(), "nope.yaml")}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "open batch file")
}
