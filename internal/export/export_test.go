package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Alijeyrad/angket_backend/internal/instrument"
	"github.com/Alijeyrad/angket_backend/internal/ledger"
	"github.com/Alijeyrad/angket_backend/internal/scoring"
)

func sampleRows(t *testing.T) []ledger.Row {
	t.Helper()
	l := ledger.New()
	sheet := scoring.NewSheet(instrument.Default())
	_, err := l.Commit(ledger.Identity{
		Date:         "2026-10-16",
		Institution:  "SLB Harapan",
		SubjectName:  "Adi",
		ClassLabel:   "IV",
		AssessorName: "Bu Sari",
	}, scoring.Summarize(sheet))
	require.NoError(t, err)
	return l.Rows()
}

func open(t *testing.T, b []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestLedgerSheet(t *testing.T) {
	e := New(Config{})
	c := instrument.Default()

	b, err := e.Bytes(Workbook{Constructs: c.Constructs(), Rows: sampleRows(t)})
	require.NoError(t, err)

	f := open(t, b)
	assert.Equal(t, []string{DefaultLedgerSheet}, f.GetSheetList())

	rows, err := f.GetRows(DefaultLedgerSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{
		"Date", "Institution", "Subject Name", "Class", "Assessor",
		"Score HATI", "Score AKAL", "Score JASAD",
		"Total Score", "Max Score", "Percentage", "Category",
	}, rows[0])
	assert.Equal(t, []string{
		"2026-10-16", "SLB Harapan", "Adi", "IV", "Bu Sari",
		"15", "16", "12", "43", "172", "25", "Very Severe Impairment",
	}, rows[1])
}

func TestItemsSheetOnlyWhenSupplied(t *testing.T) {
	c := instrument.Default()
	sheet := scoring.NewSheet(c)
	require.NoError(t, sheet.SetScore(2, 3))

	e := New(Config{LedgerSheet: "Ledger", ItemsSheet: "Items", IndonesianLabels: true})
	b, err := e.Bytes(Workbook{Constructs: c.Constructs(), Rows: sampleRows(t), Items: sheet.Items()})
	require.NoError(t, err)

	f := open(t, b)
	assert.Equal(t, []string{"Ledger", "Items"}, f.GetSheetList())

	items, err := f.GetRows("Items")
	require.NoError(t, err)
	require.Len(t, items, c.Len()+1)
	assert.Equal(t, ItemsHeader(), items[0])
	assert.Equal(t, "2", items[2][0])
	assert.Equal(t, "3", items[2][4])

	ledgerRows, err := f.GetRows("Ledger")
	require.NoError(t, err)
	assert.Equal(t, "Hambatan Sangat Berat", ledgerRows[1][11])
}

func TestEmptyLedgerStillHasHeader(t *testing.T) {
	e := New(Config{})
	b, err := e.Bytes(Workbook{Constructs: []instrument.Construct{"A"}})
	require.NoError(t, err)

	rows, err := open(t, b).GetRows(DefaultLedgerSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, LedgerHeader([]instrument.Construct{"A"}), rows[0])
}

func TestFileName(t *testing.T) {
	at := time.Date(2026, 10, 16, 13, 0, 0, 0, time.UTC)
	assert.Equal(t, "Rekap_Angket_PDBK_2026-10-16.xlsx", New(Config{}).FileName(at))
	assert.Equal(t, "x_2026-10-16.xlsx", New(Config{FilePrefix: "x"}).FileName(at))
}
