package batch

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Alijeyrad/angket_backend/internal/export"
	"github.com/Alijeyrad/angket_backend/internal/scoring"
	"github.com/Alijeyrad/angket_backend/internal/service/assessment"
)

const sample = `
date: "2026-10-16"
institution: SLB Harapan
assessor_name: Bu Sari
subjects:
  - subject_name: Adi
    class_label: IV
    scores: {1: 4, 2: 4}
  - subject_name: Budi
    class_label: V
    institution: SLB Cahaya
`

func TestDecode(t *testing.T) {
	f, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, f.Subjects, 2)
	assert.Equal(t, map[int]int{1: 4, 2: 4}, f.Subjects[0].Scores)

	id := f.identity(f.Subjects[1])
	assert.Equal(t, "SLB Cahaya", id.Institution)
	assert.Equal(t, "Bu Sari", id.AssessorName)
	assert.Equal(t, "2026-10-16", id.Date)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoSubjects)

	_, err = Decode(strings.NewReader("subjects: []\n"))
	assert.ErrorIs(t, err, ErrNoSubjects)

	_, err = Decode(strings.NewReader("subjcts:\n  - subject_name: Adi\n"))
	assert.Error(t, err)
}

func TestRunResetsBetweenSubjects(t *testing.T) {
	f, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)

	svc := assessment.New(assessment.Options{})
	out, err := Run(context.Background(), svc, f)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Rows)

	wb, err := excelize.OpenReader(bytes.NewReader(out.Data))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows(export.DefaultLedgerSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	// Adi: 43 + 3 + 3
	assert.Equal(t, []string{"2026-10-16", "SLB Harapan", "Adi", "IV", "Bu Sari", "21", "16", "12", "49", "172", "28.49", string(scoring.Severe)}, rows[1])
	// Budi starts from a reset sheet
	assert.Equal(t, "43", rows[2][8])
	assert.Equal(t, "SLB Cahaya", rows[2][1])
}

func TestRunNamesFailingSubject(t *testing.T) {
	f := File{Subjects: []Subject{
		{SubjectName: "Adi"},
		{SubjectName: "Budi", Scores: map[int]int{3: 7}},
	}}

	_, err := Run(context.Background(), assessment.New(assessment.Options{}), f)
	require.Error(t, err)
	assert.True(t, scoring.IsValidation(err))
	assert.Contains(t, err.Error(), "subject 2 (Budi)")

	_, err = Run(context.Background(), assessment.New(assessment.Options{}), File{Subjects: []Subject{{}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subject 1:")
}
