package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/angket_backend/internal/instrument"
	"github.com/Alijeyrad/angket_backend/internal/scoring"
)

func identity(name string) Identity {
	return Identity{
		Date:         "2026-10-16",
		Institution:  "SLB Harapan",
		SubjectName:  name,
		ClassLabel:   "IV",
		AssessorName: "Bu Sari",
	}
}

func TestCommitRequiresSubjectName(t *testing.T) {
	l := New()
	sum := scoring.Summarize(scoring.NewSheet(instrument.Default()))

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := l.Commit(identity(name), sum)
		require.Error(t, err)
		assert.True(t, scoring.IsValidation(err))
		assert.Equal(t, 0, l.Len())
	}
}

func TestCommitAppendsSummary(t *testing.T) {
	c := instrument.Default()
	sheet := scoring.NewSheet(c)
	require.NoError(t, sheet.SetScores(map[int]int{1: 4, 16: 3, 43: 2}))
	sum := scoring.Summarize(sheet)

	l := New()
	row, err := l.Commit(identity("Adi"), sum)
	require.NoError(t, err)
	require.Equal(t, 1, l.Len())

	assert.Equal(t, "Adi", row.SubjectName)
	assert.Equal(t, sum.Total, row.TotalScore)
	assert.Equal(t, sum.Max, row.MaxScore)
	assert.Equal(t, sum.Percentage, row.Percentage)
	assert.Equal(t, sum.Category, row.Category)
	for _, k := range c.Constructs() {
		got, ok := row.ScoreFor(k)
		require.True(t, ok)
		assert.Equal(t, sum.ScoreByConstruct[k], got)
	}
	assert.GreaterOrEqual(t, row.TotalScore, c.Len())
	assert.LessOrEqual(t, row.TotalScore, c.Len()*4)

	_, ok := row.ScoreFor("NONE")
	assert.False(t, ok)
}

func TestRowsKeepOrderAndDuplicates(t *testing.T) {
	l := New()
	sum := scoring.Summarize(scoring.NewSheet(instrument.Default()))

	for _, name := range []string{"Adi", "Budi", "Adi"} {
		_, err := l.Commit(identity(name), sum)
		require.NoError(t, err)
	}

	rows := l.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "Adi", rows[0].SubjectName)
	assert.Equal(t, "Budi", rows[1].SubjectName)
	assert.Equal(t, "Adi", rows[2].SubjectName)

	rows[0].Scores[0].Score = 999
	assert.NotEqual(t, 999, l.Rows()[0].Scores[0].Score)
}

func TestClear(t *testing.T) {
	l := New()
	sum := scoring.Summarize(scoring.NewSheet(instrument.Default()))
	_, err := l.Commit(identity("Adi"), sum)
	require.NoError(t, err)

	l.Clear()
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.Rows())
}
