package ledger

import (
	"strings"

	"github.com/Alijeyrad/angket_backend/internal/instrument"
	"github.com/Alijeyrad/angket_backend/internal/scoring"
)

// DateLayout is the ISO-8601 calendar date stored on every row.
const DateLayout = "2006-01-02"

// Identity is supplied by the operator for each subject before commit.
type Identity struct {
	Date         string `json:"date"`
	Institution  string `json:"institution"`
	SubjectName  string `json:"subject_name"`
	ClassLabel   string `json:"class_label"`
	AssessorName string `json:"assessor_name"`
}

// ConstructScore is one construct's score sum on a row.
type ConstructScore struct {
	Construct instrument.Construct `json:"construct"`
	Score     int                  `json:"score"`
}

// Row is a committed, immutable summary for one subject.
type Row struct {
	Identity
	Scores     []ConstructScore `json:"scores"`
	TotalScore int              `json:"total_score"`
	MaxScore   int              `json:"max_score"`
	Percentage float64          `json:"percentage"`
	Category   scoring.Category `json:"category"`
}

// ScoreFor returns the score sum recorded for construct k.
func (r Row) ScoreFor(k instrument.Construct) (int, bool) {
	for _, cs := range r.Scores {
		if cs.Construct == k {
			return cs.Score, true
		}
	}
	return 0, false
}

// Ledger is an append-only sequence of rows in commit order.
type Ledger struct {
	rows []Row
}

func New() *Ledger {
	return &Ledger{}
}

// Commit appends a row built from id and sum. The subject name must not be blank.
func (l *Ledger) Commit(id Identity, sum scoring.Summary) (Row, error) {
	if strings.TrimSpace(id.SubjectName) == "" {
		return Row{}, scoring.NewValidationError("subject_name", "subject name is required before saving")
	}

	row := Row{
		Identity:   id,
		Scores:     make([]ConstructScore, 0, len(sum.Constructs)),
		TotalScore: sum.Total,
		MaxScore:   sum.Max,
		Percentage: sum.Percentage,
		Category:   sum.Category,
	}
	for _, cs := range sum.Constructs {
		row.Scores = append(row.Scores, ConstructScore{Construct: cs.Construct, Score: cs.ScoreSum})
	}

	l.rows = append(l.rows, row)
	return cloneRow(row), nil
}

// Rows returns a copy of every row in commit order.
func (l *Ledger) Rows() []Row {
	out := make([]Row, len(l.rows))
	for i, r := range l.rows {
		out[i] = cloneRow(r)
	}
	return out
}

func (l *Ledger) Len() int { return len(l.rows) }

// Clear removes every row.
func (l *Ledger) Clear() {
	l.rows = nil
}

func cloneRow(r Row) Row {
	scores := make([]ConstructScore, len(r.Scores))
	copy(scores, r.Scores)
	r.Scores = scores
	return r
}
