package assessment

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Alijeyrad/angket_backend/internal/instrument"
	"github.com/Alijeyrad/angket_backend/internal/ledger"
	"github.com/Alijeyrad/angket_backend/internal/scoring"
)

// session owns one operator's scoring sheet and ledger. Nothing in it is shared
// with other sessions; mu serialises operations on it.
type session struct {
	id        uuid.UUID
	createdAt time.Time

	mu        sync.Mutex
	touchedAt time.Time
	sheet     *scoring.Sheet
	ledger    *ledger.Ledger
}

func newSession(c *instrument.Catalog, now time.Time) *session {
	return &session{
		id:        uuid.New(),
		createdAt: now,
		touchedAt: now,
		sheet:     scoring.NewSheet(c),
		ledger:    ledger.New(),
	}
}

// View is a read-only snapshot of a session.
type View struct {
	ID         uuid.UUID         `json:"id"`
	CreatedAt  time.Time         `json:"created_at"`
	TouchedAt  time.Time         `json:"touched_at"`
	Items      []instrument.Item `json:"items"`
	Summary    scoring.Summary   `json:"summary"`
	LedgerRows int               `json:"ledger_rows"`
}

// caller holds mu
func (s *session) view() View {
	return View{
		ID:         s.id,
		CreatedAt:  s.createdAt,
		TouchedAt:  s.touchedAt,
		Items:      s.sheet.Items(),
		Summary:    scoring.Summarize(s.sheet),
		LedgerRows: s.ledger.Len(),
	}
}
