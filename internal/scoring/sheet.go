package scoring

import (
	"sort"

	"github.com/Alijeyrad/angket_backend/internal/instrument"
)

// Sheet holds the live scores of the subject currently being assessed.
// Scores are indexed by item id - 1.
type Sheet struct {
	catalog *instrument.Catalog
	scores  []int
}

// NewSheet returns a sheet with every item at the catalog default.
func NewSheet(c *instrument.Catalog) *Sheet {
	s := &Sheet{catalog: c, scores: make([]int, c.Len())}
	s.Reset()
	return s
}

func (s *Sheet) Catalog() *instrument.Catalog { return s.catalog }

// Score returns the current score of item id.
func (s *Sheet) Score(id int) (int, bool) {
	if id < 1 || id > len(s.scores) {
		return 0, false
	}
	return s.scores[id-1], true
}

// Items returns the catalog in order with current scores filled in.
func (s *Sheet) Items() []instrument.Item {
	items := s.catalog.Items()
	for i := range items {
		items[i].Score = s.scores[i]
	}
	return items
}

// Filter returns the current items of one construct; empty means all.
func (s *Sheet) Filter(k instrument.Construct) []instrument.Item {
	all := s.Items()
	if k == "" {
		return all
	}
	out := make([]instrument.Item, 0, len(all))
	for _, it := range all {
		if it.Construct == k {
			out = append(out, it)
		}
	}
	return out
}

// Clone returns an independent copy.
func (s *Sheet) Clone() *Sheet {
	scores := make([]int, len(s.scores))
	copy(scores, s.scores)
	return &Sheet{catalog: s.catalog, scores: scores}
}

// Reset puts every item back to the catalog default.
func (s *Sheet) Reset() {
	d := s.catalog.DefaultScore()
	for i := range s.scores {
		s.scores[i] = d
	}
}

// Merge returns a new sheet equal to s with the overrides in updates applied.
// Items absent from updates keep their current score. s is never modified.
func (s *Sheet) Merge(updates map[int]int) (*Sheet, error) {
	if err := s.validate(updates); err != nil {
		return nil, err
	}
	next := s.Clone()
	for id, score := range updates {
		next.scores[id-1] = score
	}
	return next, nil
}

// SetScores applies a partial update in place. Either every entry is applied or,
// on a validation error, none is.
func (s *Sheet) SetScores(updates map[int]int) error {
	next, err := s.Merge(updates)
	if err != nil {
		return err
	}
	s.scores = next.scores
	return nil
}

func (s *Sheet) SetScore(id, score int) error {
	return s.SetScores(map[int]int{id: score})
}

// SetScoresByStatement is SetScores keyed by statement text.
func (s *Sheet) SetScoresByStatement(updates map[string]int) error {
	byID, err := s.resolve(updates)
	if err != nil {
		return err
	}
	return s.SetScores(byID)
}

func (s *Sheet) SetScoreByStatement(statement string, score int) error {
	return s.SetScoresByStatement(map[string]int{statement: score})
}

// resolve maps statements to ids. Statements are checked in sorted order so the
// reported error is deterministic.
func (s *Sheet) resolve(updates map[string]int) (map[int]int, error) {
	keys := make([]string, 0, len(updates))
	for k := range updates {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[int]int, len(updates))
	for _, k := range keys {
		id, ok := s.catalog.IDOf(k)
		if !ok {
			return nil, NewValidationError("statement", "unknown statement %q", k)
		}
		out[id] = updates[k]
	}
	return out, nil
}

func (s *Sheet) validate(updates map[int]int) error {
	ids := make([]int, 0, len(updates))
	for id := range updates {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		if _, ok := s.catalog.Item(id); !ok {
			return NewValidationError("item", "unknown item id %d", id)
		}
		if score := updates[id]; !instrument.ValidScore(score) {
			return NewValidationError("score", "item %d: score %d is outside %d-%d",
				id, score, instrument.MinScore, instrument.MaxScore)
		}
	}
	return nil
}
