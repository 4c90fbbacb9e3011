package scoring

import (
	"math"

	"github.com/Alijeyrad/angket_backend/internal/instrument"
)

// ConstructSummary is derived per construct and never stored.
type ConstructSummary struct {
	Construct  instrument.Construct `json:"construct"`
	ItemCount  int                  `json:"item_count"`
	ScoreSum   int                  `json:"score_sum"`
	MaxScore   int                  `json:"max_score"`
	Percentage float64              `json:"percentage"`
	Category   Category             `json:"category"`
}

// Summary is the full aggregation of a sheet.
type Summary struct {
	Constructs       []ConstructSummary           `json:"constructs"`
	Total            int                          `json:"total"`
	Max              int                          `json:"max"`
	Percentage       float64                      `json:"percentage"`
	Category         Category                     `json:"category"`
	ScoreByConstruct map[instrument.Construct]int `json:"score_by_construct"`
}

// Summarize aggregates a sheet. Constructs appear in catalog order.
func Summarize(s *Sheet) Summary {
	return SummarizeItems(s.Items())
}

// SummarizeItems aggregates scored items. items must be non-empty.
func SummarizeItems(items []instrument.Item) Summary {
	var (
		order   []instrument.Construct
		byGroup = make(map[instrument.Construct]*ConstructSummary)
		total   int
	)
	for _, it := range items {
		cs, ok := byGroup[it.Construct]
		if !ok {
			cs = &ConstructSummary{Construct: it.Construct}
			byGroup[it.Construct] = cs
			order = append(order, it.Construct)
		}
		cs.ItemCount++
		cs.ScoreSum += it.Score
		total += it.Score
	}

	sum := Summary{
		Constructs:       make([]ConstructSummary, 0, len(order)),
		ScoreByConstruct: make(map[instrument.Construct]int, len(order)),
	}
	for _, k := range order {
		cs := byGroup[k]
		cs.MaxScore = cs.ItemCount * instrument.MaxScore
		cs.Percentage = Percentage(cs.ScoreSum, cs.MaxScore)
		cs.Category = Classify(cs.Percentage)
		sum.Constructs = append(sum.Constructs, *cs)
		sum.ScoreByConstruct[k] = cs.ScoreSum
	}

	sum.Total = total
	sum.Max = len(items) * instrument.MaxScore
	sum.Percentage = Percentage(sum.Total, sum.Max)
	sum.Category = Classify(sum.Percentage)
	return sum
}

// Percentage returns sum/max*100 rounded to two decimals.
func Percentage(sum, max int) float64 {
	if max == 0 {
		return 0
	}
	return Round2(float64(sum) / float64(max) * 100)
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Construct returns the summary of k.
func (s Summary) Construct(k instrument.Construct) (ConstructSummary, bool) {
	for _, cs := range s.Constructs {
		if cs.Construct == k {
			return cs, true
		}
	}
	return ConstructSummary{}, false
}
