package utils

import (
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/models"
)

// DayPair is an ordered pair of weekdays, e.g. the night a rule starts on and
// the morning it ends on.
type DayPair struct {
	From models.Weekday
	To   models.Weekday
}

// PairMode selects how DayPairs relates days to each other.
type PairMode int

const (
	// PairOvernight pairs every day with the calendar day after it.
	PairOvernight PairMode = iota
	// PairConsecutive pairs neighbouring selected days, plus Sun→Mon when both are selected.
	PairConsecutive
)

// IsAdjacentSet reports whether days form one unbroken run. Adjacency is
// linear: Sunday and Monday are not neighbours, so {Sat, Sun, Mon} is not a run.
func IsAdjacentSet(days []models.Weekday) bool {
	sorted := models.SortDays(days)
	if len(sorted) <= 1 {
		return true
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i]-sorted[i-1] != 1 {
			return false
		}
	}
	return true
}

// DayPairs returns the pairs of days selected by mode, ordered by the first day.
func DayPairs(days []models.Weekday, mode PairMode) []DayPair {
	sorted := models.SortDays(days)
	var pairs []DayPair

	switch mode {
	case PairOvernight:
		for _, d := range sorted {
			pairs = append(pairs, DayPair{From: d, To: d.Next()})
		}
	case PairConsecutive:
		selected := make(map[models.Weekday]bool, len(sorted))
		for _, d := range sorted {
			selected[d] = true
		}
		for i := 1; i < len(sorted); i++ {
			if sorted[i]-sorted[i-1] == 1 {
				pairs = append(pairs, DayPair{From: sorted[i-1], To: sorted[i]})
			}
		}
		if selected[models.Sunday] && selected[models.Monday] {
			pairs = append(pairs, DayPair{From: models.Sunday, To: models.Monday})
		}
	}

	return pairs
}

// OvernightPairs pairs each day with the day after it; Sunday pairs with Monday.
func OvernightPairs(days []models.Weekday) []DayPair {
	return DayPairs(days, PairOvernight)
}

// ConsecutivePairs is used for display only.
func ConsecutivePairs(days []models.Weekday) []DayPair {
	return DayPairs(days, PairConsecutive)
}

func (p DayPair) String() string {
	return p.From.String() + "→" + p.To.String()
}
