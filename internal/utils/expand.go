package utils

import (
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/models"
)

// EffectiveDays returns every day a recurring rule touches. A daily-mode rule
// that wraps past midnight also occupies the morning after each selected day.
// Continuous-mode rules report only their selected days.
func EffectiveDays(r models.Recurring) []models.Weekday {
	if r.Mode == models.AlarmModeContinuous || !r.SpansNextDay() {
		return models.SortDays(r.Days)
	}

	var days []models.Weekday
	for _, p := range OvernightPairs(r.Days) {
		days = append(days, p.From, p.To)
	}
	return models.SortDays(days)
}

// SharedDays is the intersection of the two rules' effective days.
func SharedDays(a, b models.Recurring) []models.Weekday {
	inB := make(map[models.Weekday]bool)
	for _, d := range EffectiveDays(b) {
		inB[d] = true
	}

	var shared []models.Weekday
	for _, d := range EffectiveDays(a) {
		if inB[d] {
			shared = append(shared, d)
		}
	}
	return shared
}

// CoversAll reports whether every day in want appears in have.
func CoversAll(have, want []models.Weekday) bool {
	set := make(map[models.Weekday]bool, len(have))
	for _, d := range have {
		set[d] = true
	}
	for _, d := range want {
		if !set[d] {
			return false
		}
	}
	return true
}
