package models

import (
	"fmt"
	"sort"
	"time"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/constants"
)

type RuleStatus string

const (
	RuleStatusActive    RuleStatus = "active"
	RuleStatusExpired   RuleStatus = "expired"
	RuleStatusScheduled RuleStatus = "scheduled"
	RuleStatusActiveNow RuleStatus = "active_now"
)

func (s RuleStatus) Label() string {
	switch s {
	case RuleStatusExpired:
		return "Expired"
	case RuleStatusScheduled:
		return "Scheduled"
	case RuleStatusActiveNow:
		return "Active Now"
	default:
		return "Active"
	}
}

// Status reports where a rule sits relative to now. Recurring rules are
// always active; one-time rules move from scheduled to active_now to expired.
func (r AlarmRule) Status(now time.Time) RuleStatus {
	if !r.IsOneTime() {
		return RuleStatusActive
	}
	switch {
	case r.OneTime.End.Before(now):
		return RuleStatusExpired
	case r.OneTime.Start.After(now):
		return RuleStatusScheduled
	default:
		return RuleStatusActiveNow
	}
}

// SortRules orders rules for display: recurring before one-time, recurring
// by start time, one-time by start instant, ties broken by id.
func SortRules(rules []AlarmRule) {
	sort.SliceStable(rules, func(i, j int) bool {
		a, b := rules[i], rules[j]
		if a.IsRecurring() != b.IsRecurring() {
			return a.IsRecurring()
		}
		if a.IsRecurring() {
			if a.Recurring.Start != b.Recurring.Start {
				return a.Recurring.Start < b.Recurring.Start
			}
		} else if a.IsOneTime() && b.IsOneTime() && !a.OneTime.Start.Equal(b.OneTime.Start) {
			return a.OneTime.Start.Before(b.OneTime.Start)
		}
		return a.ID < b.ID
	})
}

// Duration is the length of one armed window.
func (r Recurring) Duration() time.Duration {
	minutes := int(r.End) - int(r.Start)
	if r.SpansNextDay() {
		minutes += constants.MinutesPerDay
	}
	return time.Duration(minutes) * time.Minute
}

// Multiplier is how many windows a week of this rule produces for the
// purpose of totals: the day count in continuous mode, otherwise one.
func (r Recurring) Multiplier() int {
	if r.Mode == AlarmModeContinuous && len(r.Days) > 1 {
		return len(r.Days)
	}
	return 1
}

// TotalDuration is the display total shown next to a rule: the window length
// times Multiplier. For a continuous overnight rule this is not the armed
// length; a single run of utils.RunLength is.
func (r Recurring) TotalDuration() time.Duration {
	return r.Duration() * time.Duration(r.Multiplier())
}

func (o OneTime) Duration() time.Duration {
	return o.End.Sub(o.Start)
}

// FormatDuration renders "7h 0m", or "9h 0m × 2" when multiplier > 1.
func FormatDuration(d time.Duration, multiplier int) string {
	total := int(d / time.Minute)
	s := fmt.Sprintf("%dh %dm", total/60, total%60)
	if multiplier > 1 {
		s += fmt.Sprintf(" × %d", multiplier)
	}
	return s
}
