package utils

import (
	"fmt"
	"strings"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/models"
)

func joinPairs(pairs []DayPair) string {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

// Describe explains in words when a recurring rule is armed.
func Describe(r models.Recurring) string {
	days := models.SortDays(r.Days)
	if len(days) == 0 {
		return "no days selected"
	}

	if r.Mode == models.AlarmModeContinuous && len(days) > 1 {
		s := fmt.Sprintf("from %s %s to %s %s", days[0], r.Start, days[len(days)-1], r.End)
		if pairs := ConsecutivePairs(days); len(pairs) > 0 {
			s += " (" + joinPairs(pairs) + ")"
		}
		return s
	}

	if !r.SpansNextDay() {
		return fmt.Sprintf("%s-%s on each selected day", r.Start, r.End)
	}
	return fmt.Sprintf("%s-%s each night, continuing to next day (%s)", r.Start, r.End, joinPairs(OvernightPairs(days)))
}

// DurationLabel is the formatted duration of any rule kind: "7h 0m",
// "9h 0m × 3 alarms" for daily rules on several days, and
// "9h 0m × 2 = 18h 0m total" for continuous rules.
func DurationLabel(c models.Candidate) string {
	switch {
	case c.Recurring != nil:
		r := *c.Recurring
		days := models.SortDays(r.Days)
		switch {
		case r.Mode == models.AlarmModeContinuous && len(days) > 1:
			return fmt.Sprintf("%s = %s total",
				models.FormatDuration(r.Duration(), r.Multiplier()),
				models.FormatDuration(r.TotalDuration(), 1))
		case len(days) > 1:
			alarms := len(days)
			if r.SpansNextDay() {
				alarms = len(OvernightPairs(days))
			}
			return fmt.Sprintf("%s alarms", models.FormatDuration(r.Duration(), alarms))
		default:
			return models.FormatDuration(r.Duration(), 1)
		}
	case c.OneTime != nil:
		return models.FormatDuration(c.OneTime.Duration(), 1)
	default:
		return ""
	}
}
