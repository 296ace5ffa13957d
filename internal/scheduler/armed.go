package scheduler

import (
	"sort"
	"time"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/models"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/utils"
)

// ArmedAt returns the enabled rules whose window covers instant t. An
// overnight window started on one day still arms the early hours of the next.
func ArmedAt(rules []models.AlarmRule, t time.Time) ([]models.AlarmRule, error) {
	var armed []models.AlarmRule
	for _, r := range rules {
		if !r.Enabled {
			continue
		}
		switch {
		case r.IsOneTime():
			if utils.RuleSpan(*r.OneTime).Includes(t) {
				armed = append(armed, r)
			}
		case r.IsRecurring():
			spans, err := utils.Occurrences(*r.Recurring, t, t.Add(time.Minute))
			if err != nil {
				return nil, err
			}
			for _, sp := range spans {
				if sp.Includes(t) {
					armed = append(armed, r)
					break
				}
			}
		}
	}
	return armed, nil
}

// Occurrence is one concrete armed window of a rule.
type Occurrence struct {
	Rule models.AlarmRule
	utils.Span
}

// Upcoming lists the windows of enabled rules that overlap [from, to),
// ordered by start.
func Upcoming(rules []models.AlarmRule, from, to time.Time) ([]Occurrence, error) {
	var out []Occurrence
	for _, r := range rules {
		if !r.Enabled {
			continue
		}
		switch {
		case r.IsOneTime():
			sp := utils.RuleSpan(*r.OneTime)
			if sp.Overlaps(utils.Span{Start: from, End: to}) {
				out = append(out, Occurrence{Rule: r, Span: sp})
			}
		case r.IsRecurring():
			spans, err := utils.Occurrences(*r.Recurring, from, to)
			if err != nil {
				return nil, err
			}
			for _, sp := range spans {
				out = append(out, Occurrence{Rule: r, Span: sp})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].Rule.ID < out[j].Rule.ID
	})
	return out, nil
}
