package utils

import (
	"fmt"
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/constants"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/models"
)

var rruleWeekdays = [constants.DaysPerWeek]rrule.Weekday{
	rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA, rrule.SU,
}

// RunLength is how long one armed window of the rule lasts. A continuous
// rule over several days runs from the first day's start to the last day's end.
func RunLength(r models.Recurring) time.Duration {
	days := models.SortDays(r.Days)
	if r.Mode != models.AlarmModeContinuous || len(days) <= 1 {
		return time.Duration(RuleInterval(r).Minutes()) * time.Minute
	}

	// First and last day differ, so minutes > 0 even when End < Start.
	minutes := int(days[len(days)-1]-days[0])*constants.MinutesPerDay + int(r.End) - int(r.Start)
	return time.Duration(minutes) * time.Minute
}

// Occurrences expands a recurring rule into the concrete windows that
// overlap [from, to), ordered by start. Windows that began before from but
// are still running are included.
func Occurrences(r models.Recurring, from, to time.Time) ([]Span, error) {
	days := models.SortDays(r.Days)
	if len(days) == 0 || !to.After(from) {
		return nil, nil
	}

	// A continuous run starts once a week, on its first day.
	startDays := days
	if r.Mode == models.AlarmModeContinuous && len(days) > 1 {
		startDays = days[:1]
	}
	byday := make([]rrule.Weekday, 0, len(startDays))
	for _, d := range startDays {
		if !d.Valid() {
			return nil, fmt.Errorf("invalid weekday %d", int(d))
		}
		byday = append(byday, rruleWeekdays[d])
	}

	length := RunLength(r)
	lookback := from.Add(-length)
	dtstart := r.Start.On(lookback.AddDate(0, 0, -1))

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: byday,
		Dtstart:   dtstart,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build recurrence: %w", err)
	}

	window := Span{Start: from, End: to}
	var spans []Span
	for _, start := range rule.Between(lookback, to, true) {
		span := Span{Start: start, End: start.Add(length)}
		if span.Overlaps(window) {
			spans = append(spans, span)
		}
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].Start.Before(spans[j].Start) })
	return spans, nil
}
