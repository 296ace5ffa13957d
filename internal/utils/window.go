package utils

import (
	"time"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/constants"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/models"
)

// Interval is a half-open minute range [Start, End) measured from the
// midnight of the day a rule starts on. End may exceed one day for overnight
// windows.
type Interval struct {
	Start int
	End   int
}

// DayInterval maps a recurring window onto minute arithmetic. When the window
// spans the next day its end is pushed past midnight.
func DayInterval(start, end models.TimeOfDay) Interval {
	iv := Interval{Start: int(start), End: int(end)}
	if end <= start {
		iv.End += constants.MinutesPerDay
	}
	return iv
}

// RuleInterval is DayInterval for a recurring rule.
func RuleInterval(r models.Recurring) Interval {
	return DayInterval(r.Start, r.End)
}

// Overlaps reports whether the two intervals share at least one minute.
// Both are compared on the same day; no cross-day offset is applied.
func (a Interval) Overlaps(b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

// Contains reports whether b lies entirely within a.
func (a Interval) Contains(b Interval) bool {
	return a.Start <= b.Start && a.End >= b.End
}

func (a Interval) Minutes() int {
	return a.End - a.Start
}

// Span is an absolute window [Start, End).
type Span struct {
	Start time.Time
	End   time.Time
}

func (a Span) Overlaps(b Span) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

func (a Span) Contains(b Span) bool {
	return !a.Start.After(b.Start) && !a.End.Before(b.End)
}

// Includes reports whether instant t falls inside the span.
func (a Span) Includes(t time.Time) bool {
	return !t.Before(a.Start) && t.Before(a.End)
}

// RuleSpan is the span of a one-time rule.
func RuleSpan(o models.OneTime) Span {
	return Span{Start: o.Start, End: o.End}
}
