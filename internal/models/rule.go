package models

import (
	"fmt"
	"strings"
	"time"
)

type RuleType string

const (
	RuleTypeRecurring RuleType = "recurring"
	RuleTypeOneTime   RuleType = "one-time"
)

// AlarmMode controls how a multi-day recurring rule arms.
//
// Continuous mode keeps the alarm armed from the first selected day's start
// until the last selected day's end. Daily mode arms each selected day
// independently.
type AlarmMode string

const (
	AlarmModeContinuous AlarmMode = "continuous"
	AlarmModeDaily      AlarmMode = "daily"
)

func ParseAlarmMode(s string) (AlarmMode, error) {
	switch AlarmMode(strings.ToLower(strings.TrimSpace(s))) {
	case AlarmModeContinuous:
		return AlarmModeContinuous, nil
	case AlarmModeDaily, "":
		return AlarmModeDaily, nil
	default:
		return "", fmt.Errorf("invalid alarm mode %q (expected continuous or daily)", s)
	}
}

// Recurring is a weekly window on a set of days.
type Recurring struct {
	Days  []Weekday
	Start TimeOfDay
	End   TimeOfDay
	Mode  AlarmMode
}

// SpansNextDay reports whether the window wraps past midnight.
func (r Recurring) SpansNextDay() bool {
	return r.End <= r.Start
}

// OneTime is an absolute window in local time.
type OneTime struct {
	Start time.Time
	End   time.Time
}

// Candidate is a rule that has not been committed yet. Exactly one of
// Recurring and OneTime is set, matching Type.
type Candidate struct {
	Type      RuleType
	Recurring *Recurring
	OneTime   *OneTime
}

func NewRecurring(days []Weekday, start, end TimeOfDay, mode AlarmMode) Candidate {
	return Candidate{
		Type: RuleTypeRecurring,
		Recurring: &Recurring{
			Days:  SortDays(days),
			Start: start,
			End:   end,
			Mode:  mode,
		},
	}
}

// NewOneTime builds a one-time candidate. Both instants are truncated to the
// second, the finest precision any store keeps.
func NewOneTime(start, end time.Time) Candidate {
	return Candidate{
		Type:    RuleTypeOneTime,
		OneTime: &OneTime{Start: start.Truncate(time.Second), End: end.Truncate(time.Second)},
	}
}

// Clone returns a deep copy so committed rules never share backing arrays
// with caller-owned candidates.
func (c Candidate) Clone() Candidate {
	out := Candidate{Type: c.Type}
	if c.Recurring != nil {
		r := *c.Recurring
		r.Days = append([]Weekday(nil), c.Recurring.Days...)
		out.Recurring = &r
	}
	if c.OneTime != nil {
		o := *c.OneTime
		out.OneTime = &o
	}
	return out
}

// Equal reports field identity: same type and, for recurring rules, the same
// day set regardless of order, same times and mode; for one-time rules the
// same start and end instants.
func (c Candidate) Equal(o Candidate) bool {
	if c.Type != o.Type {
		return false
	}
	switch c.Type {
	case RuleTypeRecurring:
		if c.Recurring == nil || o.Recurring == nil {
			return c.Recurring == o.Recurring
		}
		a, b := c.Recurring, o.Recurring
		return SameDays(a.Days, b.Days) &&
			a.Start == b.Start &&
			a.End == b.End &&
			a.SpansNextDay() == b.SpansNextDay() &&
			a.Mode == b.Mode
	case RuleTypeOneTime:
		if c.OneTime == nil || o.OneTime == nil {
			return c.OneTime == o.OneTime
		}
		return c.OneTime.Start.Equal(o.OneTime.Start) && c.OneTime.End.Equal(o.OneTime.End)
	default:
		return false
	}
}

// AlarmRule is a committed rule within a zone.
type AlarmRule struct {
	ID      int64
	Enabled bool
	Candidate
}

func (r AlarmRule) IsRecurring() bool {
	return r.Type == RuleTypeRecurring && r.Recurring != nil
}

func (r AlarmRule) IsOneTime() bool {
	return r.Type == RuleTypeOneTime && r.OneTime != nil
}

func (r AlarmRule) Clone() AlarmRule {
	return AlarmRule{ID: r.ID, Enabled: r.Enabled, Candidate: r.Candidate.Clone()}
}

// CloneRules deep-copies a rule list.
func CloneRules(rules []AlarmRule) []AlarmRule {
	if rules == nil {
		return nil
	}
	out := make([]AlarmRule, len(rules))
	for i, r := range rules {
		out[i] = r.Clone()
	}
	return out
}

// Summary is a one-line human description of the rule's window.
func (c Candidate) Summary() string {
	switch {
	case c.Type == RuleTypeRecurring && c.Recurring != nil:
		r := c.Recurring
		s := fmt.Sprintf("%s %s-%s (%s)", FormatDays(r.Days), r.Start, r.End, r.Mode)
		if r.SpansNextDay() {
			s += " overnight"
		}
		return s
	case c.Type == RuleTypeOneTime && c.OneTime != nil:
		return fmt.Sprintf("%s to %s", FormatLocalDateTime(c.OneTime.Start), FormatLocalDateTime(c.OneTime.End))
	default:
		return string(c.Type)
	}
}
