package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/constants"
)

// Weekday is a day of the week with Monday as 0 and Sunday as 6.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayAbbrevs = [constants.DaysPerWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// AllWeekdays returns Monday through Sunday in order.
func AllWeekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayAbbrevs[d]
}

// Next returns the following calendar day. Sunday wraps to Monday.
func (d Weekday) Next() Weekday {
	return (d + 1) % constants.DaysPerWeek
}

// WeekdayOf converts a time.Weekday (Sunday=0) to the Monday-first index.
func WeekdayOf(wd time.Weekday) Weekday {
	return Weekday((int(wd) + 6) % constants.DaysPerWeek)
}

// TimeWeekday converts back to the standard library representation.
func (d Weekday) TimeWeekday() time.Weekday {
	return time.Weekday((int(d) + 1) % constants.DaysPerWeek)
}

func (d Weekday) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid weekday %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Weekday) UnmarshalText(text []byte) error {
	parsed, err := ParseWeekday(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

var weekdayNames = map[string]Weekday{
	"mon": Monday, "monday": Monday,
	"tue": Tuesday, "tues": Tuesday, "tuesday": Tuesday,
	"wed": Wednesday, "wednesday": Wednesday,
	"thu": Thursday, "thur": Thursday, "thurs": Thursday, "thursday": Thursday,
	"fri": Friday, "friday": Friday,
	"sat": Saturday, "saturday": Saturday,
	"sun": Sunday, "sunday": Sunday,
}

// ParseWeekday parses a day name. Matching is case-insensitive and accepts
// both abbreviations and full names.
func ParseWeekday(s string) (Weekday, error) {
	d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("invalid weekday: %q", s)
	}
	return d, nil
}

// ParseWeekdays parses a comma-separated list of day names. The presets
// "weekdays", "weekend" and "all" are also recognized.
func ParseWeekdays(s string) ([]Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return nil, nil
	case "weekdays":
		return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}, nil
	case "weekend":
		return []Weekday{Saturday, Sunday}, nil
	case "all", "everyday":
		return AllWeekdays(), nil
	}

	var days []Weekday
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		d, err := ParseWeekday(part)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return SortDays(days), nil
}

// SortDays returns the canonical form of a day set: deduplicated and
// ordered Monday first. The input is not modified.
func SortDays(days []Weekday) []Weekday {
	seen := make(map[Weekday]bool, len(days))
	out := make([]Weekday, 0, len(days))
	for _, d := range days {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SameDays reports whether two day lists describe the same set.
func SameDays(a, b []Weekday) bool {
	sa, sb := SortDays(a), SortDays(b)
	if len(sa) != len(sb) {
		return false
	}
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}

// FormatDays renders a day list as "Mon, Tue".
func FormatDays(days []Weekday) string {
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return strings.Join(names, ", ")
}
