package models

import (
	"testing"
	"time"
)

func TestAlarmRule_Status(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.Local)
	oneTime := func(start, end time.Time) AlarmRule {
		return AlarmRule{ID: 1, Enabled: true, Candidate: NewOneTime(start, end)}
	}

	tests := []struct {
		name string
		rule AlarmRule
		want RuleStatus
	}{
		{
			name: "recurring",
			rule: AlarmRule{ID: 1, Candidate: NewRecurring([]Weekday{Monday}, 0, 60, AlarmModeDaily)},
			want: RuleStatusActive,
		},
		{"expired", oneTime(now.Add(-3*time.Hour), now.Add(-time.Hour)), RuleStatusExpired},
		{"scheduled", oneTime(now.Add(time.Hour), now.Add(2*time.Hour)), RuleStatusScheduled},
		{"active now", oneTime(now.Add(-time.Hour), now.Add(time.Hour)), RuleStatusActiveNow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule.Status(now); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSortRules(t *testing.T) {
	base := time.Date(2026, 10, 20, 8, 0, 0, 0, time.Local)
	rules := []AlarmRule{
		{ID: 4, Candidate: NewOneTime(base.Add(24*time.Hour), base.Add(25*time.Hour))},
		{ID: 3, Candidate: NewRecurring([]Weekday{Friday}, NewTimeOfDay(22, 0), NewTimeOfDay(6, 0), AlarmModeDaily)},
		{ID: 5, Candidate: NewOneTime(base, base.Add(time.Hour))},
		{ID: 2, Candidate: NewRecurring([]Weekday{Monday}, NewTimeOfDay(8, 0), NewTimeOfDay(9, 0), AlarmModeDaily)},
		{ID: 1, Candidate: NewRecurring([]Weekday{Tuesday}, NewTimeOfDay(22, 0), NewTimeOfDay(6, 0), AlarmModeDaily)},
	}

	SortRules(rules)

	want := []int64{2, 1, 3, 5, 4}
	for i, id := range want {
		if rules[i].ID != id {
			t.Fatalf("position %d: expected id %d, got %d", i, id, rules[i].ID)
		}
	}
}

func TestDurations(t *testing.T) {
	overnight := Recurring{Days: []Weekday{Monday, Tuesday}, Start: NewTimeOfDay(22, 0), End: NewTimeOfDay(7, 0), Mode: AlarmModeContinuous}
	if got := FormatDuration(overnight.Duration(), overnight.Multiplier()); got != "9h 0m × 2" {
		t.Errorf("expected %q, got %q", "9h 0m × 2", got)
	}
	if overnight.TotalDuration() != 18*time.Hour {
		t.Errorf("expected 18h total, got %v", overnight.TotalDuration())
	}

	daily := Recurring{Days: []Weekday{Monday}, Start: NewTimeOfDay(0, 0), End: NewTimeOfDay(7, 0), Mode: AlarmModeDaily}
	if got := FormatDuration(daily.Duration(), daily.Multiplier()); got != "7h 0m" {
		t.Errorf("expected %q, got %q", "7h 0m", got)
	}

	start := time.Date(2026, 10, 20, 22, 0, 0, 0, time.Local)
	once := OneTime{Start: start, End: start.Add(90 * time.Minute)}
	if got := FormatDuration(once.Duration(), 1); got != "1h 30m" {
		t.Errorf("expected %q, got %q", "1h 30m", got)
	}
}
