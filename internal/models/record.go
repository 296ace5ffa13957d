package models

import (
	"encoding/json"
	"fmt"
)

// RuleRecord is the flat persisted shape of an AlarmRule. Recurring records
// carry days/start/end/alarmMode; one-time records carry the two datetimes.
// SpansNextDay is written for readers of the document but ignored on load.
type RuleRecord struct {
	ID            int64     `json:"id"`
	Type          RuleType  `json:"type"`
	Days          []Weekday `json:"days,omitempty"`
	Start         string    `json:"start,omitempty"` // HH:MM
	End           string    `json:"end,omitempty"`   // HH:MM
	SpansNextDay  *bool     `json:"spansNextDay,omitempty"`
	AlarmMode     AlarmMode `json:"alarmMode,omitempty"`
	StartDateTime string    `json:"startDateTime,omitempty"` // YYYY-MM-DDTHH:MM
	EndDateTime   string    `json:"endDateTime,omitempty"`   // YYYY-MM-DDTHH:MM
	Enabled       bool      `json:"enabled"`
}

func NewRuleRecord(r AlarmRule) (RuleRecord, error) {
	rec := RuleRecord{ID: r.ID, Type: r.Type, Enabled: r.Enabled}
	switch {
	case r.IsRecurring():
		spans := r.Recurring.SpansNextDay()
		rec.Days = SortDays(r.Recurring.Days)
		rec.Start = r.Recurring.Start.String()
		rec.End = r.Recurring.End.String()
		rec.SpansNextDay = &spans
		rec.AlarmMode = r.Recurring.Mode
	case r.IsOneTime():
		rec.StartDateTime = FormatLocalDateTime(r.OneTime.Start)
		rec.EndDateTime = FormatLocalDateTime(r.OneTime.End)
	default:
		return RuleRecord{}, fmt.Errorf("rule %d: unknown rule type %q", r.ID, r.Type)
	}
	return rec, nil
}

// Rule converts the record back into a domain rule.
func (rec RuleRecord) Rule() (AlarmRule, error) {
	rule := AlarmRule{ID: rec.ID, Enabled: rec.Enabled}
	switch rec.Type {
	case RuleTypeRecurring:
		start, err := ParseTimeOfDay(rec.Start)
		if err != nil {
			return AlarmRule{}, fmt.Errorf("rule %d: start: %w", rec.ID, err)
		}
		end, err := ParseTimeOfDay(rec.End)
		if err != nil {
			return AlarmRule{}, fmt.Errorf("rule %d: end: %w", rec.ID, err)
		}
		mode := rec.AlarmMode
		if mode == "" {
			mode = AlarmModeDaily
		}
		rule.Candidate = NewRecurring(rec.Days, start, end, mode)
	case RuleTypeOneTime:
		start, err := ParseLocalDateTime(rec.StartDateTime)
		if err != nil {
			return AlarmRule{}, fmt.Errorf("rule %d: startDateTime: %w", rec.ID, err)
		}
		end, err := ParseLocalDateTime(rec.EndDateTime)
		if err != nil {
			return AlarmRule{}, fmt.Errorf("rule %d: endDateTime: %w", rec.ID, err)
		}
		rule.Candidate = NewOneTime(start, end)
	default:
		return AlarmRule{}, fmt.Errorf("rule %d: unknown rule type %q", rec.ID, rec.Type)
	}
	return rule, nil
}

func (r AlarmRule) MarshalJSON() ([]byte, error) {
	rec, err := NewRuleRecord(r)
	if err != nil {
		return nil, err
	}
	return json.Marshal(rec)
}

func (r *AlarmRule) UnmarshalJSON(data []byte) error {
	var rec RuleRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	rule, err := rec.Rule()
	if err != nil {
		return err
	}
	*r = rule
	return nil
}

// ZoneSchedules maps zone id to that zone's rules.
type ZoneSchedules map[string][]AlarmRule
