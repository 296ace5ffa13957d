package validation

import (
	"strings"
	"time"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/models"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/utils"
)

// ValidateZone checks that a zone has been chosen.
func ValidateZone(zoneID string) error {
	if strings.TrimSpace(zoneID) == "" {
		return fieldError("zone", ErrZoneRequired)
	}
	return nil
}

// Validate checks a candidate on its own, without looking at existing rules.
// One-time rules whose end is strictly before now are rejected.
func Validate(c models.Candidate, now time.Time) error {
	if err := validateShape(c); err != nil {
		return err
	}
	if c.Type == models.RuleTypeOneTime && c.OneTime.End.Before(now) {
		return fieldError("endDateTime", ErrEndInPast)
	}
	return nil
}

// validateShape holds the checks that stay true over time, so stored rules
// can be audited without expired one-time rules being flagged.
func validateShape(c models.Candidate) error {
	switch c.Type {
	case models.RuleTypeRecurring:
		return validateRecurring(c.Recurring)
	case models.RuleTypeOneTime:
		return validateOneTime(c.OneTime)
	default:
		return fieldError("type", ErrUnknownType)
	}
}

func validateRecurring(r *models.Recurring) error {
	if r == nil {
		return fieldError("recurring", ErrMissingWindow)
	}
	if len(r.Days) == 0 {
		return fieldError("days", ErrNoDays)
	}
	for _, d := range r.Days {
		if !d.Valid() {
			return fieldError("days", ErrInvalidDay)
		}
	}
	if !r.Start.Valid() {
		return fieldError("start", ErrTimeOutOfRange)
	}
	if !r.End.Valid() {
		return fieldError("end", ErrTimeOutOfRange)
	}
	switch r.Mode {
	case models.AlarmModeContinuous:
		if len(r.Days) > 1 && !utils.IsAdjacentSet(r.Days) {
			return fieldError("days", ErrNonAdjacentContinuous)
		}
	case models.AlarmModeDaily:
	default:
		return fieldError("alarmMode", ErrUnknownType)
	}
	return nil
}

func validateOneTime(o *models.OneTime) error {
	if o == nil || o.Start.IsZero() || o.End.IsZero() {
		return fieldError("oneTime", ErrMissingWindow)
	}
	if !o.End.After(o.Start) {
		return fieldError("endDateTime", ErrEndNotAfterStart)
	}
	return nil
}
