package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/models"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/utils"
)

// Outcome is the result of classifying a candidate against a zone.
type Outcome string

const (
	OutcomeAccepted    Outcome = "accepted"
	OutcomeDuplicate   Outcome = "duplicate"
	OutcomeSuperseded  Outcome = "superseded"
	OutcomeConflicting Outcome = "conflicting"
	OutcomeInvalid     Outcome = "invalid"
)

// Classification carries the outcome plus the existing rules it implicates:
// the matching rule for duplicate, the rules that would be replaced for
// superseded, and the clashing rules for conflicting. Reason is set for invalid.
type Classification struct {
	Outcome Outcome
	Rules   []models.AlarmRule
	Reason  error
}

// Invalid wraps a validation failure as a classification.
func Invalid(err error) Classification {
	return Classification{Outcome: OutcomeInvalid, Reason: err}
}

// RuleIDs lists the implicated rule ids.
func (c Classification) RuleIDs() []int64 {
	ids := make([]int64, len(c.Rules))
	for i, r := range c.Rules {
		ids[i] = r.ID
	}
	return ids
}

// Message is a human-readable explanation suitable for showing the user.
func (c Classification) Message() string {
	switch c.Outcome {
	case OutcomeAccepted:
		return "Rule can be added without affecting existing rules."
	case OutcomeDuplicate:
		return "An identical rule already exists in this zone."
	case OutcomeSuperseded:
		return fmt.Sprintf("The new rule fully covers %d existing rule(s): %s", len(c.Rules), summaries(c.Rules))
	case OutcomeConflicting:
		return fmt.Sprintf("The new rule partially overlaps %d existing rule(s): %s", len(c.Rules), summaries(c.Rules))
	case OutcomeInvalid:
		if c.Reason != nil {
			return fmt.Sprintf("Invalid rule: %v", c.Reason)
		}
		return "Invalid rule."
	default:
		return string(c.Outcome)
	}
}

func summaries(rules []models.AlarmRule) string {
	parts := make([]string, len(rules))
	for i, r := range rules {
		parts[i] = fmt.Sprintf("#%d %s", r.ID, r.Summary())
	}
	return strings.Join(parts, "; ")
}

type interaction int

const (
	interactionNone interaction = iota
	interactionSupersedes
	interactionConflicts
)

// Classify decides what adding candidate to a zone holding existing would do.
// It is pure: existing is not modified and nothing is persisted.
func Classify(existing []models.AlarmRule, candidate models.Candidate, now time.Time) Classification {
	if err := Validate(candidate, now); err != nil {
		return Invalid(err)
	}

	// Exact duplicates stop classification before any overlap check.
	for _, rule := range existing {
		if rule.Type == candidate.Type && rule.Candidate.Equal(candidate) {
			return Classification{Outcome: OutcomeDuplicate, Rules: []models.AlarmRule{rule}}
		}
	}

	var superseded, conflicting []models.AlarmRule
	for _, rule := range existing {
		if rule.Type != candidate.Type || !rule.Enabled {
			continue
		}
		switch interact(candidate, rule.Candidate) {
		case interactionSupersedes:
			superseded = append(superseded, rule)
		case interactionConflicts:
			conflicting = append(conflicting, rule)
		}
	}

	switch {
	case len(conflicting) > 0:
		return Classification{Outcome: OutcomeConflicting, Rules: conflicting}
	case len(superseded) > 0:
		return Classification{Outcome: OutcomeSuperseded, Rules: superseded}
	default:
		return Classification{Outcome: OutcomeAccepted}
	}
}

// interact compares a candidate with one existing rule of the same type.
func interact(candidate, existing models.Candidate) interaction {
	switch candidate.Type {
	case models.RuleTypeRecurring:
		if candidate.Recurring == nil || existing.Recurring == nil {
			return interactionNone
		}
		return interactRecurring(*candidate.Recurring, *existing.Recurring)
	case models.RuleTypeOneTime:
		if candidate.OneTime == nil || existing.OneTime == nil {
			return interactionNone
		}
		a, b := utils.RuleSpan(*candidate.OneTime), utils.RuleSpan(*existing.OneTime)
		if !a.Overlaps(b) {
			return interactionNone
		}
		if a.Contains(b) {
			return interactionSupersedes
		}
		return interactionConflicts
	default:
		return interactionNone
	}
}

// interactRecurring compares intervals on the shared days only. The candidate
// supersedes when its interval contains the existing one and the shared days
// reach every day the existing rule occupies.
func interactRecurring(candidate, existing models.Recurring) interaction {
	shared := utils.SharedDays(candidate, existing)
	if len(shared) == 0 {
		return interactionNone
	}

	a, b := utils.RuleInterval(candidate), utils.RuleInterval(existing)
	if !a.Overlaps(b) {
		return interactionNone
	}
	if a.Contains(b) && utils.CoversAll(shared, utils.EffectiveDays(existing)) {
		return interactionSupersedes
	}
	return interactionConflicts
}
