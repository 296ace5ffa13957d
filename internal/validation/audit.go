package validation

import (
	"fmt"
	"strings"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/models"
)

// ConflictType represents the type of problem found in a stored zone
type ConflictType string

const (
	ConflictInvalidRule      ConflictType = "invalid_rule"
	ConflictDuplicateRule    ConflictType = "duplicate_rule"
	ConflictRedundantRule    ConflictType = "redundant_rule"
	ConflictOverlappingRules ConflictType = "overlapping_rules"
	ConflictDuplicateRuleID  ConflictType = "duplicate_rule_id"
)

// Conflict represents a problem detected between stored rules
type Conflict struct {
	Type        ConflictType
	Zone        string
	Description string
	RuleIDs     []int64
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		if conflict.Zone != "" {
			fmt.Fprintf(&b, "- [%s] %s\n", conflict.Zone, conflict.Description)
		} else {
			fmt.Fprintf(&b, "- %s\n", conflict.Description)
		}
	}
	return b.String()
}

// Audit re-checks a stored zone pairwise. Rules written by hand or by older
// versions can violate the invariants Classify enforces on new rules.
// Expired one-time rules are not reported.
func Audit(zoneID string, rules []models.AlarmRule) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	seenIDs := make(map[int64]bool, len(rules))
	for _, rule := range rules {
		if seenIDs[rule.ID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateRuleID,
				Zone:        zoneID,
				Description: fmt.Sprintf("Rule id %d is used more than once", rule.ID),
				RuleIDs:     []int64{rule.ID},
			})
		}
		seenIDs[rule.ID] = true

		if err := validateShape(rule.Candidate); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidRule,
				Zone:        zoneID,
				Description: fmt.Sprintf("Rule #%d is invalid: %v", rule.ID, err),
				RuleIDs:     []int64{rule.ID},
			})
		}
	}

	for i := 0; i < len(rules); i++ {
		for j := i + 1; j < len(rules); j++ {
			a, b := rules[i], rules[j]
			if a.Type != b.Type {
				continue
			}
			ids := []int64{a.ID, b.ID}

			if a.Candidate.Equal(b.Candidate) {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictDuplicateRule,
					Zone:        zoneID,
					Description: fmt.Sprintf("Rules #%d and #%d are identical (%s)", a.ID, b.ID, a.Summary()),
					RuleIDs:     ids,
				})
				continue
			}
			if !a.Enabled || !b.Enabled {
				continue
			}

			forward, backward := interact(a.Candidate, b.Candidate), interact(b.Candidate, a.Candidate)
			switch {
			case forward == interactionSupersedes || backward == interactionSupersedes:
				outer, inner := a, b
				if forward != interactionSupersedes {
					outer, inner = b, a
				}
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictRedundantRule,
					Zone:        zoneID,
					Description: fmt.Sprintf("Rule #%d (%s) is fully covered by rule #%d (%s)", inner.ID, inner.Summary(), outer.ID, outer.Summary()),
					RuleIDs:     ids,
				})
			case forward == interactionConflicts:
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictOverlappingRules,
					Zone:        zoneID,
					Description: fmt.Sprintf("Rules #%d (%s) and #%d (%s) partially overlap", a.ID, a.Summary(), b.ID, b.Summary()),
					RuleIDs:     ids,
				})
			}
		}
	}

	return result
}
