package system

import (
	"fmt"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/cli"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/validation"
)

// ValidateCmd audits stored zones for duplicates and overlaps that slipped
// past classification, such as rules written by hand.
type ValidateCmd struct {
	Zone string `short:"z" help:"Audit only this zone."`
}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	zones := []string{cmd.Zone}
	if cmd.Zone == "" {
		var err error
		zones, err = ctx.Scheduler.Zones()
		if err != nil {
			return fmt.Errorf("failed to list zones: %w", err)
		}
	}

	combined := validation.ValidationResult{Conflicts: []validation.Conflict{}}
	for _, zone := range zones {
		ctx.Printf("Validating zone %s...\n", zone)
		result, err := ctx.Scheduler.Audit(zone)
		if err != nil {
			return fmt.Errorf("failed to audit zone %s: %w", zone, err)
		}
		combined.Conflicts = append(combined.Conflicts, result.Conflicts...)
	}

	ctx.Println()
	ctx.Println(combined.FormatReport())
	if combined.HasConflicts() {
		return fmt.Errorf("found %d conflict(s)", len(combined.Conflicts))
	}
	return nil
}
