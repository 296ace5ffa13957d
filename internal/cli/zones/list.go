package zones

import (
	"fmt"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/cli"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/models"
)

type ZoneCmd struct {
	List ListCmd `cmd:"" help:"List zones with rules." default:"1"`
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	zones, err := ctx.Scheduler.Zones()
	if err != nil {
		return fmt.Errorf("failed to list zones: %w", err)
	}
	if len(zones) == 0 {
		ctx.Println("No zones found")
		return nil
	}

	now := ctx.Now()
	ctx.Println(cli.HeaderStyle.Render("Zones:"))
	for _, zone := range zones {
		rules, err := ctx.Scheduler.Rules(zone)
		if err != nil {
			return fmt.Errorf("failed to load zone %s: %w", zone, err)
		}
		active := 0
		for _, r := range rules {
			if r.Enabled && r.Status(now) != models.RuleStatusExpired {
				active++
			}
		}
		ctx.Printf("  %s %s\n", zone, cli.MutedStyle.Render(fmt.Sprintf("(%d rule(s), %d active)", len(rules), active)))
	}
	return nil
}
