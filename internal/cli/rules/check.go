package rules

import (
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/cli"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/models"
)

// CheckRecurringCmd classifies a recurring rule without saving it.
type CheckRecurringCmd struct {
	RecurringFlags
}

func (c *CheckRecurringCmd) Run(ctx *cli.Context) error {
	candidate, err := c.Candidate()
	if err != nil {
		return err
	}
	return check(ctx, c.Zone, candidate)
}

type CheckOnceCmd struct {
	OnceFlags
}

func (c *CheckOnceCmd) Run(ctx *cli.Context) error {
	candidate, err := c.Candidate()
	if err != nil {
		return err
	}
	return check(ctx, c.Zone, candidate)
}

func check(ctx *cli.Context, zone string, candidate models.Candidate) error {
	classification, err := ctx.Scheduler.Check(zone, candidate)
	if err != nil {
		return err
	}
	ctx.Println(cli.FormatClassification(classification))
	return nil
}
