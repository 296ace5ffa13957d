package rules

import (
	"fmt"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/cli"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/models"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/scheduler"
)

type AddRecurringCmd struct {
	RecurringFlags
	Yes bool `short:"y" help:"Replace superseded rules without asking."`
}

func (c *AddRecurringCmd) Run(ctx *cli.Context) error {
	candidate, err := c.Candidate()
	if err != nil {
		return err
	}
	return submit(ctx, c.Zone, candidate, c.Yes)
}

type AddOnceCmd struct {
	OnceFlags
	Yes bool `short:"y" help:"Replace superseded rules without asking."`
}

func (c *AddOnceCmd) Run(ctx *cli.Context) error {
	candidate, err := c.Candidate()
	if err != nil {
		return err
	}
	return submit(ctx, c.Zone, candidate, c.Yes)
}

func submit(ctx *cli.Context, zone string, candidate models.Candidate, yes bool) error {
	d, err := ctx.Scheduler.Submit(zone, candidate)
	if err != nil {
		return err
	}

	switch d.State {
	case scheduler.StateCommitted:
		ctx.Println(cli.SuccessStyle.Render("✓") + fmt.Sprintf(" Added rule #%d to zone %s: %s", d.Rule.ID, zone, d.Rule.Summary()))
		return nil

	case scheduler.StateAwaitingConfirm:
		ctx.Println(cli.FormatClassification(d.Classification))
		ok := yes
		if !ok {
			ok, err = ctx.Ask(
				fmt.Sprintf("Replace %d rule(s) in zone %s?", len(d.Classification.Rules), zone),
				"The superseded rules will be removed and the new rule added.",
			)
			if err != nil {
				_ = ctx.Scheduler.Abort(d)
				return fmt.Errorf("confirmation failed: %w", err)
			}
		}
		if !ok {
			if err := ctx.Scheduler.Abort(d); err != nil {
				return err
			}
			ctx.Println("Cancelled. No changes were made.")
			return nil
		}
		rule, err := ctx.Scheduler.Confirm(d)
		if err != nil {
			return err
		}
		ctx.Println(cli.SuccessStyle.Render("✓") + fmt.Sprintf(" Replaced rule(s) %v with #%d in zone %s", d.Classification.RuleIDs(), rule.ID, zone))
		return nil

	default:
		return &cli.RejectedError{Classification: d.Classification}
	}
}
