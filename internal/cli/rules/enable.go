package rules

import (
	"errors"
	"fmt"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/cli"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/storage"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/validation"
)

type EnableCmd struct {
	Zone string `short:"z" help:"Zone id." required:""`
	ID   int64  `arg:"" help:"Rule id."`
}

func (c *EnableCmd) Run(ctx *cli.Context) error {
	return setEnabled(ctx, c.Zone, c.ID, true)
}

type DisableCmd struct {
	Zone string `short:"z" help:"Zone id." required:""`
	ID   int64  `arg:"" help:"Rule id."`
}

func (c *DisableCmd) Run(ctx *cli.Context) error {
	return setEnabled(ctx, c.Zone, c.ID, false)
}

func setEnabled(ctx *cli.Context, zone string, id int64, enabled bool) error {
	classification, err := ctx.Scheduler.SetEnabled(zone, id, enabled)
	if err != nil {
		if errors.Is(err, storage.ErrRuleNotFound) {
			return fmt.Errorf("rule %d not found in zone %s", id, zone)
		}
		return err
	}
	if classification.Outcome != validation.OutcomeAccepted {
		return &cli.RejectedError{Classification: classification}
	}

	verb := "Disabled"
	if enabled {
		verb = "Enabled"
	}
	ctx.Println(cli.SuccessStyle.Render("✓") + fmt.Sprintf(" %s rule #%d in zone %s", verb, id, zone))
	return nil
}
