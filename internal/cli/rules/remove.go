package rules

import (
	"errors"
	"fmt"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/cli"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/storage"
)

type RemoveCmd struct {
	Zone string `short:"z" help:"Zone id." required:""`
	ID   int64  `arg:"" help:"Rule id."`
}

func (c *RemoveCmd) Run(ctx *cli.Context) error {
	if err := ctx.Scheduler.Remove(c.Zone, c.ID); err != nil {
		if errors.Is(err, storage.ErrRuleNotFound) {
			return fmt.Errorf("rule %d not found in zone %s", c.ID, c.Zone)
		}
		return err
	}
	ctx.Println(cli.SuccessStyle.Render("✓") + fmt.Sprintf(" Removed rule #%d from zone %s", c.ID, c.Zone))
	return nil
}
