package rules

import (
	"fmt"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/cli"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/models"
)

type ListCmd struct {
	Zone        string `short:"z" help:"Zone id." required:""`
	ShowExpired bool   `help:"Include one-time rules that have already ended."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	rules, err := ctx.Scheduler.Rules(c.Zone)
	if err != nil {
		return err
	}

	now := ctx.Now()
	var shown []models.AlarmRule
	hidden := 0
	for _, r := range rules {
		if !c.ShowExpired && r.Status(now) == models.RuleStatusExpired {
			hidden++
			continue
		}
		shown = append(shown, r)
	}

	if len(shown) == 0 {
		ctx.Printf("No rules in zone %s\n", c.Zone)
	} else {
		ctx.Println(cli.HeaderStyle.Render("Rules in zone " + c.Zone + ":"))
		for _, r := range shown {
			ctx.Println(cli.FormatRule(r, now))
		}
	}
	if hidden > 0 {
		ctx.Println(cli.MutedStyle.Render(fmt.Sprintf("(%d expired rule(s) hidden, use --show-expired)", hidden)))
	}
	return nil
}
