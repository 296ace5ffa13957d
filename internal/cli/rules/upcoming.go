package rules

import (
	"fmt"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/cli"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/constants"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/models"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/scheduler"
)

// UpcomingCmd previews when a zone will be armed.
type UpcomingCmd struct {
	Zone string `short:"z" help:"Zone id." required:""`
	Days int    `help:"Number of days to preview." default:"${default_upcoming_days}"`
}

func (c *UpcomingCmd) Run(ctx *cli.Context) error {
	if c.Days <= 0 {
		return fmt.Errorf("--days must be positive")
	}
	rules, err := ctx.Scheduler.Rules(c.Zone)
	if err != nil {
		return err
	}

	from := ctx.Now()
	to := from.AddDate(0, 0, c.Days)
	occurrences, err := scheduler.Upcoming(rules, from, to)
	if err != nil {
		return err
	}

	if len(occurrences) == 0 {
		ctx.Printf("Zone %s is not armed in the next %d day(s)\n", c.Zone, c.Days)
		return nil
	}

	ctx.Println(cli.HeaderStyle.Render(fmt.Sprintf("Zone %s, next %d day(s):", c.Zone, c.Days)))
	for _, o := range occurrences {
		ctx.Printf("  %s %s → %s %s  %s\n",
			o.Start.Format("Mon"), o.Start.Format(constants.DateFormat+" "+constants.TimeFormat),
			o.End.Format("Mon"), o.End.Format(constants.DateFormat+" "+constants.TimeFormat),
			cli.MutedStyle.Render(fmt.Sprintf("#%d %s", o.Rule.ID, models.FormatDuration(o.End.Sub(o.Start), 1))))
	}
	return nil
}

// ArmedCmd shows which rules cover an instant.
type ArmedCmd struct {
	Zone string `short:"z" help:"Zone id." required:""`
	At   string `help:"Instant to check (YYYY-MM-DDTHH:MM, local time). Defaults to now."`
}

func (c *ArmedCmd) Run(ctx *cli.Context) error {
	at := ctx.Now()
	if c.At != "" {
		t, err := models.ParseLocalDateTime(c.At)
		if err != nil {
			return fmt.Errorf("invalid --at (expected %s): %w", constants.DateTimeFormat, err)
		}
		at = t
	}

	rules, err := ctx.Scheduler.Rules(c.Zone)
	if err != nil {
		return err
	}
	armed, err := scheduler.ArmedAt(rules, at)
	if err != nil {
		return err
	}

	when := models.FormatLocalDateTime(at)
	if len(armed) == 0 {
		ctx.Printf("Zone %s is disarmed at %s\n", c.Zone, when)
		return nil
	}
	ctx.Println(cli.WarningStyle.Render(fmt.Sprintf("Zone %s is armed at %s by:", c.Zone, when)))
	for _, r := range armed {
		ctx.Println(cli.FormatRule(r, at))
	}
	return nil
}
