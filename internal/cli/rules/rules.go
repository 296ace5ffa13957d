package rules

// RuleCmd groups the rule subcommands.
type RuleCmd struct {
	Add struct {
		Recurring AddRecurringCmd `cmd:"" help:"Add a weekly rule."`
		Once      AddOnceCmd      `cmd:"" help:"Add a one-time rule."`
	} `cmd:"" help:"Add a rule to a zone."`
	Check struct {
		Recurring CheckRecurringCmd `cmd:"" help:"Classify a weekly rule."`
		Once      CheckOnceCmd      `cmd:"" help:"Classify a one-time rule."`
	} `cmd:"" help:"Show what adding a rule would do, without saving it."`
	List     ListCmd     `cmd:"" help:"List a zone's rules."`
	Remove   RemoveCmd   `cmd:"" help:"Remove a rule."`
	Enable   EnableCmd   `cmd:"" help:"Enable a rule if it fits the zone."`
	Disable  DisableCmd  `cmd:"" help:"Disable a rule without removing it."`
	Upcoming UpcomingCmd `cmd:"" help:"Preview when a zone will be armed."`
}
