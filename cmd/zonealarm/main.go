package main

import (
	"github.com/alecthomas/kong"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/cli"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/cli/rules"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/cli/system"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/cli/zones"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/config"
	zaerrors "github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/errors"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/logger"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/notify"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/scheduler"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"${default_config}"`
	Store   string `help:"Store location: a SQLite or JSON file path, a PostgreSQL connection string without credentials, 'keyring', a redis:// URL, or 'redis'. Overrides the config file." type:"string"`
	Debug   bool   `help:"Log at debug level and mirror logs to stderr."`

	Init     system.InitCmd     `cmd:"" help:"Initialize zonealarm storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Zone     zones.ZoneCmd      `cmd:"" help:"Inspect zones."`
	Rule     rules.RuleCmd      `cmd:"" help:"Manage a zone's alarm rules."`
	Armed    rules.ArmedCmd     `cmd:"" help:"Show whether a zone is armed at an instant."`
	Validate system.ValidateCmd `cmd:"" help:"Re-check stored rules for conflicts."`
	Keyring  system.KeyringCmd  `cmd:"" help:"Manage secrets in the OS keyring."`
	Backup   system.BackupCmd   `cmd:"" help:"Snapshot and restore the SQLite zone database."`
}

func main() {
	vars := kong.Vars{
		"version":        "v0.1.0",
		"default_config": config.DefaultPath(),
	}
	for k, v := range rules.Vars() {
		vars[k] = v
	}

	ctx := kong.Parse(&CLI,
		kong.Name("zonealarm"),
		kong.Description("Per-zone intrusion alarm schedules with conflict detection"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		vars,
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		zaerrors.Fatal(err)
	}
	if CLI.Store != "" {
		cfg.Store = CLI.Store
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, LogDir: cfg.LogDir}); err != nil {
		zaerrors.Fatalf("failed to initialize logger: %v", err)
	}
	logger.Debug("Starting", "command", ctx.Command(), "store", cfg.Store)

	store, err := cli.OpenStore(cfg)
	if err != nil {
		zaerrors.Fatal(err)
	}
	defer store.Close()

	// Init handles its own loading.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			zaerrors.Fatal(err)
		}
	}

	publisher, err := cli.OpenPublisher(cfg)
	if err != nil {
		logger.Warn("MQTT unavailable, schedule changes will not be published", "broker", cfg.MQTT.Broker, "error", err)
		publisher = notify.Nop{}
	}
	defer publisher.Close()

	appCtx := &cli.Context{
		Store:      store,
		Scheduler:  scheduler.New(store, scheduler.WithPublisher(publisher)),
		Config:     cfg,
		ConfigPath: CLI.Config,
		Confirm:    cli.HuhConfirm,
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		publisher.Close()
		zaerrors.Fatal(err)
	}
}
