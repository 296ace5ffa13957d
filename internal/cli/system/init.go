package system

import (
	"fmt"
	"os"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/cli"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/config"
)

type InitCmd struct {
	Force bool `help:"Delete an existing SQLite or JSON store before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		path := ctx.Store.GetConfigPath()
		if _, err := os.Stat(path); err == nil {
			snapshotBefore(ctx, "init --force")
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			ctx.Printf("Deleted existing store at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized zonealarm storage at: %s\n", ctx.Store.GetConfigPath())

	if ctx.ConfigPath != "" && ctx.Config != nil {
		if _, err := os.Stat(ctx.ConfigPath); os.IsNotExist(err) {
			if err := config.Save(ctx.ConfigPath, ctx.Config); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			ctx.Printf("Wrote config to: %s\n", ctx.ConfigPath)
		}
	}
	return nil
}
