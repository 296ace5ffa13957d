package system

import (
	"errors"
	"fmt"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/backup"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/cli"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/logger"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/storage/sqlite"
)

var errBackupUnsupported = errors.New("backups are only supported for the SQLite store")

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Snapshot the zone database." default:"1"`
	List    BackupListCmd    `cmd:"" help:"List snapshots."`
	Restore BackupRestoreCmd `cmd:"" help:"Replace the zone database with a snapshot."`
}

func backupManager(ctx *cli.Context) (*backup.Manager, error) {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil, errBackupUnsupported
	}
	return backup.NewManager(ctx.Store.GetConfigPath()), nil
}

// snapshotBefore takes a best-effort snapshot ahead of a destructive step.
// Non-SQLite stores and missing databases are skipped.
func snapshotBefore(ctx *cli.Context, step string) {
	mgr, err := backupManager(ctx)
	if err != nil {
		return
	}
	snap, err := mgr.Create()
	if err != nil {
		if !errors.Is(err, backup.ErrNoDatabase) {
			logger.Warn("Failed to back up before "+step, "error", err)
			ctx.Println(cli.WarningStyle.Render(fmt.Sprintf("Warning: backup before %s failed: %v", step, err)))
		}
		return
	}
	ctx.Printf("Backed up database to %s\n", snap.Name())
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	snap, err := mgr.Create()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	ctx.Println(cli.SuccessStyle.Render("✓") + " Backup created: " + snap.Name())
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	snapshots, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(snapshots) == 0 {
		ctx.Println("No backups found.")
		ctx.Printf("Backups are stored in: %s\n", mgr.Dir())
		return nil
	}

	ctx.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(snapshots), backup.MaxSnapshots)
	for _, s := range snapshots {
		ctx.Printf("  %s  %s  (%.1f KB)\n", s.Timestamp.Format("2006-01-02 15:04:05"), s.Name(), float64(s.Size)/1024.0)
	}
	ctx.Printf("\nBackup directory: %s\n", mgr.Dir())
	return nil
}

type BackupRestoreCmd struct {
	File string `arg:"" help:"Path or filename of the snapshot to restore."`
	Yes  bool   `short:"y" help:"Restore without asking."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	path, err := mgr.Resolve(c.File)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.Ask("Restore zone database?",
			fmt.Sprintf("This replaces %s with %s. Stop any running zonealarm TUI first. The current database is backed up before restoring.", ctx.Store.GetConfigPath(), path))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Restore cancelled.")
			return nil
		}
	}

	if err := ctx.Store.Close(); err != nil {
		logger.Warn("Failed to close database before restore", "error", err)
	}
	previous, err := mgr.Restore(path)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	ctx.Println(cli.SuccessStyle.Render("✓") + " Database restored from " + path)
	if previous.Path != "" {
		ctx.Printf("Previous database saved as %s\n", previous.Name())
	}
	return nil
}
