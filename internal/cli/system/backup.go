package system

import (
	"fmt"
	"path/filepath"

	"github.com/aleksanderbl29/meal-planner/internal/backup"
	"github.com/aleksanderbl29/meal-planner/internal/cli"
	"github.com/aleksanderbl29/meal-planner/internal/constants"
)

// BackupFlags selects the snapshot directory parent; the default sits next
// to the local store.
type BackupFlags struct {
	Dir string `help:"Directory holding the backups folder (defaults to the local store's directory)." type:"path"`
}

func (f BackupFlags) manager(ctx *cli.Context) *backup.Manager {
	dir := f.Dir
	if dir == "" {
		dir = ctx.Config.ConfigDir()
	}
	mgr := backup.NewManager(ctx.Store, dir)
	mgr.Now = ctx.Planner.Now
	return mgr
}

type BackupCreateCmd struct {
	BackupFlags
}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	path, err := c.manager(ctx).CreateBackup(ctx.Request())
	if err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}
	fmt.Fprintf(ctx.Writer(), "✓ Backup created: %s\n", path)
	return nil
}

type BackupListCmd struct {
	BackupFlags
}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr := c.manager(ctx)
	backups, err := mgr.ListBackups()
	if err != nil {
		return err
	}

	out := ctx.Writer()
	if len(backups) == 0 {
		fmt.Fprintf(out, "No backups found in %s\n", mgr.GetBackupDir())
		return nil
	}
	fmt.Fprintf(out, "Backups in %s (newest first):\n", mgr.GetBackupDir())
	for _, b := range backups {
		fmt.Fprintf(out, "  - %s  %s  %d bytes\n", filepath.Base(b.Path), b.Timestamp.Format(constants.DateFormat+" 15:04:05"), b.Size)
	}
	return nil
}

type BackupRestoreCmd struct {
	BackupFlags
	Path string `arg:"" help:"Backup file, or its name inside the backups folder."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr := c.manager(ctx)
	path := c.Path
	if filepath.Base(path) == path {
		path = filepath.Join(mgr.GetBackupDir(), path)
	}

	meals, err := mgr.RestoreBackup(ctx.Request(), path)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Writer(), "✓ Restored %d meals from %s\n", len(meals), filepath.Base(path))
	return nil
}
