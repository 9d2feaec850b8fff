package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tallyapp/tally/internal/backup"
	"github.com/tallyapp/tally/internal/cli"
	"github.com/tallyapp/tally/internal/constants"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Cache.GetConfigPath())
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Cache.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		fmt.Printf("Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	fmt.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		fmt.Printf("  %s  %s  (%.1f KB)\n",
			b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), float64(b.Size)/1024.0)
	}
	fmt.Printf("\nBackup directory: %s\n", mgr.GetBackupDir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Cache.GetConfigPath())

	backupPath := c.BackupFile
	if !filepath.IsAbs(backupPath) {
		if _, err := os.Stat(backupPath); err != nil {
			// Not in the working directory; try the backup directory.
			candidate := filepath.Join(mgr.GetBackupDir(), c.BackupFile)
			if _, err := os.Stat(candidate); err != nil {
				return fmt.Errorf("backup file not found: %s", c.BackupFile)
			}
			backupPath = candidate
		}
	}

	if err := ctx.Cache.Close(); err != nil {
		return fmt.Errorf("failed to close database before restore: %w", err)
	}

	if err := mgr.RestoreBackup(backupPath); err != nil {
		return err
	}

	fmt.Printf("✓ Restored cache from %s\n", filepath.Base(backupPath))
	fmt.Println("  Note: the backend is untouched; 'tally sync' will overwrite the cache with backend state.")
	return nil
}
