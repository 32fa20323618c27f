package backups

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lectern/internal/backup"
	"github.com/julianstephens/lectern/internal/cli"
	"github.com/julianstephens/lectern/internal/constants"
)

var errNotFileStore = errors.New("backups are only available for SQLite and JSON storage")

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	if !cli.IsFileStore(ctx.Store) {
		return errNotFileStore
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backupPath, err := mgr.Create()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	ctx.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	if !cli.IsFileStore(ctx.Store) {
		return errNotFileStore
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.Println("No backups found.")
		ctx.Printf("Backups are stored in: %s\n", mgr.Dir())
		return nil
	}

	ctx.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		ctx.Printf("  %s  %s  (%.1f KB)\n", b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), sizeKB)
	}
	ctx.Printf("\nBackup directory: %s\n", mgr.Dir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	if !cli.IsFileStore(ctx.Store) {
		return errNotFileStore
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())

	backupPath, err := c.resolve(mgr.Dir())
	if err != nil {
		return err
	}

	if !c.Yes {
		if !ctx.Interactive {
			return errors.New("refusing to restore without --yes")
		}
		ctx.Println("⚠️  WARNING: This will replace your current store with the backup.")
		ctx.Println("⚠️  IMPORTANT: All lectern processes (including the TUI and serve) must be stopped first.")
		confirm := false
		if err := huh.NewConfirm().
			Title(fmt.Sprintf("Restore from %s?", filepath.Base(backupPath))).
			Value(&confirm).
			Run(); err != nil && !errors.Is(err, huh.ErrUserAborted) {
			return err
		}
		if !confirm {
			ctx.Println("Restore cancelled.")
			return nil
		}
	}

	if err := ctx.Lock("backup restore"); err != nil {
		return err
	}
	defer ctx.Unlock()

	if err := ctx.Store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close store: %v\n", err)
	}

	previous, err := mgr.Restore(backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	if previous != "" {
		ctx.Printf("Previous store saved as %s\n", filepath.Base(previous))
	}
	ctx.Println("✓ Store restored successfully!")
	return nil
}

// resolve accepts an absolute path, a path relative to the working
// directory, or a bare filename inside the backup directory.
func (c *BackupRestoreCmd) resolve(backupDir string) (string, error) {
	if filepath.IsAbs(c.BackupFile) {
		if _, err := os.Stat(c.BackupFile); os.IsNotExist(err) {
			return "", fmt.Errorf("backup file not found: %s", c.BackupFile)
		}
		return c.BackupFile, nil
	}
	if _, err := os.Stat(c.BackupFile); err == nil {
		return filepath.Abs(c.BackupFile)
	}
	candidate := filepath.Join(backupDir, c.BackupFile)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", backupDir)
}
