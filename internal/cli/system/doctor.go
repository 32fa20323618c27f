package system

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/lectern/internal/backup"
	"github.com/julianstephens/lectern/internal/cli"
	"github.com/julianstephens/lectern/internal/constants"
	"github.com/julianstephens/lectern/internal/keyring"
	"github.com/julianstephens/lectern/internal/lockfile"
	"github.com/julianstephens/lectern/internal/migration"
	"github.com/julianstephens/lectern/internal/storage"
	"github.com/julianstephens/lectern/internal/timetable"
	"github.com/julianstephens/lectern/internal/utils"
	"github.com/julianstephens/lectern/internal/validation"
)

// migratable is implemented by the SQL-backed stores.
type migratable interface {
	Runner() (*migration.Runner, error)
}

func isPostgres(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://") || strings.Contains(s, "host=")
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	report := func(name string, err error, warnOnly bool) {
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", name)
		case warnOnly:
			ctx.Printf("⚠ %s: WARNING\n   %v\n", name, err)
		default:
			ctx.Printf("❌ %s: FAIL\n   Error: %v\n", name, err)
			hasError = true
		}
	}

	storeErr := ctx.Store.Load()
	report("Store reachable", storeErr, false)
	if storeErr == nil {
		report("Schema version", checkSchemaVersion(ctx.Store), false)
		report("Settings", checkSettings(ctx), false)
		report("Stored profile", checkProfile(ctx.Store), false)
	} else {
		ctx.Println("⊘ Schema version: SKIPPED (store not reachable)")
		ctx.Println("⊘ Settings: SKIPPED (store not reachable)")
		ctx.Println("⊘ Stored profile: SKIPPED (store not reachable)")
	}

	if cli.IsFileStore(ctx.Store) {
		report("Backups present", checkBackupsPresent(ctx.Store), true)
	}
	if storeErr == nil {
		report("Timetable sources", checkTimetable(ctx), false)
	}
	report("Clock/timezone", checkClock(ctx), false)
	report("Lockfile", checkLockfile(ctx), true)
	if !keyring.Available() {
		ctx.Println("ℹ OS keyring: not available (only needed for PostgreSQL)")
	}

	ctx.Println()
	if hasError {
		ctx.Println("Some checks failed.")
		return fmt.Errorf("diagnostics failed")
	}
	ctx.Println("All checks passed.")
	return nil
}

func checkSchemaVersion(store storage.Provider) error {
	m, ok := store.(migratable)
	if !ok {
		return nil
	}
	runner, err := m.Runner()
	if err != nil {
		return err
	}
	if err := runner.ValidateVersion(); err != nil {
		return err
	}
	current, err := runner.CurrentVersion()
	if err != nil {
		return err
	}
	latest, err := runner.LatestVersion()
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("schema is at version %d, latest is %d (run 'lectern migrate')", current, latest)
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	report := validation.New().ValidateSettings(settings)
	return report.Err()
}

func checkProfile(store storage.Provider) error {
	_, err := storage.LoadProfile(store)
	return err
}

func checkBackupsPresent(store storage.Provider) error {
	mgr := backup.NewManager(store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s", mgr.Dir())
	}
	if age := time.Since(backups[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("latest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkTimetable(ctx *cli.Context) error {
	cfg, err := ctx.Config()
	if err != nil {
		return err
	}
	store, report, err := timetable.Load(context.Background(), cfg.Sources)
	if err != nil {
		return err
	}
	if n := len(report.Warnings()); n > 0 {
		ctx.Printf("   %d validation warning(s), run 'lectern validate' for details\n", n)
	}
	if len(store.Lectures()) == 0 {
		return fmt.Errorf("timetable has no lectures")
	}
	return nil
}

func checkClock(ctx *cli.Context) error {
	tz := ctx.Overrides.Timezone
	if cfg, err := ctx.Config(); err == nil {
		tz = cfg.Timezone
	}
	if tz == "" {
		tz = constants.DefaultTimezone
	}
	if !utils.ValidateTimezone(tz) {
		return fmt.Errorf("unknown timezone %q", tz)
	}
	if time.Now().Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %s", time.Now().Format(time.RFC3339))
	}
	return nil
}

func checkLockfile(ctx *cli.Context) error {
	dir := ctx.ConfigDir
	if dir == "" {
		return nil
	}
	if holder, live := lockfile.Inspect(lockfile.Path(dir)); live {
		return fmt.Errorf("held by pid %d (%s)", holder.PID, holder.Command)
	}
	return nil
}
