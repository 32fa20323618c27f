package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/lectern/internal/backup"
	"github.com/julianstephens/lectern/internal/config"
	"github.com/julianstephens/lectern/internal/engine"
	"github.com/julianstephens/lectern/internal/lockfile"
	"github.com/julianstephens/lectern/internal/logger"
	"github.com/julianstephens/lectern/internal/models"
	"github.com/julianstephens/lectern/internal/session"
	"github.com/julianstephens/lectern/internal/storage"
	"github.com/julianstephens/lectern/internal/timetable"
	"github.com/julianstephens/lectern/internal/utils"
)

type Context struct {
	Store     storage.Provider
	ConfigDir string
	Overrides config.Overrides
	Out       io.Writer

	// Interactive enables huh prompts; it is false when stdout is not a terminal.
	Interactive bool

	cfg     *config.Config
	session *session.Session
	lock    *lockfile.Lock
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Printf writes to the command's output.
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

// Println writes to the command's output.
func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

// Config resolves flags, environment and stored settings.
func (c *Context) Config() (config.Config, error) {
	if c.cfg != nil {
		return *c.cfg, nil
	}
	settings, err := c.Store.GetSettings()
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to read settings: %w", err)
	}
	cfg := config.Resolve(c.Overrides, settings, c.ConfigDir)
	c.cfg = &cfg
	return cfg, nil
}

// Session loads the timetable and the stored profile on first use.
// Validation warnings are logged; any error aborts.
func (c *Context) Session() (*session.Session, error) {
	if c.session != nil {
		return c.session, nil
	}
	cfg, err := c.Config()
	if err != nil {
		return nil, err
	}
	clock, err := utils.NewSystemClock(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	store, report, err := timetable.Load(context.Background(), cfg.Sources)
	if err != nil {
		if report.HasErrors() {
			return nil, fmt.Errorf("%w\n%s", err, report.FormatReport())
		}
		return nil, err
	}

	eng := engine.New(store, engine.Options{
		DayStart:     cfg.DayStart,
		DayEnd:       cfg.DayEnd,
		ReportOptOut: cfg.ReportOptOut,
	})
	sess, err := session.New(eng, c.Store,
		session.WithClock(clock),
		session.WithBeforeReset(c.backupBeforeReset),
	)
	if err != nil {
		return nil, err
	}
	c.session = sess
	return sess, nil
}

func (c *Context) backupBeforeReset() error {
	if !IsFileStore(c.Store) {
		return nil
	}
	_, err := backup.NewManager(c.Store.GetConfigPath()).Create()
	return err
}

// IsFileStore reports whether the store lives in a local file that can be backed up.
func IsFileStore(store storage.Provider) bool {
	path := store.GetConfigPath()
	return path != "" && path != "postgresql" && !strings.Contains(path, "://")
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !IsFileStore(c.Store) {
		return
	}
	if _, err := os.Stat(c.Store.GetConfigPath()); err != nil {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Lock takes the single-writer lock for commands that mutate the profile.
func (c *Context) Lock(command string) error {
	if c.lock != nil {
		return nil
	}
	dir := c.ConfigDir
	if dir == "" {
		dir = filepath.Dir(c.Store.GetConfigPath())
	}
	lock, err := lockfile.Acquire(dir, command)
	if err != nil {
		return err
	}
	c.lock = lock
	return nil
}

// Unlock releases the lock taken by Lock, if any.
func (c *Context) Unlock() {
	if c.lock == nil {
		return
	}
	if err := c.lock.Release(); err != nil {
		logger.Warn("Failed to release lockfile", "error", err)
	}
	c.lock = nil
}

// When resolves --day/--time flags against the session clock. Either may be
// empty, in which case the current value is used.
func When(sess *session.Session, day, t string) (models.Day, string, error) {
	nowDay, nowTime := sess.Now()
	if day != "" {
		d, err := models.ParseDay(day)
		if err != nil {
			return "", "", err
		}
		nowDay = d
	}
	if t != "" {
		normalized, err := utils.NormalizeTime(t)
		if err != nil {
			return "", "", fmt.Errorf("invalid time %q, use HH:MM", t)
		}
		nowTime = normalized
	}
	return nowDay, nowTime, nil
}
