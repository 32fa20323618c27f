package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/lectern/internal/cli"
	"github.com/julianstephens/lectern/internal/storage"
	"github.com/julianstephens/lectern/internal/storage/postgres"
	"github.com/julianstephens/lectern/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing store before initialization."`
	Source string `help:"Existing store (path or PostgreSQL connection string) to copy settings and profile from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force && cli.IsFileStore(ctx.Store) {
		dbPath := ctx.Store.GetConfigPath()
		if c.Source != "" {
			absDB, _ := filepath.Abs(dbPath)
			absSrc, _ := filepath.Abs(c.Source)
			if absDB == absSrc {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			ctx.Printf("Deleted existing store at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized lectern storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyFrom(ctx, c.Source); err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		ctx.Println("Copy completed successfully!")
	}
	return nil
}

func (c *InitCmd) copyFrom(ctx *cli.Context, source string) error {
	var src storage.Provider
	switch {
	case isPostgres(source):
		if err := postgres.ValidateConnString(source); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return errors.New("PostgreSQL source connection string contains embedded credentials, use the keyring or .pgpass instead")
			}
			return err
		}
		src = postgres.New(source)
	case filepath.Ext(source) == ".json":
		src = storage.NewJSONStore(source)
	default:
		src = sqlite.NewStore(source)
	}

	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source store: %w", err)
	}
	defer src.Close()

	ctx.Println("  Copying settings...")
	settings, err := src.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	ctx.Println("  Copying profile...")
	profile, err := storage.LoadProfile(src)
	if err != nil {
		return err
	}
	if !profile.HasDivision() {
		ctx.Println("    Source has no profile")
		return nil
	}
	if _, err := storage.SaveProfile(ctx.Store, profile); err != nil {
		return err
	}
	ctx.Printf("    Copied profile for division %s with %d choice(s)\n", profile.Division, len(profile.Choices))
	return nil
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(migratable)
	if !ok {
		return errors.New("migrate only supports SQLite and PostgreSQL storage")
	}
	runner, err := m.Runner()
	if err != nil {
		return err
	}

	count, err := runner.Apply(func(msg string) {
		ctx.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if count == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	} else {
		ctx.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
