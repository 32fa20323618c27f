package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/lectern/internal/cli"
	"github.com/julianstephens/lectern/internal/logger"
	"github.com/julianstephens/lectern/internal/storage"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" help:"Show store and log file paths."`
	DumpProfile  *DebugDumpProfileCmd  `cmd:"" help:"Dump the stored profile as JSON."`
	DumpSettings *DebugDumpSettingsCmd `cmd:"" help:"Dump settings as JSON."`
	DumpConfig   *DebugDumpConfigCmd   `cmd:"" help:"Dump the resolved configuration as JSON."`
}

func printJSON(ctx *cli.Context, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(data))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, map[string]string{
		"path": ctx.Store.GetConfigPath(),
		"log":  logger.Path(),
	})
}

type DebugDumpProfileCmd struct{}

func (cmd *DebugDumpProfileCmd) Run(ctx *cli.Context) error {
	profile, err := storage.LoadProfile(ctx.Store)
	if err != nil {
		return err
	}
	return printJSON(ctx, profile)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return printJSON(ctx, settings)
}

type DebugDumpConfigCmd struct{}

func (cmd *DebugDumpConfigCmd) Run(ctx *cli.Context) error {
	cfg, err := ctx.Config()
	if err != nil {
		return err
	}
	return printJSON(ctx, cfg)
}
