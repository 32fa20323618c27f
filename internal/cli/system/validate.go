package system

import (
	"context"
	"fmt"

	"github.com/julianstephens/lectern/internal/cli"
	"github.com/julianstephens/lectern/internal/timetable"
	"github.com/julianstephens/lectern/internal/validation"
)

type ValidateCmd struct{}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	cfg, err := ctx.Config()
	if err != nil {
		return err
	}

	ctx.Printf("Timetable: %s\nTeachers:  %s\nRooms:     %s\n\n", cfg.Sources.Timetable, cfg.Sources.Teachers, cfg.Sources.Rooms)

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	settingsReport := validation.New().ValidateSettings(settings)

	store, report, loadErr := timetable.Load(context.Background(), cfg.Sources)
	if loadErr != nil && !report.HasConflicts() {
		return loadErr
	}

	for _, r := range []validation.ValidationResult{settingsReport, report} {
		if r.HasConflicts() {
			ctx.Println(r.FormatReport())
		}
	}
	if loadErr != nil || settingsReport.HasErrors() {
		return fmt.Errorf("validation failed")
	}

	ctx.Printf("✓ %d lectures, %d teachers, %d rooms, %d divisions\n",
		len(store.Lectures()), len(store.Teachers()), len(store.Rooms()), len(store.Divisions()))
	return nil
}
