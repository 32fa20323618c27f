package settings

import (
	"fmt"

	"github.com/julianstephens/lectern/internal/cli"
	"github.com/julianstephens/lectern/internal/utils"
	"github.com/julianstephens/lectern/internal/validation"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	DayStart        *string `help:"Start of operating hours (HH:MM)."`
	DayEnd          *string `help:"End of operating hours (HH:MM, exclusive)."`
	Timezone        *string `help:"IANA timezone, or Local."`
	TimetableSource *string `name:"timetable-source" help:"Path or URL of the lecture table."`
	TeachersSource  *string `name:"teachers-source" help:"Path or URL of the teacher table."`
	RoomsSource     *string `name:"rooms-source" help:"Path or URL of the room table."`
	ReportOptOut    *bool   `name:"report-opt-out" help:"Report opted-out choices as CHOICE_MADE_NONE instead of a break (true|false)."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		ctx.Println("Current Settings:")
		ctx.Printf("  Day Start:        %s\n", settings.DayStart)
		ctx.Printf("  Day End:          %s\n", settings.DayEnd)
		ctx.Printf("  Timezone:         %s\n", settings.Timezone)
		ctx.Printf("  Report Opt-Out:   %t\n", settings.ReportOptOut)
		ctx.Println("\nTimetable Sources:")
		ctx.Printf("  Timetable:        %s\n", settings.TimetableSource)
		ctx.Printf("  Teachers:         %s\n", settings.TeachersSource)
		ctx.Printf("  Rooms:            %s\n", settings.RoomsSource)
		return nil
	}

	updated := false
	setTime := func(dst *string, v *string, name string) error {
		if v == nil {
			return nil
		}
		normalized, err := utils.NormalizeTime(*v)
		if err != nil {
			return fmt.Errorf("invalid %s %q, use HH:MM", name, *v)
		}
		*dst = normalized
		updated = true
		return nil
	}
	if err := setTime(&settings.DayStart, c.DayStart, "day start"); err != nil {
		return err
	}
	if err := setTime(&settings.DayEnd, c.DayEnd, "day end"); err != nil {
		return err
	}
	for _, f := range []struct {
		dst *string
		v   *string
	}{
		{&settings.Timezone, c.Timezone},
		{&settings.TimetableSource, c.TimetableSource},
		{&settings.TeachersSource, c.TeachersSource},
		{&settings.RoomsSource, c.RoomsSource},
	} {
		if f.v != nil {
			*f.dst = *f.v
			updated = true
		}
	}

	if c.ReportOptOut != nil {
		settings.ReportOptOut = *c.ReportOptOut
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	report := validation.New().ValidateSettings(settings)
	if report.HasErrors() {
		ctx.Println(report.FormatReport())
		return fmt.Errorf("settings not saved")
	}
	if err := ctx.Lock("settings"); err != nil {
		return err
	}
	defer ctx.Unlock()
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")
	return nil
}
