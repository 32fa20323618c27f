package lectures

import (
	"github.com/julianstephens/lectern/internal/cli"
	"github.com/julianstephens/lectern/internal/engine"
	"github.com/julianstephens/lectern/internal/models"
)

type ScheduleCmd struct {
	Day string `help:"Show a single day instead of the whole week."`
}

func (c *ScheduleCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	if !sess.Profile().HasDivision() {
		ctx.Println("No division set. Run 'lectern setup' first.")
		return nil
	}

	week := sess.Week()
	if c.Day != "" {
		day, err := models.ParseDay(c.Day)
		if err != nil {
			return err
		}
		week = engine.Week{sess.Day(day)}
	}

	store := sess.Engine().Store()
	for i, ds := range week {
		if i > 0 {
			ctx.Println()
		}
		ctx.Printf("%s\n", ds.Day)
		if len(ds.Entries) == 0 {
			ctx.Println("  No lectures.")
			continue
		}
		for _, e := range ds.Entries {
			ctx.Println("  " + cli.FormatEntry(store, e))
		}
	}
	return nil
}

type DivisionsCmd struct{}

func (c *DivisionsCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	store := sess.Engine().Store()
	divisions := store.Divisions()
	if len(divisions) == 0 {
		ctx.Println("No divisions found in the timetable.")
		return nil
	}
	for _, d := range divisions {
		ctx.Printf("%s", d)
		if labs := store.LabBatches(d); len(labs) > 0 {
			ctx.Printf("  labs: %v", labs)
		}
		if tuts := store.TutorialBatches(d); len(tuts) > 0 {
			ctx.Printf("  tutorials: %v", tuts)
		}
		ctx.Println()
	}
	return nil
}
