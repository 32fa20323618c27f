package profile

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lectern/internal/cli"
	"github.com/julianstephens/lectern/internal/session"
	"github.com/julianstephens/lectern/internal/timetable"
)

type SetupCmd struct {
	Division string `help:"Your division, e.g. A."`
	Lab      string `help:"Your lab batch, e.g. A1."`
	Tutorial string `help:"Your tutorial batch, if your division has tutorials."`
}

func (c *SetupCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}

	if c.Division == "" {
		if !ctx.Interactive {
			return errors.New("--division is required")
		}
		if err := c.prompt(sess.Engine().Store(), sess); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				ctx.Println("Setup cancelled.")
				return nil
			}
			return err
		}
	}

	if err := ctx.Lock("setup"); err != nil {
		return err
	}
	defer ctx.Unlock()

	before := sess.Profile()
	p, err := sess.SaveDetails(c.Division, c.Lab, c.Tutorial)
	if err != nil {
		return err
	}

	ctx.Printf("✓ Saved: division %s", p.Division)
	if p.LabBatch != "" {
		ctx.Printf(", lab batch %s", p.LabBatch)
	}
	if p.TutorialBatch != "" {
		ctx.Printf(", tutorial batch %s", p.TutorialBatch)
	}
	ctx.Println()
	if before.Division != "" && before.Division != p.Division && len(before.Choices) > 0 {
		ctx.Printf("Division changed, cleared %d stored choice(s).\n", len(before.Choices))
	}
	return nil
}

// prompt fills the flags from a huh form seeded with the current profile.
func (c *SetupCmd) prompt(store *timetable.Store, sess *session.Session) error {
	current := sess.Profile()
	c.Division = current.Division

	var divOpts []huh.Option[string]
	for _, d := range store.Divisions() {
		divOpts = append(divOpts, huh.NewOption(d, d))
	}
	if err := huh.NewSelect[string]().
		Title("Division").
		Options(divOpts...).
		Value(&c.Division).
		Run(); err != nil {
		return err
	}

	c.Lab = current.LabBatch
	c.Tutorial = current.TutorialBatch
	var fields []huh.Field
	if labs := store.LabBatches(c.Division); len(labs) > 0 {
		fields = append(fields, huh.NewSelect[string]().
			Title("Lab batch").
			Options(batchOptions(labs)...).
			Value(&c.Lab))
	}
	if tuts := store.TutorialBatches(c.Division); len(tuts) > 0 {
		fields = append(fields, huh.NewSelect[string]().
			Title("Tutorial batch").
			Options(batchOptions(tuts)...).
			Value(&c.Tutorial))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

func batchOptions(batches []string) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("None", "")}
	for _, b := range batches {
		opts = append(opts, huh.NewOption(b, b))
	}
	return opts
}

type ShowCmd struct{}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	p := sess.Profile()
	if !p.HasDivision() {
		ctx.Println("No profile yet. Run 'lectern setup'.")
		return nil
	}
	ctx.Printf("Division:        %s\n", p.Division)
	ctx.Printf("Lab batch:       %s\n", orDash(p.LabBatch))
	ctx.Printf("Tutorial batch:  %s\n", orDash(p.TutorialBatch))
	if p.UpdatedAt != "" {
		ctx.Printf("Updated:         %s\n", p.UpdatedAt)
	}
	if len(p.Choices) > 0 {
		ctx.Println("Choices:")
		for _, g := range sortedGroups(p.Choices) {
			ctx.Printf("  %-24s %s\n", g, p.Choices[g])
		}
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

type ResetCmd struct {
	Yes bool `short:"y" help:"Do not ask for confirmation."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}

	if !c.Yes {
		if !ctx.Interactive {
			return errors.New("refusing to reset without --yes")
		}
		confirm := false
		if err := huh.NewConfirm().
			Title("Delete your division, batches and all choices?").
			Value(&confirm).
			Run(); err != nil && !errors.Is(err, huh.ErrUserAborted) {
			return err
		}
		if !confirm {
			ctx.Println("Reset cancelled.")
			return nil
		}
	}

	if err := ctx.Lock("reset"); err != nil {
		return err
	}
	defer ctx.Unlock()
	if err := sess.Reset(); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}
	ctx.Println("✓ Profile reset.")
	return nil
}
