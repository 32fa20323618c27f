package profile

import (
	"sort"

	"github.com/julianstephens/lectern/internal/cli"
	"github.com/julianstephens/lectern/internal/constants"
	"github.com/julianstephens/lectern/internal/timetable"
)

type ChoiceShowCmd struct {
	Group string `arg:"" help:"Choice group id, e.g. elective_G1."`
}

func (c *ChoiceShowCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	opts, err := sess.RequestResolution(c.Group)
	if err != nil {
		return err
	}

	store := sess.Engine().Store()
	ctx.Printf("%s (%s)\n", opts.GroupID, opts.Kind)
	switch opts.Current {
	case "":
		ctx.Println("Current: undecided")
	case constants.ChoiceNone:
		ctx.Println("Current: not taking")
	default:
		ctx.Printf("Current: %s\n", opts.Current)
	}
	ctx.Println("Values:")
	for _, v := range opts.Values {
		ctx.Printf("  %-16s %s\n", v.Value, v.Label)
	}
	if opts.AllowNone {
		ctx.Printf("  %-16s %s\n", constants.ChoiceNone, "not taking this")
	}
	ctx.Println("Lectures:")
	for _, l := range opts.Records {
		ctx.Printf("  %s %s\n", l.Day, cli.FormatLecture(store, l))
	}
	return nil
}

type ChoiceSetCmd struct {
	Group string `arg:"" help:"Choice group id, e.g. elective_G1."`
	Value string `arg:"" help:"Value to record, or NONE to opt out."`
}

func (c *ChoiceSetCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	if err := ctx.Lock("choice"); err != nil {
		return err
	}
	defer ctx.Unlock()

	if _, err := sess.ApplyChoice(c.Group, c.Value); err != nil {
		return err
	}
	ctx.Printf("✓ %s = %s\n", c.Group, c.Value)
	return nil
}

type ChoiceClearCmd struct {
	Group string `arg:"" help:"Choice group id, e.g. elective_G1."`
}

func (c *ChoiceClearCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	if err := ctx.Lock("choice"); err != nil {
		return err
	}
	defer ctx.Unlock()

	if _, err := sess.RevokeChoice(c.Group); err != nil {
		return err
	}
	ctx.Printf("✓ Cleared %s\n", c.Group)
	return nil
}

// ChoiceListCmd lists the choice groups the profile's division meets during
// the week, with their stored values.
type ChoiceListCmd struct{}

func (c *ChoiceListCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	p := sess.Profile()
	if !p.HasDivision() {
		ctx.Println("No division set. Run 'lectern setup' first.")
		return nil
	}

	groups := map[string]string{}
	for _, l := range sess.Engine().Store().Lectures() {
		if !l.HasDivision(p.Division) {
			continue
		}
		if id := timetable.GroupIDFor(l); id != "" {
			groups[id] = p.Choices[id]
		}
	}
	if len(groups) == 0 {
		ctx.Println("No choice groups for your division.")
		return nil
	}
	for _, g := range sortedGroups(groups) {
		value := groups[g]
		if value == "" {
			value = "undecided"
		}
		ctx.Printf("  %-24s %s\n", g, value)
	}
	return nil
}

func sortedGroups(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
