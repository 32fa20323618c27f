package lectures

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lectern/internal/cli"
	"github.com/julianstephens/lectern/internal/engine"
	"github.com/julianstephens/lectern/internal/session"
)

// WhenFlags selects manual mode for a query.
type WhenFlags struct {
	Day  string `help:"Day to query (e.g. mon, Tuesday). Defaults to today."`
	Time string `help:"Time to query as HH:MM. Defaults to now."`
}

type StatusCmd struct {
	WhenFlags
}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	return runStatus(ctx, c.WhenFlags, false)
}

type NextCmd struct {
	WhenFlags
}

func (c *NextCmd) Run(ctx *cli.Context) error {
	return runStatus(ctx, c.WhenFlags, true)
}

func runStatus(ctx *cli.Context, w WhenFlags, findNext bool) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	day, t, err := cli.When(sess, w.Day, w.Time)
	if err != nil {
		return err
	}

	res := sess.Status(day, t, findNext)
	if res.Status == engine.StatusChoiceRequired && ctx.Interactive {
		decided, err := promptChoice(ctx, sess, res.GroupID)
		if err != nil {
			return err
		}
		if decided {
			res = sess.Status(day, t, findNext)
		}
	}

	ctx.Printf("%s %s\n", day, t)
	for _, line := range cli.FormatResult(sess.Engine().Store(), res, t) {
		ctx.Println(line)
	}
	return nil
}

// promptChoice asks for a group's value with a huh select and applies it.
// It reports false when the user aborted.
func promptChoice(ctx *cli.Context, sess *session.Session, groupID string) (bool, error) {
	opts, err := sess.RequestResolution(groupID)
	if err != nil {
		return false, err
	}

	var options []huh.Option[string]
	for _, v := range opts.Values {
		options = append(options, huh.NewOption(v.Label, v.Value))
	}
	if opts.AllowNone {
		options = append(options, huh.NewOption("Not taking this", "NONE"))
	}

	var value string
	err = huh.NewSelect[string]().
		Title(fmt.Sprintf("Which %s do you attend?", opts.Kind)).
		Description(groupID).
		Options(options...).
		Value(&value).
		Run()
	if err == huh.ErrUserAborted {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := ctx.Lock("choice"); err != nil {
		return false, err
	}
	defer ctx.Unlock()
	if _, err := sess.ApplyChoice(groupID, value); err != nil {
		return false, err
	}
	return true, nil
}
