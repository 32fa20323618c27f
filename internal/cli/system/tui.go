package system

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/lectern/internal/cli"
	"github.com/julianstephens/lectern/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	if err := ctx.Lock("tui"); err != nil {
		return err
	}
	defer ctx.Unlock()

	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(sess), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
