package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lectern/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.State {
	case constants.StateNow:
		content = m.NowModel.View()
	case constants.StateSchedule:
		content = paneStyle.Render(m.ScheduleModel.View())
	case constants.StateRooms:
		content = paneStyle.Render(m.RoomsModel.View())
	case constants.StateTeachers:
		content = paneStyle.Render(m.TeachersModel.View())
	case constants.StateSetup, constants.StateChoice, constants.StateManual:
		content = paneStyle.Render(m.Form.View())
	case constants.StateConfirmReset:
		content = m.viewConfirmReset()
	}

	parts := []string{m.viewTabs()}
	if m.Message != "" {
		parts = append(parts, noticeStyle.Render(m.Message))
	}
	parts = append(parts, content, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	var rendered []string
	for i, title := range tabs {
		if m.State == constants.SessionState(i) {
			rendered = append(rendered, tabCurrentStyle.Render(title))
		} else {
			rendered = append(rendered, tabIdleStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) viewConfirmReset() string {
	return lipgloss.Place(m.width, max(m.height-4, 0),
		lipgloss.Center, lipgloss.Center,
		confirmBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
			alertStyle.Render("Delete your division, batches and all choices?"),
			"",
			keyHintStyle.Render("[y] reset    [n] keep"),
		)),
	)
}
