package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lectern/internal/constants"
	"github.com/julianstephens/lectern/internal/tui/components/now"
	"github.com/julianstephens/lectern/internal/tui/components/rooms"
)

const tabCount = 4

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.setSizes()
		return m, nil

	case now.TickMsg:
		var cmd tea.Cmd
		if m.Manual == nil && m.Form == nil {
			cmd = m.refresh()
		}
		return m, tea.Batch(cmd, now.Tick())

	case rooms.FilterChangedMsg:
		return m, m.refresh()
	}

	switch m.State {
	case constants.StateSetup, constants.StateChoice, constants.StateManual:
		return m.updateForm(msg)
	case constants.StateConfirmReset:
		return m.updateConfirmReset(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if m.State == constants.StateTeachers && m.TeachersModel.Filtering() {
			var cmd tea.Cmd
			m.TeachersModel, cmd = m.TeachersModel.Update(msg)
			return m, cmd
		}
		if model, cmd, handled := m.handleKey(msg); handled {
			return model, cmd
		}
	}

	var cmd tea.Cmd
	switch m.State {
	case constants.StateSchedule:
		m.ScheduleModel, cmd = m.ScheduleModel.Update(msg)
	case constants.StateRooms:
		m.RoomsModel, cmd = m.RoomsModel.Update(msg)
	case constants.StateTeachers:
		m.TeachersModel, cmd = m.TeachersModel.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit, true
	case key.Matches(msg, m.keys.Tab):
		m.State = (m.State + 1) % tabCount
		return m, nil, true
	case key.Matches(msg, m.keys.ShiftTab):
		m.State = (m.State - 1 + tabCount) % tabCount
		return m, nil, true
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil, true
	case key.Matches(msg, m.keys.Setup):
		return m, m.openSetup(), true
	case key.Matches(msg, m.keys.Manual):
		return m, m.openManual(), true
	case key.Matches(msg, m.keys.Live):
		if m.Manual != nil {
			m.goLive()
			return m, nil, true
		}
	case key.Matches(msg, m.keys.Reset):
		m.PreviousState = m.State
		m.State = constants.StateConfirmReset
		return m, nil, true
	}

	switch m.State {
	case constants.StateNow:
		res := m.NowModel.Result
		switch {
		case key.Matches(msg, m.keys.FindNext):
			m.FindNext = !m.FindNext
			if m.Manual != nil {
				m.Manual.FindNext = m.FindNext
			}
			return m, m.refresh(), true
		case key.Matches(msg, m.keys.Choose) && res.GroupID != "":
			return m, m.openChoice(res.GroupID), true
		case key.Matches(msg, m.keys.Revoke) && res.GroupID != "":
			if _, err := m.Sess.RevokeChoice(res.GroupID); err != nil {
				m.Message = err.Error()
			} else {
				m.Message = "Cleared " + res.GroupID
			}
			return m, m.refresh(), true
		}
	case constants.StateSchedule:
		switch {
		case key.Matches(msg, m.keys.PrevDay):
			m.shiftScheduleDay(-1)
			return m, nil, true
		case key.Matches(msg, m.keys.NextDay):
			m.shiftScheduleDay(1)
			return m, nil, true
		}
	}
	return m, nil, false
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}

	switch m.Form.State {
	case huh.StateCompleted:
		if err := m.submitForm(); err != nil {
			m.Message = err.Error()
		}
		m.closeForm()
		return m, m.refresh()
	case huh.StateAborted:
		m.closeForm()
	}
	return m, cmd
}

func (m *Model) submitForm() error {
	switch m.State {
	case constants.StateSetup:
		f := m.SetupForm
		p, err := m.Sess.SaveDetails(f.Division, f.Lab, f.Tutorial)
		if err != nil {
			return err
		}
		m.Message = fmt.Sprintf("Saved division %s", p.Division)
	case constants.StateChoice:
		f := m.ChoiceForm
		if _, err := m.Sess.ApplyChoice(f.GroupID, f.Value); err != nil {
			return err
		}
		m.Message = fmt.Sprintf("%s = %s", f.GroupID, f.Value)
	case constants.StateManual:
		f := m.ManualForm
		return m.applyManual(f.Day, f.Time, f.FindNext)
	}
	return nil
}

func (m *Model) closeForm() {
	m.Form = nil
	m.SetupForm = nil
	m.ChoiceForm = nil
	m.ManualForm = nil
	m.State = m.PreviousState
	if m.State >= tabCount {
		m.State = constants.StateNow
	}
}

func (m Model) updateConfirmReset(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		m.State = m.PreviousState
		if err := m.Sess.Reset(); err != nil {
			m.Message = "Reset failed: " + err.Error()
			return m, nil
		}
		m.Message = "Profile reset"
		m.refresh()
		return m, m.openSetup()
	case "n", "N", "esc", "q":
		m.State = m.PreviousState
	}
	return m, nil
}
