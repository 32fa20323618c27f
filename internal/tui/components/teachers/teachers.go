package teachers

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/lectern/internal/engine"
	"github.com/julianstephens/lectern/internal/models"
	"github.com/julianstephens/lectern/internal/timetable"
)

type Item struct {
	Teacher  models.Teacher
	Location engine.TeacherResult
}

func (i Item) Title() string { return i.Teacher.Name }

func (i Item) Description() string {
	switch i.Location.Status {
	case engine.TeacherInLecture:
		l := i.Location.Lecture
		return fmt.Sprintf("teaching %s in %s until %s", l.Subject, timetable.RoomInfo(l.RoomID), l.EndTime)
	case engine.TeacherInCabin:
		cabin := i.Location.CabinRoomID
		if cabin == "" {
			cabin = "N/A"
		}
		return "in cabin " + cabin
	case engine.TeacherOutsideHours:
		return "outside college hours"
	}
	return string(i.Location.Status)
}

func (i Item) FilterValue() string { return i.Teacher.Name + " " + i.Teacher.ID }

type Model struct {
	list list.Model
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Teachers"
	l.SetShowHelp(false)
	return Model{list: l}
}

func (m *Model) SetTeachers(items []Item) tea.Cmd {
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = it
	}
	return m.list.SetItems(listItems)
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Filtering reports whether the list is capturing keystrokes for its filter.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}

func (m Model) Items() []list.Item {
	return m.list.Items()
}
