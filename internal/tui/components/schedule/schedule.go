package schedule

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lectern/internal/engine"
	"github.com/julianstephens/lectern/internal/models"
	"github.com/julianstephens/lectern/internal/timetable"
)

var (
	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			MarginBottom(1)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(14)

	subjectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	breakStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	currentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))
)

type Model struct {
	viewport viewport.Model
	Day      engine.DaySchedule
	store    *timetable.Store
	now      string
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

// SetDay shows ds. now marks the running entry and is empty for other days.
func (m *Model) SetDay(store *timetable.Store, ds engine.DaySchedule, now string) {
	m.store = store
	m.Day = ds
	m.now = now
	m.Render()
}

func (m *Model) Render() {
	var b strings.Builder
	b.WriteString(dayStyle.Render("◀ " + string(m.Day.Day) + " ▶"))
	b.WriteString("\n")
	if len(m.Day.Entries) == 0 {
		b.WriteString(breakStyle.Render("No lectures."))
		m.viewport.SetContent(b.String())
		return
	}

	for _, e := range m.Day.Entries {
		marker := "  "
		if m.now != "" && e.Start <= m.now && m.now < e.End {
			marker = currentStyle.Render("▸ ")
		}
		b.WriteString(marker)
		b.WriteString(timeStyle.Render(e.Start + " - " + e.End))
		b.WriteString(m.describe(e))
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
}

func (m Model) describe(e engine.ScheduleEntry) string {
	switch e.Kind {
	case engine.EntryBreak:
		return breakStyle.Render("break")
	case engine.EntryPlaceholder:
		var subjects []string
		for _, l := range e.Options {
			subjects = append(subjects, l.Subject)
		}
		return pendingStyle.Render("choose "+e.GroupID) + breakStyle.Render("  "+strings.Join(subjects, " / "))
	case engine.EntrySkipped:
		return breakStyle.Render("skipped " + e.GroupID)
	}

	l := e.Lecture
	line := subjectStyle.Render(l.Subject) + "  " + m.where(*l)
	for _, other := range e.OtherLabs {
		line += breakStyle.Render("\n" + strings.Repeat(" ", 16) + strings.Join(other.Batches, ",") + ": " + other.Subject)
	}
	return line
}

func (m Model) where(l models.Lecture) string {
	parts := []string{}
	if l.TeacherID != "" && m.store != nil {
		parts = append(parts, m.store.TeacherName(l.TeacherID))
	}
	parts = append(parts, timetable.RoomInfo(l.RoomID))
	return breakStyle.Render(strings.Join(parts, " · "))
}
