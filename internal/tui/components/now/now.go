package now

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lectern/internal/cli"
	"github.com/julianstephens/lectern/internal/constants"
	"github.com/julianstephens/lectern/internal/engine"
	"github.com/julianstephens/lectern/internal/models"
	"github.com/julianstephens/lectern/internal/timetable"
	"github.com/julianstephens/lectern/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(1, 2).
			Align(lipgloss.Center)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1)

	subjectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Padding(1, 0).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Width(40).
			Align(lipgloss.Center)

	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	manualStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	choiceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// TickMsg drives the live view.
type TickMsg time.Time

// Tick schedules the next refresh.
func Tick() tea.Cmd {
	return tea.Tick(constants.RefreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

type Model struct {
	Result   engine.Result
	Store    *timetable.Store
	Day      models.Day
	Time     string
	Manual   bool
	FindNext bool

	progress progress.Model
	width    int
	height   int
}

func New() Model {
	return Model{
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.progress.Width = min(40, max(width-8, 10))
}

// SetResult replaces what the view shows.
func (m *Model) SetResult(store *timetable.Store, day models.Day, t string, res engine.Result, manual, findNext bool) {
	m.Store = store
	m.Day = day
	m.Time = t
	m.Result = res
	m.Manual = manual
	m.FindNext = findNext
}

func (m Model) View() string {
	header := fmt.Sprintf("%s %s", m.Day, m.Time)
	if m.FindNext {
		header = "Next after " + header
	}
	title := titleStyle.Render(header)
	if m.Manual {
		title = lipgloss.JoinVertical(lipgloss.Center, title, manualStyle.Render("manual mode (esc to go live)"))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, title, m.body())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func (m Model) body() string {
	res := m.Result
	switch res.Status {
	case engine.StatusInLecture:
		l := res.Lecture
		return lipgloss.JoinVertical(lipgloss.Center,
			timeStyle.Render(fmt.Sprintf("%s - %s", l.StartTime, l.EndTime)),
			subjectStyle.Render(l.Subject),
			m.detail(*l),
			"",
			m.progress.ViewAs(m.elapsed(*l)),
			mutedStyle.Render(fmt.Sprintf("Ends in %d min", utils.MinutesUntil(m.Time, l.EndTime))),
		)
	case engine.StatusFoundNext:
		l := res.Lecture
		return lipgloss.JoinVertical(lipgloss.Center,
			timeStyle.Render(fmt.Sprintf("%s - %s", l.StartTime, l.EndTime)),
			subjectStyle.Render(l.Subject),
			m.detail(*l),
			mutedStyle.Render(fmt.Sprintf("Starts in %d min", utils.MinutesUntil(m.Time, l.StartTime))),
		)
	case engine.StatusChoiceRequired:
		lines := []string{choiceStyle.Render(fmt.Sprintf("Choice required for %s", res.GroupID)), ""}
		for _, l := range res.Options {
			lines = append(lines, cli.FormatLecture(m.Store, l))
		}
		lines = append(lines, "", mutedStyle.Render("press c to choose"))
		return lipgloss.JoinVertical(lipgloss.Center, lines...)
	}

	if m.Store == nil {
		return ""
	}
	var styled []string
	for _, line := range cli.FormatResult(m.Store, res, m.Time) {
		styled = append(styled, timeStyle.Render(line))
	}
	return lipgloss.JoinVertical(lipgloss.Center, styled...)
}

func (m Model) detail(l models.Lecture) string {
	teacher := "-"
	if l.TeacherID != "" && m.Store != nil {
		teacher = m.Store.TeacherName(l.TeacherID)
	}
	line := fmt.Sprintf("%s · %s", teacher, timetable.RoomInfo(l.RoomID))
	if m.Result.GroupID != "" {
		line += " · " + m.Result.GroupID
	}
	return mutedStyle.Render(line)
}

// elapsed is the fraction of the lecture already over.
func (m Model) elapsed(l models.Lecture) float64 {
	start, err1 := utils.ParseTimeToMinutes(l.StartTime)
	end, err2 := utils.ParseTimeToMinutes(l.EndTime)
	now, err3 := utils.ParseTimeToMinutes(m.Time)
	if err1 != nil || err2 != nil || err3 != nil || end <= start {
		return 0
	}
	return min(1, max(0, float64(now-start)/float64(end-start)))
}
