package tui

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lectern/internal/constants"
	"github.com/julianstephens/lectern/internal/models"
	"github.com/julianstephens/lectern/internal/session"
	"github.com/julianstephens/lectern/internal/tui/components/now"
	"github.com/julianstephens/lectern/internal/tui/components/rooms"
	"github.com/julianstephens/lectern/internal/tui/components/schedule"
	"github.com/julianstephens/lectern/internal/tui/components/teachers"
	"github.com/julianstephens/lectern/internal/utils"
)

var tabs = []string{"Now", "Schedule", "Rooms", "Teachers"}

type SetupFormModel struct {
	Division string
	Lab      string
	Tutorial string
}

type ChoiceFormModel struct {
	GroupID string
	Value   string
}

type ManualFormModel struct {
	Day      models.Day
	Time     string
	FindNext bool
}

type Model struct {
	Sess          *session.Session
	State         constants.SessionState
	PreviousState constants.SessionState

	keys KeyMap
	help help.Model

	NowModel      now.Model
	ScheduleModel schedule.Model
	RoomsModel    rooms.Model
	TeachersModel teachers.Model

	Form       *huh.Form
	SetupForm  *SetupFormModel
	ChoiceForm *ChoiceFormModel
	ManualForm *ManualFormModel

	// Manual pins the queried day and time; nil follows the clock.
	Manual      *session.Query
	FindNext    bool
	ScheduleDay models.Day
	Message     string

	quitting bool
	width    int
	height   int
}

func NewModel(sess *session.Session) Model {
	store := sess.Engine().Store()
	day, _ := sess.Now()
	if !slices.Contains(models.SchoolDays, day) {
		day = models.Monday
	}

	m := Model{
		Sess:          sess,
		State:         constants.StateNow,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		NowModel:      now.New(),
		ScheduleModel: schedule.New(0, 0),
		RoomsModel:    rooms.New(store.Floors(), 0, 0),
		TeachersModel: teachers.New(0, 0),
		ScheduleDay:   day,
	}
	m.refresh()
	if !sess.Profile().HasDivision() {
		m.openSetup()
	}
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.State {
	case constants.StateNow:
		keys = append(keys, m.keys.FindNext, m.keys.Manual)
		if m.NowModel.Result.GroupID != "" {
			keys = append(keys, m.keys.Choose, m.keys.Revoke)
		}
	case constants.StateSchedule:
		keys = append(keys, m.keys.PrevDay, m.keys.NextDay)
	case constants.StateRooms:
		keys = append(keys, m.keys.Manual)
	}
	if m.Manual != nil {
		keys = append(keys, m.keys.Live)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m Model) Init() tea.Cmd {
	if m.Form != nil {
		return tea.Batch(now.Tick(), m.Form.Init())
	}
	return now.Tick()
}

// when is the day and time every tab is showing.
func (m Model) when() (models.Day, string) {
	if m.Manual != nil {
		return m.Manual.Day, m.Manual.Time
	}
	return m.Sess.Now()
}

// refresh recomputes every tab from the session.
func (m *Model) refresh() tea.Cmd {
	store := m.Sess.Engine().Store()
	day, t := m.when()

	res := m.Sess.Status(day, t, m.FindNext)
	m.NowModel.SetResult(store, day, t, res, m.Manual != nil, m.FindNext)

	marker := ""
	if m.ScheduleDay == day {
		marker = t
	}
	m.ScheduleModel.SetDay(store, m.Sess.Day(m.ScheduleDay), marker)

	roomsCmd := m.RoomsModel.SetRooms(m.Sess.EmptyRooms(day, t, m.RoomsModel.Filter()))

	var items []teachers.Item
	for _, teacher := range store.Teachers() {
		items = append(items, teachers.Item{
			Teacher:  teacher,
			Location: m.Sess.TeacherLocation(teacher.ID, day, t),
		})
	}
	teachersCmd := m.TeachersModel.SetTeachers(items)
	return tea.Batch(roomsCmd, teachersCmd)
}

func (m *Model) setSizes() {
	h := max(m.height-4, 0)
	m.NowModel.SetSize(m.width, h)
	m.ScheduleModel.SetSize(max(m.width-4, 0), max(h-2, 0))
	m.RoomsModel.SetSize(max(m.width-4, 0), max(h-2, 0))
	m.TeachersModel.SetSize(max(m.width-4, 0), max(h-2, 0))
}

func (m *Model) openSetup() tea.Cmd {
	store := m.Sess.Engine().Store()
	current := m.Sess.Profile()
	m.SetupForm = &SetupFormModel{
		Division: current.Division,
		Lab:      current.LabBatch,
		Tutorial: current.TutorialBatch,
	}
	if m.SetupForm.Division == "" {
		if divs := store.Divisions(); len(divs) > 0 {
			m.SetupForm.Division = divs[0]
		}
	}

	var divOpts []huh.Option[string]
	for _, d := range store.Divisions() {
		divOpts = append(divOpts, huh.NewOption(d, d))
	}
	f := m.SetupForm
	m.Form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Division").
				Options(divOpts...).
				Value(&f.Division),
			huh.NewSelect[string]().
				Title("Lab batch").
				OptionsFunc(func() []huh.Option[string] {
					return batchOptions(store.LabBatches(f.Division))
				}, &f.Division).
				Value(&f.Lab),
			huh.NewSelect[string]().
				Title("Tutorial batch").
				OptionsFunc(func() []huh.Option[string] {
					return batchOptions(store.TutorialBatches(f.Division))
				}, &f.Division).
				Value(&f.Tutorial),
		),
	)
	m.PreviousState = m.State
	m.State = constants.StateSetup
	return m.Form.Init()
}

func batchOptions(batches []string) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("None", "")}
	for _, b := range batches {
		opts = append(opts, huh.NewOption(b, b))
	}
	return opts
}

func (m *Model) openChoice(groupID string) tea.Cmd {
	opts, err := m.Sess.RequestResolution(groupID)
	if err != nil {
		m.Message = err.Error()
		return nil
	}

	m.ChoiceForm = &ChoiceFormModel{GroupID: groupID, Value: opts.Current}
	var options []huh.Option[string]
	for _, v := range opts.Values {
		options = append(options, huh.NewOption(v.Label, v.Value))
	}
	if opts.AllowNone {
		options = append(options, huh.NewOption("Not taking this", constants.ChoiceNone))
	}
	m.Form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("Which %s do you attend?", opts.Kind)).
				Description(groupID).
				Options(options...).
				Value(&m.ChoiceForm.Value),
		),
	)
	m.PreviousState = m.State
	m.State = constants.StateChoice
	return m.Form.Init()
}

func (m *Model) openManual() tea.Cmd {
	day, t := m.when()
	m.ManualForm = &ManualFormModel{Day: day, Time: t, FindNext: m.FindNext}

	var dayOpts []huh.Option[models.Day]
	for _, d := range models.SchoolDays {
		dayOpts = append(dayOpts, huh.NewOption(string(d), d))
	}
	m.Form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.Day]().
				Title("Day").
				Options(dayOpts...).
				Value(&m.ManualForm.Day),
			huh.NewInput().
				Title("Time (HH:MM)").
				Value(&m.ManualForm.Time).
				Validate(func(s string) error {
					_, err := utils.NormalizeTime(s)
					return err
				}),
			huh.NewConfirm().
				Title("Find the next lecture instead?").
				Value(&m.ManualForm.FindNext),
		),
	)
	m.PreviousState = m.State
	m.State = constants.StateManual
	return m.Form.Init()
}

// applyManual pins the query and refreshes every tab.
func (m *Model) applyManual(day models.Day, t string, findNext bool) error {
	normalized, err := utils.NormalizeTime(t)
	if err != nil {
		return err
	}
	m.Manual = &session.Query{Day: day, Time: normalized, FindNext: findNext}
	m.FindNext = findNext
	m.ScheduleDay = day
	m.refresh()
	return nil
}

func (m *Model) goLive() {
	m.Manual = nil
	if day, _ := m.Sess.Now(); slices.Contains(models.SchoolDays, day) {
		m.ScheduleDay = day
	}
	m.refresh()
}

func (m *Model) shiftScheduleDay(delta int) {
	i := slices.Index(models.SchoolDays, m.ScheduleDay)
	n := len(models.SchoolDays)
	m.ScheduleDay = models.SchoolDays[((i+delta)%n+n)%n]
	m.refresh()
}
