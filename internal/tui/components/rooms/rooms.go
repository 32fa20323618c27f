package rooms

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/lectern/internal/engine"
	"github.com/julianstephens/lectern/internal/models"
	"github.com/julianstephens/lectern/internal/timetable"
)

// FilterChangedMsg asks the parent to recompute the free rooms.
type FilterChangedMsg struct{}

type Item struct {
	Room    models.Room
	Lecture *models.Lecture
}

func (i Item) Title() string {
	if i.Lecture != nil {
		return "? " + timetable.RoomInfo(i.Lecture.RoomID)
	}
	return i.Room.ID
}

func (i Item) Description() string {
	if i.Lecture != nil {
		return fmt.Sprintf("might be in use: %s %s-%s (%s)", i.Lecture.Subject, i.Lecture.StartTime, i.Lecture.EndTime, strings.Join(i.Lecture.Divisions, ", "))
	}
	return fmt.Sprintf("floor %d · %s", i.Room.Floor, i.Room.Type)
}

func (i Item) FilterValue() string { return i.Title() }

type KeyMap struct {
	Floor key.Binding
	Type  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Floor: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "cycle floor"),
		),
		Type: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cycle type"),
		),
	}
}

var roomTypes = []models.RoomType{"", models.RoomTypeClassroom, models.RoomTypeLab}

type Model struct {
	list   list.Model
	keys   KeyMap
	floors []int
	floor  int // index into floors, -1 for all
	kind   int // index into roomTypes
}

func New(floors []int, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Floor, keys.Type}
	}
	m := Model{list: l, keys: keys, floors: floors, floor: -1}
	m.updateTitle()
	return m
}

// Filter is the current floor and type selection.
func (m Model) Filter() engine.RoomFilter {
	var f engine.RoomFilter
	if m.floor >= 0 && m.floor < len(m.floors) {
		floor := m.floors[m.floor]
		f.Floor = &floor
	}
	f.Type = roomTypes[m.kind]
	return f
}

func (m *Model) SetRooms(res engine.EmptyRooms) tea.Cmd {
	items := make([]list.Item, 0, len(res.Available)+len(res.Ambiguous))
	for _, r := range res.Available {
		items = append(items, Item{Room: r})
	}
	for i := range res.Ambiguous {
		items = append(items, Item{Lecture: &res.Ambiguous[i]})
	}
	return m.list.SetItems(items)
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m *Model) updateTitle() {
	floor := "all floors"
	if m.floor >= 0 && m.floor < len(m.floors) {
		floor = fmt.Sprintf("floor %d", m.floors[m.floor])
	}
	kind := "any type"
	if t := roomTypes[m.kind]; t != "" {
		kind = string(t)
	}
	m.list.Title = fmt.Sprintf("Free rooms · %s · %s", floor, kind)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Floor):
			m.floor++
			if m.floor >= len(m.floors) {
				m.floor = -1
			}
			m.updateTitle()
			return m, func() tea.Msg { return FilterChangedMsg{} }
		case key.Matches(msg, m.keys.Type):
			m.kind = (m.kind + 1) % len(roomTypes)
			m.updateTitle()
			return m, func() tea.Msg { return FilterChangedMsg{} }
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}

// Items is the rows currently listed.
func (m Model) Items() []list.Item {
	return m.list.Items()
}
