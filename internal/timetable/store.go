package timetable

import (
	"slices"
	"sort"
	"strings"

	"github.com/julianstephens/lectern/internal/models"
)

// Store is the immutable, in-memory timetable. It is built once at startup
// and only read afterwards, so it is safe for concurrent use.
type Store struct {
	lectures []models.Lecture
	teachers []models.Teacher
	rooms    []models.Room

	teacherByID map[string]int
	roomByID    map[string]int
	byDay       map[models.Day][]models.Lecture
}

// NewStore copies the tables and stamps each lecture with its table position.
func NewStore(lectures []models.Lecture, teachers []models.Teacher, rooms []models.Room) *Store {
	s := &Store{
		lectures:    make([]models.Lecture, len(lectures)),
		teachers:    slices.Clone(teachers),
		rooms:       slices.Clone(rooms),
		teacherByID: make(map[string]int, len(teachers)),
		roomByID:    make(map[string]int, len(rooms)),
		byDay:       make(map[models.Day][]models.Lecture),
	}
	for i, l := range lectures {
		l.Seq = i
		s.lectures[i] = l
		s.byDay[l.Day] = append(s.byDay[l.Day], l)
	}
	for i, t := range s.teachers {
		if _, dup := s.teacherByID[t.ID]; !dup {
			s.teacherByID[t.ID] = i
		}
	}
	for i, r := range s.rooms {
		if _, dup := s.roomByID[r.ID]; !dup {
			s.roomByID[r.ID] = i
		}
	}
	return s
}

// Lectures returns every record in table order. Callers must not modify it.
func (s *Store) Lectures() []models.Lecture { return s.lectures }

// LecturesOn returns the day's records in table order. Callers must not modify it.
func (s *Store) LecturesOn(day models.Day) []models.Lecture { return s.byDay[day] }

func (s *Store) Teachers() []models.Teacher { return s.teachers }

func (s *Store) Rooms() []models.Room { return s.rooms }

func (s *Store) Teacher(id string) (models.Teacher, bool) {
	i, ok := s.teacherByID[id]
	if !ok {
		return models.Teacher{}, false
	}
	return s.teachers[i], true
}

func (s *Store) Room(id string) (models.Room, bool) {
	i, ok := s.roomByID[id]
	if !ok {
		return models.Room{}, false
	}
	return s.rooms[i], true
}

// FindTeacher resolves an id, an exact name (any case) or a unique name
// fragment, in that order.
func (s *Store) FindTeacher(query string) (models.Teacher, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.Teacher{}, false
	}
	if t, ok := s.Teacher(query); ok {
		return t, true
	}
	lower := strings.ToLower(query)
	var partial []models.Teacher
	for _, t := range s.teachers {
		name := strings.ToLower(t.Name)
		if name == lower {
			return t, true
		}
		if strings.Contains(name, lower) {
			partial = append(partial, t)
		}
	}
	if len(partial) == 1 {
		return partial[0], true
	}
	return models.Teacher{}, false
}

// TeacherName returns the teacher's display name, falling back to the id.
func (s *Store) TeacherName(id string) string {
	if t, ok := s.Teacher(id); ok && t.Name != "" {
		return t.Name
	}
	if id == "" {
		return "N/A"
	}
	return id
}

// RoomInfo renders a lecture's room candidates, e.g. "102 or 103".
func RoomInfo(ids []string) string {
	if len(ids) == 0 {
		return "N/A"
	}
	return strings.Join(ids, " or ")
}

// Divisions returns every division named in the timetable, sorted.
func (s *Store) Divisions() []string {
	seen := map[string]bool{}
	for _, l := range s.lectures {
		for _, d := range l.Divisions {
			seen[d] = true
		}
	}
	return sortedKeys(seen)
}

// LabBatches returns the single-batch ids scheduled for a division, sorted.
func (s *Store) LabBatches(division string) []string {
	seen := map[string]bool{}
	for _, l := range s.lectures {
		if !l.HasDivision(division) {
			continue
		}
		if c := Classify(l); c.Kind == KindSingleBatch {
			seen[c.Key] = true
		}
	}
	return sortedKeys(seen)
}

// TutorialBatches returns the batch ids used by a division's tutorials, sorted.
func (s *Store) TutorialBatches(division string) []string {
	seen := map[string]bool{}
	for _, l := range s.lectures {
		if l.HasDivision(division) && l.Type == models.LectureTypeTutorial {
			for _, b := range l.Batches {
				seen[b] = true
			}
		}
	}
	return sortedKeys(seen)
}

// ByGroup returns every record across the table belonging to groupID.
func (s *Store) ByGroup(groupID string) []models.Lecture {
	var out []models.Lecture
	for _, l := range s.lectures {
		if GroupIDFor(l) == groupID {
			out = append(out, l)
		}
	}
	return out
}

// Floors returns the distinct floors in the room table, ascending.
func (s *Store) Floors() []int {
	seen := map[int]bool{}
	var out []int
	for _, r := range s.rooms {
		if !seen[r.Floor] {
			seen[r.Floor] = true
			out = append(out, r.Floor)
		}
	}
	sort.Ints(out)
	return out
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
