package engine

import "github.com/julianstephens/lectern/internal/models"

// Status tags the outcome of a current or next lecture query
type Status string

const (
	StatusNoDivision         Status = "NO_DIVISION"
	StatusNoLecturesToday    Status = "NO_LECTURES_TODAY"
	StatusNoMoreLectures     Status = "NO_MORE_LECTURES"
	StatusCollegeClosedEarly Status = "COLLEGE_CLOSED_EARLY"
	StatusCollegeClosedLate  Status = "COLLEGE_CLOSED_LATE"
	StatusInBreak            Status = "IN_BREAK"
	StatusChoiceMadeNone     Status = "CHOICE_MADE_NONE"
	StatusChoiceRequired     Status = "CHOICE_REQUIRED"
	StatusInLecture          Status = "IN_LECTURE"
	StatusFoundNext          Status = "FOUND_NEXT"
)

// Result is the structured answer to ResolveStatus. Which fields are set
// depends on Status:
//
//	IN_LECTURE, FOUND_NEXT       Lecture (GroupID when it came from a choice)
//	COLLEGE_CLOSED_EARLY         NextLec
//	IN_BREAK, CHOICE_MADE_NONE   NextLec when something is still upcoming
//	CHOICE_REQUIRED              GroupID and Options
type Result struct {
	Status  Status           `json:"status"`
	Lecture *models.Lecture  `json:"lecture,omitempty"`
	NextLec *models.Lecture  `json:"nextLec,omitempty"`
	GroupID string           `json:"groupId,omitempty"`
	Options []models.Lecture `json:"options,omitempty"`
}

// RoomStatus is the occupancy of a single room
type RoomStatus string

const (
	RoomAvailable           RoomStatus = "AVAILABLE"
	RoomOccupied            RoomStatus = "OCCUPIED"
	RoomPotentiallyOccupied RoomStatus = "POTENTIALLY_OCCUPIED"
	RoomNotFound            RoomStatus = "ROOM_NOT_FOUND"
)

type RoomResult struct {
	RoomID  string          `json:"roomId"`
	Status  RoomStatus      `json:"status"`
	Lecture *models.Lecture `json:"lecture,omitempty"`
}

// RoomFilter narrows FindEmptyRooms. Zero values match everything.
type RoomFilter struct {
	Floor *int
	Type  models.RoomType
}

func (f RoomFilter) matches(r models.Room) bool {
	if f.Floor != nil && r.Floor != *f.Floor {
		return false
	}
	if f.Type != "" && r.Type != f.Type {
		return false
	}
	return true
}

type EmptyRooms struct {
	Available []models.Room    `json:"available"`
	Ambiguous []models.Lecture `json:"ambiguous"`
}

// TeacherStatus is where a teacher can be found
type TeacherStatus string

const (
	TeacherNotFound     TeacherStatus = "NOT_FOUND"
	TeacherOutsideHours TeacherStatus = "OUTSIDE_HOURS"
	TeacherInLecture    TeacherStatus = "IN_LECTURE"
	TeacherInCabin      TeacherStatus = "IN_CABIN"
)

type TeacherResult struct {
	Status      TeacherStatus   `json:"status"`
	Teacher     *models.Teacher `json:"teacher,omitempty"`
	Lecture     *models.Lecture `json:"lecture,omitempty"`
	CabinRoomID string          `json:"cabinRoomId,omitempty"`
}

// EntryKind tags a row of the weekly schedule
type EntryKind string

const (
	EntryLecture     EntryKind = "lecture"
	EntryPlaceholder EntryKind = "placeholder"
	EntrySkipped     EntryKind = "skipped"
	EntryBreak       EntryKind = "break"
)

// ScheduleEntry is one displayable row of a day. Lecture is set for lecture
// entries; GroupID and Options for placeholder and skipped entries.
type ScheduleEntry struct {
	Kind      EntryKind        `json:"kind"`
	Start     string           `json:"start"`
	End       string           `json:"end"`
	Lecture   *models.Lecture  `json:"lecture,omitempty"`
	GroupID   string           `json:"groupId,omitempty"`
	Options   []models.Lecture `json:"options,omitempty"`
	OtherLabs []models.Lecture `json:"otherLabs,omitempty"`
}

func (e ScheduleEntry) IsPlaceholder() bool { return e.Kind == EntryPlaceholder }
func (e ScheduleEntry) IsSkipped() bool     { return e.Kind == EntrySkipped }
func (e ScheduleEntry) IsBreak() bool       { return e.Kind == EntryBreak }

type DaySchedule struct {
	Day     models.Day      `json:"day"`
	Entries []ScheduleEntry `json:"entries"`
}

// Week holds Monday through Saturday in order
type Week []DaySchedule

func ref[T any](v T) *T { return &v }
