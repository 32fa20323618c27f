package timetable

import (
	"reflect"
	"testing"

	"github.com/julianstephens/lectern/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		lecture models.Lecture
		want    Class
		groupID string
	}{
		{"common without batches", models.Lecture{Subject: "Maths"}, Class{Kind: KindCommon}, ""},
		{"common shared by batches", models.Lecture{Batches: []string{"A1", "A2"}}, Class{Kind: KindCommon}, ""},
		{"single batch lab", models.Lecture{Batches: []string{"A1"}}, Class{Kind: KindSingleBatch, Key: "A1"}, ""},
		{"tutorial", models.Lecture{Type: models.LectureTypeTutorial, Subject: "DSA", Batches: []string{"T1"}}, Class{Kind: KindTutorial, Key: "DSA"}, "tutorial_DSA"},
		{"elective", models.Lecture{Type: models.LectureTypeElective, ElectiveGroup: "G1"}, Class{Kind: KindElective, Key: "G1"}, "elective_G1"},
		{"minor", models.Lecture{Type: models.LectureTypeMinor, MinorGroup: "M"}, Class{Kind: KindMinor, Key: "M"}, "minor_M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.lecture)
			if got != tt.want {
				t.Errorf("Classify() = %+v, want %+v", got, tt.want)
			}
			if got.IsChoice() != (tt.groupID != "") {
				t.Errorf("IsChoice() = %v", got.IsChoice())
			}
			if id := GroupIDFor(tt.lecture); id != tt.groupID {
				t.Errorf("GroupIDFor() = %q, want %q", id, tt.groupID)
			}
		})
	}
}

func TestParseGroupID(t *testing.T) {
	tests := []struct {
		id   string
		want Class
		ok   bool
	}{
		{"elective_G1", Class{Kind: KindElective, Key: "G1"}, true},
		{"minor_Finance", Class{Kind: KindMinor, Key: "Finance"}, true},
		{"tutorial_Data Structures", Class{Kind: KindTutorial, Key: "Data Structures"}, true},
		{"elective_", Class{}, false},
		{"G1", Class{}, false},
		{"", Class{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, ok := ParseGroupID(tt.id)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseGroupID(%q) = %+v, %v; want %+v, %v", tt.id, got, ok, tt.want, tt.ok)
			}
			if ok && got.GroupID() != tt.id {
				t.Errorf("GroupID() = %q, want %q", got.GroupID(), tt.id)
			}
		})
	}
}

func sampleStore() *Store {
	lectures := []models.Lecture{
		{Day: models.Monday, StartTime: "09:00", EndTime: "10:00", Divisions: []string{"B", "A"}, Subject: "Maths", TeacherID: "T1", RoomID: []string{"101"}},
		{Day: models.Monday, StartTime: "10:00", EndTime: "12:00", Divisions: []string{"A"}, Subject: "Chem Lab", RoomID: []string{"L1"}, Batches: []string{"A2"}},
		{Day: models.Monday, StartTime: "10:00", EndTime: "12:00", Divisions: []string{"A"}, Subject: "Phys Lab", RoomID: []string{"L2"}, Batches: []string{"A1"}},
		{Day: models.Tuesday, StartTime: "11:00", EndTime: "12:00", Divisions: []string{"A"}, Subject: "DSA", Type: models.LectureTypeTutorial, Batches: []string{"T2", "T1"}, RoomID: []string{"102"}},
		{Day: models.Tuesday, StartTime: "11:00", EndTime: "12:00", Divisions: []string{"C"}, Subject: "Physics", Type: models.LectureTypeElective, ElectiveGroup: "G1", RoomID: []string{"103"}},
		{Day: models.Friday, StartTime: "11:00", EndTime: "12:00", Divisions: []string{"C"}, Subject: "Physics", Type: models.LectureTypeElective, ElectiveGroup: "G1", RoomID: []string{"103"}},
	}
	teachers := []models.Teacher{
		{ID: "T1", Name: "Anita Rao", CabinRoomID: "201"},
		{ID: "T2", Name: "Ravi Kumar", CabinRoomID: "202"},
		{ID: "T3", Name: "Ravi Shah", CabinRoomID: "203"},
	}
	rooms := []models.Room{
		{ID: "101", Floor: 1, Type: models.RoomTypeClassroom},
		{ID: "L1", Floor: 0, Type: models.RoomTypeLab},
		{ID: "201", Floor: 2, Type: models.RoomTypeClassroom},
	}
	return NewStore(lectures, teachers, rooms)
}

func TestStoreAssignsTableOrder(t *testing.T) {
	s := sampleStore()
	for i, l := range s.Lectures() {
		if l.Seq != i {
			t.Errorf("lecture %d has Seq %d", i, l.Seq)
		}
	}
	if got := len(s.LecturesOn(models.Monday)); got != 3 {
		t.Errorf("LecturesOn(Monday) = %d records, want 3", got)
	}
	if got := s.LecturesOn(models.Saturday); len(got) != 0 {
		t.Errorf("LecturesOn(Saturday) = %v, want none", got)
	}
}

func TestStoreLookups(t *testing.T) {
	s := sampleStore()

	if got := s.Divisions(); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Errorf("Divisions() = %v", got)
	}
	if got := s.LabBatches("A"); !reflect.DeepEqual(got, []string{"A1", "A2"}) {
		t.Errorf("LabBatches(A) = %v", got)
	}
	if got := s.TutorialBatches("A"); !reflect.DeepEqual(got, []string{"T1", "T2"}) {
		t.Errorf("TutorialBatches(A) = %v", got)
	}
	if got := s.Floors(); !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Errorf("Floors() = %v", got)
	}
	if got := s.ByGroup("elective_G1"); len(got) != 2 {
		t.Errorf("ByGroup(elective_G1) = %d records, want 2", len(got))
	}

	if got := s.TeacherName("T1"); got != "Anita Rao" {
		t.Errorf("TeacherName(T1) = %q", got)
	}
	if got := s.TeacherName("T9"); got != "T9" {
		t.Errorf("TeacherName(T9) = %q, want the id back", got)
	}
	if got := s.TeacherName(""); got != "N/A" {
		t.Errorf("TeacherName(\"\") = %q", got)
	}
	if got := RoomInfo([]string{"102", "103"}); got != "102 or 103" {
		t.Errorf("RoomInfo() = %q", got)
	}
	if got := RoomInfo(nil); got != "N/A" {
		t.Errorf("RoomInfo(nil) = %q", got)
	}
}

func TestFindTeacher(t *testing.T) {
	s := sampleStore()
	tests := []struct {
		query  string
		wantID string
		ok     bool
	}{
		{"T2", "T2", true},
		{"anita rao", "T1", true},
		{"Shah", "T3", true},
		{"Ravi", "", false}, // two teachers match
		{"nobody", "", false},
		{"  ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, ok := s.FindTeacher(tt.query)
			if ok != tt.ok || got.ID != tt.wantID {
				t.Errorf("FindTeacher(%q) = %q, %v; want %q, %v", tt.query, got.ID, ok, tt.wantID, tt.ok)
			}
		})
	}
}
