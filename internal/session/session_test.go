package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/lectern/internal/config"
	"github.com/julianstephens/lectern/internal/engine"
	"github.com/julianstephens/lectern/internal/models"
	"github.com/julianstephens/lectern/internal/storage"
	"github.com/julianstephens/lectern/internal/timetable"
	"github.com/julianstephens/lectern/internal/utils"
)

// countingStore records writes so tests can assert that no-ops stay no-ops.
type countingStore struct {
	*storage.JSONStore
	sets    int
	deletes int
}

func (c *countingStore) Set(key, value string) error {
	c.sets++
	return c.JSONStore.Set(key, value)
}

func (c *countingStore) Delete(key string) error {
	c.deletes++
	return c.JSONStore.Delete(key)
}

func testStore() *timetable.Store {
	lectures := []models.Lecture{
		{Day: models.Tuesday, StartTime: "10:00", EndTime: "11:00", Divisions: []string{"A"}, Subject: "DSA", Type: models.LectureTypeTutorial, Batches: []string{"T1"}, RoomID: []string{"104"}},
		{Day: models.Tuesday, StartTime: "10:00", EndTime: "11:00", Divisions: []string{"A"}, Subject: "DSA", Type: models.LectureTypeTutorial, Batches: []string{"T2", "T1"}, RoomID: []string{"105"}},
		{Day: models.Tuesday, StartTime: "11:00", EndTime: "12:00", Divisions: []string{"A"}, Subject: "Physics", TeacherID: "T1", Type: models.LectureTypeElective, ElectiveGroup: "G1", RoomID: []string{"106"}},
		{Day: models.Tuesday, StartTime: "11:00", EndTime: "12:00", Divisions: []string{"A"}, Subject: "Chemistry", Type: models.LectureTypeElective, ElectiveGroup: "G1", CustomGroup: "CHEM-A", RoomID: []string{"107"}},
		{Day: models.Tuesday, StartTime: "12:00", EndTime: "13:00", Divisions: []string{"A"}, Subject: "Finance", Type: models.LectureTypeMinor, MinorGroup: "M", RoomID: []string{"108"}},
		{Day: models.Wednesday, StartTime: "09:00", EndTime: "10:00", Divisions: []string{"B"}, Subject: "Economics", RoomID: []string{"104"}},
	}
	teachers := []models.Teacher{{ID: "T1", Name: "Anita Rao", CabinRoomID: "201"}}
	rooms := []models.Room{{ID: "104"}, {ID: "105"}, {ID: "106"}, {ID: "107"}, {ID: "108"}}
	return timetable.NewStore(lectures, teachers, rooms)
}

func setupSession(t *testing.T, opts ...Option) (*Session, *countingStore) {
	t.Helper()
	js := storage.NewJSONStore(filepath.Join(t.TempDir(), "lectern.json"))
	if err := js.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	store := &countingStore{JSONStore: js}
	s, err := New(engine.New(testStore(), engine.Options{}), store, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s, store
}

func TestSaveDetails(t *testing.T) {
	s, store := setupSession(t)

	p, err := s.SaveDetails(" A ", " t1", "t2 ")
	if err != nil {
		t.Fatalf("SaveDetails() error = %v", err)
	}
	if p.Division != "A" || p.LabBatch != "T1" || p.TutorialBatch != "T2" {
		t.Errorf("SaveDetails() = %+v", p)
	}
	if p.ID == "" || p.UpdatedAt == "" {
		t.Errorf("expected id and timestamp, got %+v", p)
	}

	stored, err := storage.LoadProfile(store)
	if err != nil {
		t.Fatalf("LoadProfile() error = %v", err)
	}
	if stored.Division != "A" || stored.ID != p.ID {
		t.Errorf("stored profile = %+v", stored)
	}

	tests := []struct {
		name     string
		division string
		wantErr  error
	}{
		{"empty", "  ", ErrDivisionRequired},
		{"unknown", "Z", ErrUnknownDivision},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.SaveDetails(tt.division, "", ""); !errors.Is(err, tt.wantErr) {
				t.Errorf("SaveDetails(%q) error = %v, want %v", tt.division, err, tt.wantErr)
			}
		})
	}
}

func TestLowerCaseBatchesMatchProfile(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"timetable.json": `[
  {"day": "Monday", "startTime": "09:00", "endTime": "10:00", "divisions": ["A"], "subject": "Maths", "roomId": ["101"]},
  {"day": "Monday", "startTime": "10:00", "endTime": "12:00", "divisions": ["A"], "subject": "Chem Lab", "roomId": ["L1"], "batches": ["b1"]},
  {"day": "Monday", "startTime": "10:00", "endTime": "12:00", "divisions": ["A"], "subject": "Phys Lab", "roomId": ["L2"], "batches": ["b2"]},
  {"day": "Monday", "startTime": "12:00", "endTime": "13:00", "divisions": ["A"], "subject": "DSA", "roomId": ["101"], "type": "tutorial", "batches": ["t1"]},
  {"day": "Monday", "startTime": "12:00", "endTime": "13:00", "divisions": ["A"], "subject": "DSA", "roomId": ["102"], "type": "tutorial", "batches": ["t2"]}
]`,
		"teachers.json": `[]`,
		"rooms.json":    `[{"id": "101", "floor": 1, "type": "Classroom"}, {"id": "102", "floor": 1, "type": "Classroom"}, {"id": "L1", "floor": 0, "type": "Lab"}, {"id": "L2", "floor": 0, "type": "Lab"}]`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
			t.Fatal(err)
		}
	}
	table, _, err := timetable.Load(context.Background(), config.Sources{
		Timetable: filepath.Join(dir, "timetable.json"),
		Teachers:  filepath.Join(dir, "teachers.json"),
		Rooms:     filepath.Join(dir, "rooms.json"),
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	js := storage.NewJSONStore(filepath.Join(t.TempDir(), "lectern.json"))
	if err := js.Init(); err != nil {
		t.Fatal(err)
	}
	s, err := New(engine.New(table, engine.Options{}), js)
	if err != nil {
		t.Fatal(err)
	}

	// the setup form offers the store's batch ids verbatim
	batch := table.LabBatches("A")[0]
	if _, err := s.SaveDetails("A", batch, "t1"); err != nil {
		t.Fatalf("SaveDetails() error = %v", err)
	}
	got := s.Status(models.Monday, "10:30", false)
	if got.Status != engine.StatusInLecture || got.Lecture.Subject != "Chem Lab" {
		t.Errorf("Status(Mon 10:30) = %+v, want Chem Lab", got)
	}

	if got := s.Status(models.Monday, "12:30", false); got.Status != engine.StatusChoiceRequired {
		t.Fatalf("Status(Mon 12:30) = %+v, want CHOICE_REQUIRED", got)
	}
	p, err := s.ApplyChoice("tutorial_DSA", "t1")
	if err != nil {
		t.Fatalf("ApplyChoice(t1) error = %v", err)
	}
	if p.Choices["tutorial_DSA"] != "T1" {
		t.Errorf("tutorial choice = %q, want T1", p.Choices["tutorial_DSA"])
	}
	got = s.Status(models.Monday, "12:30", false)
	if got.Status != engine.StatusInLecture || got.Lecture.RoomID[0] != "101" {
		t.Errorf("Status(Mon 12:30) = %+v, want DSA in 101", got)
	}
}

func TestDivisionChangeClearsChoices(t *testing.T) {
	s, _ := setupSession(t)

	if _, err := s.SaveDetails("A", "L1", "T1"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ApplyChoice("elective_G1", "Physics"); err != nil {
		t.Fatal(err)
	}

	p, err := s.SaveDetails("A", "L2", "T1")
	if err != nil {
		t.Fatal(err)
	}
	if p.Choices["elective_G1"] != "Physics" {
		t.Errorf("same division lost choices: %+v", p.Choices)
	}

	p, err = s.SaveDetails("B", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Choices) != 0 {
		t.Errorf("division change kept choices: %+v", p.Choices)
	}
}

func TestRequestResolution(t *testing.T) {
	s, _ := setupSession(t)

	tests := []struct {
		group     string
		kind      string
		records   int
		values    []ChoiceValue
		allowNone bool
	}{
		{"tutorial_DSA", "tutorial", 2, []ChoiceValue{{"T1", "Tutorial Batch T1"}, {"T2", "Tutorial Batch T2"}}, false},
		{"elective_G1", "elective", 2, []ChoiceValue{{"Physics", "Physics"}, {"CHEM-A", "Chemistry (CHEM-A)"}}, false},
		{"minor_M", "minor", 1, []ChoiceValue{{"Finance", "Finance"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.group, func(t *testing.T) {
			got, err := s.RequestResolution(tt.group)
			if err != nil {
				t.Fatalf("RequestResolution() error = %v", err)
			}
			if got.Kind != tt.kind || len(got.Records) != tt.records || got.AllowNone != tt.allowNone {
				t.Errorf("RequestResolution() = kind %s, %d records, allowNone %v", got.Kind, len(got.Records), got.AllowNone)
			}
			if len(got.Values) != len(tt.values) {
				t.Fatalf("Values = %+v, want %+v", got.Values, tt.values)
			}
			for i := range tt.values {
				if got.Values[i] != tt.values[i] {
					t.Errorf("Values[%d] = %+v, want %+v", i, got.Values[i], tt.values[i])
				}
			}
		})
	}

	for _, bad := range []string{"G1", "elective_", "elective_Nope"} {
		if _, err := s.RequestResolution(bad); !errors.Is(err, ErrInvalidGroup) {
			t.Errorf("RequestResolution(%q) error = %v, want ErrInvalidGroup", bad, err)
		}
	}
}

func TestApplyChoiceValidation(t *testing.T) {
	s, store := setupSession(t)

	tests := []struct {
		name    string
		group   string
		value   string
		wantErr error
	}{
		{"malformed group", "G1", "Physics", ErrInvalidGroup},
		{"empty value", "elective_G1", "  ", ErrEmptyValue},
		{"unknown value", "elective_G1", "Biology", ErrUnknownOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.ApplyChoice(tt.group, tt.value); !errors.Is(err, tt.wantErr) {
				t.Errorf("ApplyChoice() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
	if store.sets != 0 {
		t.Errorf("rejected choices wrote to the store %d times", store.sets)
	}
}

func TestApplyChoiceIdempotent(t *testing.T) {
	s, store := setupSession(t)
	if _, err := s.SaveDetails("A", "L1", "T1"); err != nil {
		t.Fatal(err)
	}
	before := store.sets

	first, err := s.ApplyChoice("elective_G1", "CHEM-A")
	if err != nil {
		t.Fatalf("ApplyChoice() error = %v", err)
	}
	second, err := s.ApplyChoice("elective_G1", "CHEM-A")
	if err != nil {
		t.Fatalf("second ApplyChoice() error = %v", err)
	}
	if store.sets != before+1 {
		t.Errorf("store written %d times, want 1", store.sets-before)
	}
	if first.Choices["elective_G1"] != "CHEM-A" || second.Choices["elective_G1"] != "CHEM-A" {
		t.Errorf("choices = %v, %v", first.Choices, second.Choices)
	}

	if _, err := s.ApplyChoice("minor_M", "NONE"); err != nil {
		t.Errorf("opting out failed: %v", err)
	}
}

func TestRevokeRestoresChoiceRequired(t *testing.T) {
	s, store := setupSession(t)
	if _, err := s.SaveDetails("A", "L1", "T1"); err != nil {
		t.Fatal(err)
	}

	before := s.Status(models.Tuesday, "11:30", false)
	if before.Status != engine.StatusChoiceRequired {
		t.Fatalf("Status = %s, want CHOICE_REQUIRED", before.Status)
	}

	if _, err := s.ApplyChoice("elective_G1", "Physics"); err != nil {
		t.Fatal(err)
	}
	got := s.Status(models.Tuesday, "11:30", false)
	if got.Status != engine.StatusInLecture || got.Lecture.Subject != "Physics" {
		t.Fatalf("Status after apply = %+v", got)
	}

	if _, err := s.RevokeChoice("elective_G1"); err != nil {
		t.Fatal(err)
	}
	after := s.Status(models.Tuesday, "11:30", false)
	if after.Status != engine.StatusChoiceRequired || after.GroupID != before.GroupID || len(after.Options) != len(before.Options) {
		t.Errorf("after revoke = %+v, want %+v", after, before)
	}

	writes := store.sets
	if _, err := s.RevokeChoice("elective_G1"); err != nil {
		t.Errorf("revoking an absent choice: %v", err)
	}
	if store.sets != writes {
		t.Errorf("revoking an absent choice wrote to the store")
	}
	if _, err := s.RevokeChoice("bogus"); !errors.Is(err, ErrInvalidGroup) {
		t.Errorf("RevokeChoice(bogus) error = %v", err)
	}
}

func TestSessionReloadsProfile(t *testing.T) {
	s, store := setupSession(t)
	if _, err := s.SaveDetails("A", "L1", "T1"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ApplyChoice("tutorial_DSA", "T2"); err != nil {
		t.Fatal(err)
	}

	again, err := New(s.Engine(), store)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := again.Profile().Choice("tutorial_DSA"); v != "T2" {
		t.Errorf("reloaded choice = %q, want T2", v)
	}
}

func TestReset(t *testing.T) {
	var hookCalls int
	s, store := setupSession(t, WithBeforeReset(func() error {
		hookCalls++
		return nil
	}))
	if _, err := s.SaveDetails("A", "L1", "T1"); err != nil {
		t.Fatal(err)
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if hookCalls != 1 {
		t.Errorf("before-reset hook called %d times", hookCalls)
	}
	if s.Profile().HasDivision() {
		t.Errorf("profile still has a division after reset")
	}
	if _, err := store.Get("profile"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("profile key still stored: %v", err)
	}
	if res := s.Status(models.Tuesday, "11:30", false); res.Status != engine.StatusNoDivision {
		t.Errorf("Status after reset = %s", res.Status)
	}

	failing, _ := setupSession(t, WithBeforeReset(func() error { return errors.New("disk full") }))
	if _, err := failing.SaveDetails("A", "", ""); err != nil {
		t.Fatal(err)
	}
	if err := failing.Reset(); err == nil {
		t.Error("Reset() succeeded despite failing hook")
	}
	if !failing.Profile().HasDivision() {
		t.Error("failed reset deleted the profile")
	}
}

func TestStatusNowUsesClock(t *testing.T) {
	// 2026-10-13 is a Tuesday
	clock := utils.FixedClock(time.Date(2026, 10, 13, 11, 15, 0, 0, time.UTC))
	s, _ := setupSession(t, WithClock(clock))
	if _, err := s.SaveDetails("A", "L1", "T1"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ApplyChoice("elective_G1", "Physics"); err != nil {
		t.Fatal(err)
	}

	got := s.StatusNow(false)
	if got.Status != engine.StatusInLecture || got.Lecture.Subject != "Physics" {
		t.Errorf("StatusNow() = %+v", got)
	}
	if day, now := s.Now(); day != models.Tuesday || now != "11:15" {
		t.Errorf("Now() = %s %s, want Tuesday 11:15", day, now)
	}
}

func TestTeacherLocationByName(t *testing.T) {
	s, _ := setupSession(t)

	got := s.TeacherLocation("anita", models.Tuesday, "11:30")
	if got.Status != engine.TeacherInLecture || got.Lecture.Subject != "Physics" {
		t.Errorf("TeacherLocation() = %+v", got)
	}
	if got := s.TeacherLocation("nobody", models.Tuesday, "11:30"); got.Status != engine.TeacherNotFound {
		t.Errorf("TeacherLocation(nobody) = %s", got.Status)
	}
}
