package timetable

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/lectern/internal/config"
	"github.com/julianstephens/lectern/internal/models"
)

const timetableJSON = `[
  {"day": "Monday", "startTime": "9:00", "endTime": "10:00", "divisions": ["A"], "subject": "Maths",
   "teacherId": "T1", "roomId": ["101"]},
  {"day": "mon", "startTime": "10:00", "endTime": "12:00", "divisions": "A", "subject": "Chem Lab",
   "roomId": "L1", "type": "lab", "batches": ["A1"]}
]`

const teachersYAML = `
- id: T1
  name: Anita Rao
  cabinRoomId: "201"
`

const roomsJSON = `[
  {"id": "101", "floor": 1, "type": "Classroom"},
  {"id": "201", "floor": 2, "type": "Classroom"},
  {"id": "L1", "floor": 0, "type": "Lab"}
]`

func writeSources(t *testing.T, timetable string) config.Sources {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"timetable.json": timetable,
		"teachers.yaml":  teachersYAML,
		"rooms.json":     roomsJSON,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return config.Sources{
		Timetable: filepath.Join(dir, "timetable.json"),
		Teachers:  filepath.Join(dir, "teachers.yaml"),
		Rooms:     filepath.Join(dir, "rooms.json"),
	}
}

func TestLoadFromFiles(t *testing.T) {
	store, result, err := Load(context.Background(), writeSources(t, timetableJSON))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if result.HasErrors() {
		t.Fatalf("unexpected validation errors: %s", result.FormatReport())
	}

	lectures := store.Lectures()
	if len(lectures) != 2 {
		t.Fatalf("expected 2 lectures, got %d", len(lectures))
	}
	first, lab := lectures[0], lectures[1]
	if first.StartTime != "09:00" {
		t.Errorf("start time not zero-padded: %q", first.StartTime)
	}
	if lab.Day != models.Monday {
		t.Errorf("short day name not normalized: %q", lab.Day)
	}
	if lab.Type != models.LectureTypeNone {
		t.Errorf("lab tag should be normalized away, got %q", lab.Type)
	}
	if len(lab.RoomID) != 1 || lab.RoomID[0] != "L1" {
		t.Errorf("scalar roomId not decoded as a list: %v", lab.RoomID)
	}
	if len(lab.Divisions) != 1 || lab.Divisions[0] != "A" {
		t.Errorf("scalar divisions not decoded as a list: %v", lab.Divisions)
	}
	if got := store.TeacherName("T1"); got != "Anita Rao" {
		t.Errorf("YAML teachers not loaded: %q", got)
	}
}

func TestLoadCanonicalizesBatches(t *testing.T) {
	lower := `[
  {"day": "Monday", "startTime": "10:00", "endTime": "12:00", "divisions": ["A"], "subject": "Chem Lab",
   "roomId": ["L1"], "batches": [" b1"]},
  {"day": "Monday", "startTime": "12:00", "endTime": "13:00", "divisions": ["A"], "subject": "DSA",
   "roomId": ["101"], "type": "tutorial", "batches": ["t1", "t2"]}
]`
	store, result, err := Load(context.Background(), writeSources(t, lower))
	if err != nil {
		t.Fatalf("Load failed: %v (%s)", err, result.FormatReport())
	}

	if got := store.LabBatches("A"); len(got) != 1 || got[0] != "B1" {
		t.Errorf("LabBatches(A) = %v, want [B1]", got)
	}
	if got := store.TutorialBatches("A"); len(got) != 2 || got[0] != "T1" || got[1] != "T2" {
		t.Errorf("TutorialBatches(A) = %v, want [T1 T2]", got)
	}
}

func TestLoadMissingSource(t *testing.T) {
	src := writeSources(t, timetableJSON)
	src.Rooms = filepath.Join(t.TempDir(), "absent.json")

	_, _, err := Load(context.Background(), src)
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("Load error = %v, want ErrSourceUnavailable", err)
	}
}

func TestLoadMalformedSource(t *testing.T) {
	_, _, err := Load(context.Background(), writeSources(t, `{"not": "a list"`))
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("Load error = %v, want ErrSourceUnavailable", err)
	}
}

func TestLoadInvalidRecords(t *testing.T) {
	bad := `[{"day": "Sunday", "startTime": "10:00", "endTime": "09:00", "divisions": ["A"], "subject": "X", "roomId": ["101"]}]`
	_, result, err := Load(context.Background(), writeSources(t, bad))
	if !errors.Is(err, ErrInvalidTimetable) {
		t.Fatalf("Load error = %v, want ErrInvalidTimetable", err)
	}
	if len(result.Errors()) < 2 {
		t.Errorf("expected day and interval errors, got: %s", result.FormatReport())
	}
}

func TestLoadFromURL(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/timetable.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(timetableJSON))
	})
	mux.HandleFunc("/teachers.yml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(teachersYAML))
	})
	mux.HandleFunc("/rooms", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(roomsJSON))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store, _, err := Load(context.Background(), config.Sources{
		Timetable: srv.URL + "/timetable.json",
		Teachers:  srv.URL + "/teachers.yml",
		Rooms:     srv.URL + "/rooms",
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(store.Rooms()) != 3 {
		t.Errorf("expected 3 rooms, got %d", len(store.Rooms()))
	}

	_, _, err = Load(context.Background(), config.Sources{
		Timetable: srv.URL + "/timetable.json",
		Teachers:  srv.URL + "/teachers.yml",
		Rooms:     srv.URL + "/missing.json",
	})
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("404 source error = %v, want ErrSourceUnavailable", err)
	}
}
