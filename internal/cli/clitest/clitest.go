// Package clitest builds command contexts backed by temporary stores and
// timetable files for command tests.
package clitest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/lectern/internal/cli"
	"github.com/julianstephens/lectern/internal/config"
	"github.com/julianstephens/lectern/internal/storage"
	"github.com/julianstephens/lectern/internal/storage/sqlite"
)

const Timetable = `[
  {"day": "Monday", "startTime": "09:00", "endTime": "10:00", "divisions": ["A"], "subject": "Maths",
   "teacherId": "T1", "roomId": ["101"]},
  {"day": "Monday", "startTime": "10:00", "endTime": "12:00", "divisions": ["A"], "subject": "Chem Lab",
   "teacherId": "T2", "roomId": ["L1"], "type": "lab", "batches": ["A1"]},
  {"day": "Monday", "startTime": "10:00", "endTime": "12:00", "divisions": ["A"], "subject": "Phys Lab",
   "teacherId": "T1", "roomId": ["L2"], "type": "lab", "batches": ["A2"]},
  {"day": "Tuesday", "startTime": "11:00", "endTime": "12:00", "divisions": ["A"], "subject": "Physics",
   "teacherId": "T1", "roomId": ["101"], "type": "elective", "electiveGroup": "G1"},
  {"day": "Tuesday", "startTime": "11:00", "endTime": "12:00", "divisions": ["A"], "subject": "Chemistry",
   "teacherId": "T2", "roomId": ["102"], "type": "elective", "electiveGroup": "G1"}
]`

const Teachers = `[
  {"id": "T1", "name": "Anita Rao", "cabinRoomId": "201"},
  {"id": "T2", "name": "Vikram Shah", "cabinRoomId": "202"}
]`

const Rooms = `[
  {"id": "101", "floor": 1, "type": "Classroom"},
  {"id": "102", "floor": 1, "type": "Classroom"},
  {"id": "201", "floor": 2, "type": "Classroom"},
  {"id": "202", "floor": 2, "type": "Classroom"},
  {"id": "L1", "floor": 0, "type": "Lab"},
  {"id": "L2", "floor": 0, "type": "Lab"}
]`

// WriteSources writes the fixture tables into dir.
func WriteSources(t *testing.T, dir string) config.Sources {
	t.Helper()
	src := config.Sources{
		Timetable: filepath.Join(dir, "timetable.json"),
		Teachers:  filepath.Join(dir, "teachers.json"),
		Rooms:     filepath.Join(dir, "rooms.json"),
	}
	for path, content := range map[string]string{src.Timetable: Timetable, src.Teachers: Teachers, src.Rooms: Rooms} {
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}
	return src
}

// NewContext returns a context over an initialized JSON store. Output is
// captured in the returned buffer.
func NewContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	return newContext(t, storage.NewJSONStore(filepath.Join(t.TempDir(), "lectern.json")))
}

// NewSQLiteContext is NewContext over a SQLite database.
func NewSQLiteContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	return newContext(t, sqlite.NewStore(filepath.Join(t.TempDir(), "lectern.db")))
}

func newContext(t *testing.T, store storage.Provider) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	dir := filepath.Dir(store.GetConfigPath())
	src := WriteSources(t, dir)

	var out bytes.Buffer
	ctx := &cli.Context{
		Store:     store,
		ConfigDir: dir,
		Out:       &out,
		Overrides: config.Overrides{
			Timetable: src.Timetable,
			Teachers:  src.Teachers,
			Rooms:     src.Rooms,
			Timezone:  "UTC",
		},
	}
	return ctx, &out
}
