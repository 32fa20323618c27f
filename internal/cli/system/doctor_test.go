package system

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/lectern/internal/cli"
	"github.com/julianstephens/lectern/internal/cli/clitest"
	"github.com/julianstephens/lectern/internal/storage/sqlite"
)

func TestDoctorCmd_Healthy(t *testing.T) {
	ctx, out := clitest.NewSQLiteContext(t)

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("doctor failed: %v\n%s", err, out.String())
	}

	for _, want := range []string{"Store reachable: OK", "Schema version: OK", "Timetable sources: OK", "All checks passed."} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
	// a fresh store has no backups yet
	if !strings.Contains(out.String(), "Backups present: WARNING") {
		t.Errorf("expected backup warning:\n%s", out.String())
	}
}

func TestDoctorCmd_MissingTimetable(t *testing.T) {
	ctx, out := clitest.NewContext(t)
	if err := os.Remove(ctx.Overrides.Timetable); err != nil {
		t.Fatal(err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Fatal("expected doctor to fail without a timetable")
	}
	if !strings.Contains(out.String(), "Timetable sources: FAIL") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestDoctorCmd_UninitializedStore(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "missing.db"))
	var out strings.Builder
	ctx := &cli.Context{Store: store, Out: &out}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Fatal("expected doctor to fail for an uninitialized store")
	}
	if !strings.Contains(out.String(), "Schema version: SKIPPED") {
		t.Errorf("expected skipped checks:\n%s", out.String())
	}
}

func TestDoctorCmd_BadTimezone(t *testing.T) {
	ctx, out := clitest.NewContext(t)
	ctx.Overrides.Timezone = "Mars/Olympus"

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Fatal("expected doctor to fail for an unknown timezone")
	}
	if !strings.Contains(out.String(), "Clock/timezone: FAIL") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestValidateCmd(t *testing.T) {
	ctx, out := clitest.NewContext(t)
	if err := (&ValidateCmd{}).Run(ctx); err != nil {
		t.Fatalf("validate failed: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "✓ 5 lectures, 2 teachers, 6 rooms, 1 divisions") {
		t.Errorf("unexpected summary:\n%s", out.String())
	}

	bad := `[{"day": "Sunday", "startTime": "10:00", "endTime": "09:00", "divisions": ["A"], "subject": "X", "roomId": ["101"]}]`
	if err := os.WriteFile(ctx.Overrides.Timetable, []byte(bad), 0600); err != nil {
		t.Fatal(err)
	}
	badCtx := &cli.Context{Store: ctx.Store, Overrides: ctx.Overrides, Out: out}
	if err := (&ValidateCmd{}).Run(badCtx); err == nil {
		t.Error("expected validation failure for an inverted Sunday lecture")
	}
}
