package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/lectern/internal/constants"
	"github.com/julianstephens/lectern/internal/models"
)

func TestResolvePrecedence(t *testing.T) {
	dir := t.TempDir()
	settings := models.Settings{
		TimetableSource: "stored-timetable.yaml",
		TeachersSource:  "https://example.edu/teachers.json",
		Timezone:        "Asia/Kolkata",
	}

	t.Run("stored settings and defaults", func(t *testing.T) {
		t.Setenv(constants.EnvTimetable, "")
		t.Setenv(constants.EnvTimezone, "")
		os.Unsetenv(constants.EnvTimezone)

		cfg := Resolve(Overrides{}, settings, dir)
		if cfg.Sources.Timetable != filepath.Join(dir, "stored-timetable.yaml") {
			t.Errorf("Timetable = %q", cfg.Sources.Timetable)
		}
		if cfg.Sources.Teachers != "https://example.edu/teachers.json" {
			t.Errorf("Teachers URL should not be anchored, got %q", cfg.Sources.Teachers)
		}
		if cfg.Sources.Rooms != filepath.Join(dir, constants.DefaultRoomsSource) {
			t.Errorf("Rooms = %q, want default under config dir", cfg.Sources.Rooms)
		}
		if cfg.Timezone != "Asia/Kolkata" {
			t.Errorf("Timezone = %q", cfg.Timezone)
		}
		if cfg.DayStart != constants.DefaultDayStart || cfg.DayEnd != constants.DefaultDayEnd {
			t.Errorf("hours = %s-%s, want defaults", cfg.DayStart, cfg.DayEnd)
		}
	})

	t.Run("environment beats settings", func(t *testing.T) {
		t.Setenv(constants.EnvTimetable, "env.json")
		t.Setenv(constants.EnvTimezone, "UTC")

		cfg := Resolve(Overrides{}, settings, dir)
		if cfg.Sources.Timetable != "env.json" {
			t.Errorf("Timetable = %q, want env.json", cfg.Sources.Timetable)
		}
		if cfg.Timezone != "UTC" {
			t.Errorf("Timezone = %q, want UTC", cfg.Timezone)
		}
	})

	t.Run("flag beats environment", func(t *testing.T) {
		t.Setenv(constants.EnvTimetable, "env.json")
		t.Setenv(constants.EnvTimezone, "UTC")

		cfg := Resolve(Overrides{Timetable: "flag.json", Timezone: "Europe/Paris"}, settings, dir)
		if cfg.Sources.Timetable != "flag.json" {
			t.Errorf("Timetable = %q, want flag.json", cfg.Sources.Timetable)
		}
		if cfg.Timezone != "Europe/Paris" {
			t.Errorf("Timezone = %q, want Europe/Paris", cfg.Timezone)
		}
	})
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte(constants.EnvRooms+"=from-dotenv.json\n"), 0600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	os.Unsetenv(constants.EnvRooms)
	t.Cleanup(func() { os.Unsetenv(constants.EnvRooms) })

	LoadEnv(filepath.Join(dir, "missing.env"), envFile)

	if got := GetEnv(constants.EnvRooms); got != "from-dotenv.json" {
		t.Errorf("GetEnv(%s) = %q, want from-dotenv.json", constants.EnvRooms, got)
	}
}

func TestGetEnvDefault(t *testing.T) {
	os.Unsetenv("LECTERN_TEST_UNSET")
	if got := GetEnv("LECTERN_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("GetEnv() = %q, want fallback", got)
	}
	t.Setenv("LECTERN_TEST_SET", "")
	if got := GetEnv("LECTERN_TEST_SET", "fallback"); got != "" {
		t.Errorf("GetEnv() = %q, want empty for a set-but-empty variable", got)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/.config/lectern"); got != filepath.Join(home, ".config", "lectern") {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandHome() changed an absolute path: %q", got)
	}
}

func TestIsURL(t *testing.T) {
	if !IsURL("https://example.edu/t.json") || !IsURL("http://localhost/t.json") {
		t.Error("expected http(s) sources to be URLs")
	}
	if IsURL("timetable.json") || IsURL("ftp://example.edu/t.json") {
		t.Error("unexpected URL classification")
	}
}
