package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/lectern/internal/constants"
	"github.com/julianstephens/lectern/internal/storage"
)

var _ storage.Provider = (*Store)(nil)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "lectern.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestInitCreatesSchemaAndDefaults(t *testing.T) {
	store := setupTestStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.DayStart != constants.DefaultDayStart {
		t.Errorf("DayStart = %q, want %q", settings.DayStart, constants.DefaultDayStart)
	}
	if settings.TimetableSource != constants.DefaultTimetableSource {
		t.Errorf("TimetableSource = %q, want %q", settings.TimetableSource, constants.DefaultTimetableSource)
	}

	var version int
	if err := store.GetDB().QueryRow("SELECT version FROM schema_version").Scan(&version); err != nil {
		t.Fatalf("schema_version not populated: %v", err)
	}
	if version < 1 {
		t.Errorf("expected schema version >= 1, got %d", version)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	store := setupTestStore(t)
	settings, _ := store.GetSettings()
	settings.DayEnd = "18:30"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	if err := store.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	got, _ := store.GetSettings()
	if got.DayEnd != "18:30" {
		t.Errorf("re-init overwrote settings: DayEnd = %q", got.DayEnd)
	}
}

func TestKeyValue(t *testing.T) {
	store := setupTestStore(t)

	if _, err := store.Get(constants.ProfileKey); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Get on empty store error = %v, want ErrNotFound", err)
	}

	if err := store.Set(constants.ProfileKey, `{"division":"A"}`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set(constants.ProfileKey, `{"division":"B"}`); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	got, err := store.Get(constants.ProfileKey)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != `{"division":"B"}` {
		t.Errorf("Get = %q", got)
	}

	if err := store.Delete(constants.ProfileKey); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(constants.ProfileKey); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second Delete error = %v, want ErrNotFound", err)
	}
}

func TestLoad(t *testing.T) {
	t.Run("uninitialized", func(t *testing.T) {
		store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
		if err := store.Load(); err == nil {
			t.Error("expected error loading a missing database")
		}
	})

	t.Run("reopen persisted data", func(t *testing.T) {
		store := setupTestStore(t)
		if err := store.Set("k", "v"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		store.Close()

		reopened := NewStore(store.GetConfigPath())
		if err := reopened.Load(); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		defer reopened.Close()
		if got, _ := reopened.Get("k"); got != "v" {
			t.Errorf("Get(k) = %q, want v", got)
		}
	})

	t.Run("newer schema rejected", func(t *testing.T) {
		store := setupTestStore(t)
		if _, err := store.GetDB().Exec("UPDATE schema_version SET version = 999"); err != nil {
			t.Fatalf("failed to bump version: %v", err)
		}
		store.Close()

		reopened := NewStore(store.GetConfigPath())
		defer reopened.Close()
		if err := reopened.Load(); err == nil {
			t.Error("expected error for newer schema")
		}
	})
}
