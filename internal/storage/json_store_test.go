package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/lectern/internal/constants"
	"github.com/julianstephens/lectern/internal/models"
)

func setupJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "nested", "lectern.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return store
}

func TestJSONStoreInitWritesDefaults(t *testing.T) {
	store := setupJSONStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.DayStart != constants.DefaultDayStart || settings.DayEnd != constants.DefaultDayEnd {
		t.Errorf("unexpected default hours: %+v", settings)
	}
}

func TestJSONStoreKeyValue(t *testing.T) {
	store := setupJSONStore(t)

	if _, err := store.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
	if err := store.Set("k", "v1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set("k", "v2"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// A second handle on the same file sees the persisted value.
	reopened := NewJSONStore(store.GetConfigPath())
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got, err := reopened.Get("k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "v2" {
		t.Errorf("Get(k) = %q, want v2", got)
	}

	if err := reopened.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := reopened.Delete("k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete error = %v, want ErrNotFound", err)
	}
}

func TestJSONStoreLoadUninitialized(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "absent.json"))
	if err := store.Load(); err == nil {
		t.Error("expected error loading uninitialized store")
	}
}

func TestJSONStoreInitPreservesExistingData(t *testing.T) {
	store := setupJSONStore(t)
	if err := store.Set("k", "kept"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	again := NewJSONStore(store.GetConfigPath())
	if err := again.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	if got, _ := again.Get("k"); got != "kept" {
		t.Errorf("Get(k) = %q after re-init, want kept", got)
	}
}

func TestProfileHelpers(t *testing.T) {
	store := setupJSONStore(t)

	profile, err := LoadProfile(store)
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}
	if profile.HasDivision() || profile.Choices == nil {
		t.Fatalf("expected empty profile with initialized choices, got %+v", profile)
	}

	profile.Division = "A"
	profile.LabBatch = "A1"
	profile.Choices["elective_1"] = "ML"
	saved, err := SaveProfile(store, profile)
	if err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	if saved.UpdatedAt == "" {
		t.Error("SaveProfile should stamp UpdatedAt")
	}

	loaded, err := LoadProfile(store)
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}
	if loaded.Division != "A" || loaded.Choices["elective_1"] != "ML" {
		t.Errorf("unexpected loaded profile %+v", loaded)
	}

	if err := DeleteProfile(store); err != nil {
		t.Fatalf("DeleteProfile failed: %v", err)
	}
	if err := DeleteProfile(store); err != nil {
		t.Errorf("deleting a missing profile should succeed: %v", err)
	}
	loaded, _ = LoadProfile(store)
	if loaded.HasDivision() {
		t.Errorf("profile should be empty after delete, got %+v", loaded)
	}
}

func TestLoadProfileCorrupted(t *testing.T) {
	store := setupJSONStore(t)
	if err := store.Set(constants.ProfileKey, "{not json"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := LoadProfile(store); err == nil {
		t.Error("expected error for corrupted profile")
	}
}

var _ Provider = (*JSONStore)(nil)

func TestSettingsRoundTrip(t *testing.T) {
	store := setupJSONStore(t)
	want := models.DefaultSettings()
	want.DayStart = "07:30"
	want.Timezone = "UTC"
	if err := store.SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	got, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got != want {
		t.Errorf("GetSettings() = %+v, want %+v", got, want)
	}
}
