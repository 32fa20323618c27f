package backups

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/lectern/internal/backup"
	"github.com/julianstephens/lectern/internal/cli/clitest"
	"github.com/julianstephens/lectern/internal/models"
	"github.com/julianstephens/lectern/internal/storage"
)

func TestBackupCreateAndList(t *testing.T) {
	ctx, out := clitest.NewContext(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	out.Reset()
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Backup created: lectern-") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "1 total") {
		t.Errorf("expected one backup:\n%s", out.String())
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, out := clitest.NewContext(t)
	if _, err := storage.SaveProfile(ctx.Store, models.Profile{Division: "A"}); err != nil {
		t.Fatal(err)
	}

	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	path, err := mgr.Create()
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := storage.SaveProfile(ctx.Store, models.Profile{Division: "B"}); err != nil {
		t.Fatal(err)
	}

	if err := (&BackupRestoreCmd{BackupFile: path}).Run(ctx); err == nil {
		t.Error("expected non-interactive restore without --yes to fail")
	}

	if err := (&BackupRestoreCmd{BackupFile: filepath.Base(path), Yes: true}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Store restored successfully!") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	restored := storage.NewJSONStore(ctx.Store.GetConfigPath())
	if err := restored.Load(); err != nil {
		t.Fatal(err)
	}
	profile, err := storage.LoadProfile(restored)
	if err != nil {
		t.Fatal(err)
	}
	if profile.Division != "A" {
		t.Errorf("Division = %q, want A", profile.Division)
	}
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx, _ := clitest.NewContext(t)
	if err := (&BackupRestoreCmd{BackupFile: "lectern-nope.json", Yes: true}).Run(ctx); err == nil {
		t.Error("expected error for a missing backup")
	}
}
