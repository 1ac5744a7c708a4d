package eq_test

import (
	"testing"
	"time"

	"github.com/eisenq/eq"
)

func TestOpen(t *testing.T) {
	store, err := eq.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if store == nil {
		t.Error("expected non-nil store")
	}
}

func TestDataDir(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("EQ_DATA_DIR", tmpDir)

	dir, err := eq.DataDir()
	if err != nil {
		t.Fatalf("DataDir failed: %v", err)
	}
	if dir != tmpDir {
		t.Errorf("DataDir returned %s, expected %s", dir, tmpDir)
	}
}

func TestAddAndReload(t *testing.T) {
	dir := t.TempDir()

	store, err := eq.Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	added, err := store.Add("Write launch notes", 3, 3, day)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if added.Quadrant() != eq.DoFirst {
		t.Errorf("quadrant = %v, expected %v", added.Quadrant(), eq.DoFirst)
	}

	reopened, err := eq.Open(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	got, ok := reopened.Get(added.ID)
	if !ok {
		t.Fatal("task missing after reload")
	}
	if got.Title != "Write launch notes" || got.Status != eq.StatusPending {
		t.Errorf("reloaded task = %q/%s", got.Title, got.Status)
	}
}
