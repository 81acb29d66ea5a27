package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glider.yaml")
	writeFile(t, path, "player:\n  move_speed: 200\n")

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()

	writeFile(t, filepath.Join(dir, "other.yaml"), "level: ignored.json\n")
	writeFile(t, path, "player:\n  move_speed: 320\n")

	select {
	case cfg := <-w.Changes:
		if got := cfg.Player.Tuning().MoveSpeed; got != 320 {
			t.Errorf("move speed = %v, want 320", got)
		}
	case err := <-w.Errors:
		t.Fatalf("reload error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload")
	}
}

func TestWatcherReportsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glider.yaml")
	writeFile(t, path, "level: a.json\n")

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()

	writeFile(t, path, "player:\n  max_health: 0\n")

	select {
	case cfg := <-w.Changes:
		t.Fatalf("unexpected reload: %+v", cfg.Player)
	case err := <-w.Errors:
		if err == nil {
			t.Fatal("nil error")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no error reported")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glider.yaml")
	writeFile(t, path, "level: a.json\n")

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if _, ok := <-w.Changes; ok {
		t.Error("Changes should be closed")
	}
}
