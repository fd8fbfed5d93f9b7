package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func expectEvent(t *testing.T, w Watcher, want string) {
	t.Helper()
	select {
	case got := <-w.Events():
		if got != want {
			t.Fatalf("expected event for %s, got %s", want, got)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for event on %s", want)
	}
}

func expectQuiet(t *testing.T, w Watcher, within time.Duration) {
	t.Helper()
	select {
	case got := <-w.Events():
		t.Fatalf("unexpected event for %s", got)
	case <-time.After(within):
	}
}

func TestWatcherReportsWatchedFile(t *testing.T) {
	dir := t.TempDir()
	track := filepath.Join(dir, "animation_frames.csv")
	other := filepath.Join(dir, "notes.txt")
	writeFile(t, track, "a")
	writeFile(t, other, "a")

	w, err := NewWatcher(WithDebounce(20 * time.Millisecond))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Close()

	if err := w.Watch(track); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	writeFile(t, other, "b")
	expectQuiet(t, w, 200*time.Millisecond)

	writeFile(t, track, "b")
	writeFile(t, track, "c")
	expectEvent(t, w, track)
	expectQuiet(t, w, 200*time.Millisecond)
}

func TestWatcherUnwatch(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "head.glb")
	audio := filepath.Join(dir, "out.wav")
	writeFile(t, model, "a")
	writeFile(t, audio, "a")

	w, err := NewWatcher(WithDebounce(20 * time.Millisecond))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Close()

	for _, p := range []string{model, audio, audio} {
		if err := w.Watch(p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := w.Unwatch(model); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	writeFile(t, model, "b")
	expectQuiet(t, w, 200*time.Millisecond)

	writeFile(t, audio, "b")
	expectEvent(t, w, audio)
}

func TestWatcherClose(t *testing.T) {
	w, err := NewWatcher()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close should be a no-op, got %v", err)
	}
	if _, ok := <-w.Events(); ok {
		t.Fatalf("expected events channel closed")
	}
	if _, ok := <-w.Errors(); ok {
		t.Fatalf("expected errors channel closed")
	}
}
