package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcherDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "model.yaml")
	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(model, []byte("entities: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	changed := make(chan string, 10)
	w := New(func(_ context.Context, path string) {
		calls.Add(1)
		changed <- path
	}, model)
	w.Debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(other, []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	for range 3 {
		if err := os.WriteFile(model, []byte("entities: []\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case path := <-changed:
		want, _ := filepath.Abs(model)
		if path != want {
			t.Errorf("OnChange(%q), want %q", path, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	time.Sleep(200 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Errorf("OnChange called %d times, want 1", n)
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	w := New(func(context.Context, string) {}, filepath.Join(t.TempDir(), "nope", "model.yaml"))
	if err := w.Run(context.Background()); err == nil {
		t.Error("Run() should fail for a missing directory")
	}
}
