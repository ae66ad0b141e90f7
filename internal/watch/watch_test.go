package watch

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("Timed out waiting for condition")
}

func TestConfigWatcherDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portal.yaml")
	if err := os.WriteFile(path, []byte("port: 8080\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	w := New(path, 100*time.Millisecond, func(ctx context.Context) {
		calls.Add(1)
	}, log.New(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()

	// let the watcher register the directory
	time.Sleep(100 * time.Millisecond)

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("port: 9090\n"), 0644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	waitFor(t, func() bool { return calls.Load() >= 1 })
	time.Sleep(300 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("Expected one rebuild for a burst of writes, got %d", got)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Expected clean stop, got %v", err)
	}
}

func TestConfigWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portal.yaml")

	var calls atomic.Int32
	w := New(path, 20*time.Millisecond, func(ctx context.Context) {
		calls.Add(1)
	}, log.New(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	time.Sleep(200 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("Expected no rebuild for unrelated files, got %d", got)
	}
}

func TestConfigWatcherMissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing", "portal.yaml"), 0, func(context.Context) {}, log.New(io.Discard))
	if err := w.Run(context.Background()); err == nil {
		t.Error("Expected error watching a missing directory")
	}
}

func TestRelevant(t *testing.T) {
	w := New("conf/portal.yaml", 0, nil, nil)

	tests := []struct {
		event    fsnotify.Event
		expected bool
	}{
		{fsnotify.Event{Name: "conf/portal.yaml", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "conf/portal.yaml", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "conf/portal.yaml", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "conf/portal.yaml.swp", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "conf/./portal.yaml", Op: fsnotify.Write}, true},
	}

	for _, tt := range tests {
		if got := w.relevant(tt.event); got != tt.expected {
			t.Errorf("relevant(%v): expected %t, got %t", tt.event, tt.expected, got)
		}
	}
}
