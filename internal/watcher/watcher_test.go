package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/docsquad/internal/config"
	"github.com/nguyentantai21042004/docsquad/internal/logger"
	"github.com/nguyentantai21042004/docsquad/internal/pipeline"
	"github.com/nguyentantai21042004/docsquad/internal/shell"
)

func TestWatcherHandlesMediaFiles(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var seen []string
	handled := make(chan struct{}, 4)
	handler := func(_ context.Context, path string) error {
		mu.Lock()
		seen = append(seen, filepath.Base(path))
		mu.Unlock()
		handled <- struct{}{}
		return nil
	}

	w, err := New(dir, handler, logger.Discard(), Options{Settle: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	for _, name := range []string{"notes.txt", "demo.mp4"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-handled:
	case <-time.After(3 * time.Second):
		t.Fatal("handler was not called")
	}
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Start() error = %v, want context.Canceled", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 1 || seen[0] != "demo.mp4" {
		t.Errorf("handled %v, want only demo.mp4", seen)
	}
}

func TestNewMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), nil, logger.Discard(), Options{})
	if err == nil {
		t.Error("New() should fail for a missing directory")
	}
}

type stubShell struct {
	err  error
	path string
}

func (s *stubShell) Process(context.Context, shell.Upload) (*pipeline.Run, error) {
	return nil, errors.New("not used")
}

func (s *stubShell) ProcessPath(_ context.Context, path, _ string, _ pipeline.Sink) (*pipeline.Run, error) {
	s.path = path
	if s.err != nil {
		return nil, s.err
	}
	return &pipeline.Run{Document: "# Doc"}, nil
}

func TestDocHandler(t *testing.T) {
	root := t.TempDir()
	paths := config.PathsConfig{
		Input:    filepath.Join(root, "in"),
		Output:   filepath.Join(root, "out"),
		Archived: filepath.Join(root, "archived"),
	}
	if err := os.MkdirAll(paths.Input, 0755); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(paths.Input, "session.mov")
	if err := os.WriteFile(src, []byte("video"), 0644); err != nil {
		t.Fatal(err)
	}

	sh := &stubShell{}
	if err := NewDocHandler(sh, paths, "", logger.Discard())(context.Background(), src); err != nil {
		t.Fatalf("handler error = %v", err)
	}

	got, err := os.ReadFile(filepath.Join(paths.Output, "session.md"))
	if err != nil || string(got) != "# Doc" {
		t.Errorf("output = %q, %v", got, err)
	}
	if _, err := os.Stat(filepath.Join(paths.Archived, "session.mov")); err != nil {
		t.Errorf("source not archived: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source should leave the input folder")
	}
}

func TestDocHandlerKeepsFailedFile(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "clip.mp3")
	if err := os.WriteFile(src, []byte("audio"), 0644); err != nil {
		t.Fatal(err)
	}
	paths := config.PathsConfig{Output: filepath.Join(root, "out"), Archived: filepath.Join(root, "archived")}

	sh := &stubShell{err: errors.New("boom")}
	if err := NewDocHandler(sh, paths, "", logger.Discard())(context.Background(), src); err == nil {
		t.Fatal("handler should fail")
	}
	if _, err := os.Stat(src); err != nil {
		t.Error("failed source should stay in place")
	}
	if _, err := os.Stat(paths.Output); !os.IsNotExist(err) {
		t.Error("no output should be written")
	}
}
