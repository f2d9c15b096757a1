package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/docsquad/internal/logger"
)

// fakeService replays a fixed sequence of states for every uploaded file.
type fakeService struct {
	mu        sync.Mutex
	states    []State
	uploadErr error
	getErr    error
	failMsg   string
	uploads   int
	gets      int
}

func (f *fakeService) Upload(_ context.Context, path, mimeType string) (*RemoteFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads++
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return f.file(0, mimeType), nil
}

func (f *fakeService) Get(_ context.Context, name string) (*RemoteFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.file(f.gets, "video/mp4"), nil
}

func (f *fakeService) file(i int, mimeType string) *RemoteFile {
	state := f.states[len(f.states)-1]
	if i < len(f.states) {
		state = f.states[i]
	}
	rf := &RemoteFile{Name: "files/abc", URI: "https://files.example/abc", MIMEType: mimeType, State: state}
	if state == StateFailed {
		rf.Error = f.failMsg
	}
	return rf
}

type fakeProber struct {
	probe *Probe
	err   error
}

func (p fakeProber) Probe(context.Context, string) (*Probe, error) {
	return p.probe, p.err
}

func writeMedia(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("media bytes"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func fastOptions() Options {
	return Options{PollInterval: time.Millisecond, Timeout: time.Second}
}

// TestIngestPollsUntilActive verifies the poll loop waits out PROCESSING.
func TestIngestPollsUntilActive(t *testing.T) {
	svc := &fakeService{states: []State{StateProcessing, StateProcessing, StateActive}}
	ing := New(svc, fastOptions(), logger.Discard())
	path := writeMedia(t, "demo.mp4")

	asset, err := ing.Ingest(context.Background(), path)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if asset.URI != "https://files.example/abc" {
		t.Errorf("URI = %q", asset.URI)
	}
	if asset.LocalPath != path {
		t.Errorf("LocalPath = %q, want %q", asset.LocalPath, path)
	}
	if asset.MIMEType != "video/mp4" {
		t.Errorf("MIMEType = %q, want video/mp4", asset.MIMEType)
	}
	if svc.gets != 2 {
		t.Errorf("gets = %d, want 2", svc.gets)
	}
}

// TestIngestMissingFile checks the precondition fails without uploading.
func TestIngestMissingFile(t *testing.T) {
	svc := &fakeService{states: []State{StateActive}}
	ing := New(svc, fastOptions(), logger.Discard())

	_, err := ing.Ingest(context.Background(), filepath.Join(t.TempDir(), "missing.mp4"))

	var ingErr *IngestError
	if !errors.As(err, &ingErr) {
		t.Fatalf("error = %v, want *IngestError", err)
	}
	if ingErr.Kind != KindNotFound {
		t.Errorf("Kind = %s, want %s", ingErr.Kind, KindNotFound)
	}
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("error should match ErrFileNotFound")
	}
	if svc.uploads != 0 {
		t.Errorf("uploads = %d, want 0", svc.uploads)
	}
}

// TestIngestRemoteFailure checks a FAILED state becomes a typed error.
func TestIngestRemoteFailure(t *testing.T) {
	svc := &fakeService{states: []State{StateProcessing, StateFailed}, failMsg: "unsupported codec"}
	ing := New(svc, fastOptions(), logger.Discard())

	_, err := ing.Ingest(context.Background(), writeMedia(t, "demo.webm"))

	var ingErr *IngestError
	if !errors.As(err, &ingErr) || ingErr.Kind != KindProcessingFailed {
		t.Fatalf("error = %v, want processing failure", err)
	}
	if !errors.Is(err, ErrProcessingFailed) {
		t.Errorf("error should match ErrProcessingFailed")
	}
}

// TestIngestTransportErrors checks upload and poll errors are wrapped.
func TestIngestTransportErrors(t *testing.T) {
	boom := errors.New("connection reset")
	tests := []struct {
		name string
		svc  *fakeService
	}{
		{"upload", &fakeService{states: []State{StateActive}, uploadErr: boom}},
		{"poll", &fakeService{states: []State{StateProcessing}, getErr: boom}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ing := New(tt.svc, fastOptions(), logger.Discard())
			_, err := ing.Ingest(context.Background(), writeMedia(t, "demo.mp3"))

			var ingErr *IngestError
			if !errors.As(err, &ingErr) || ingErr.Kind != KindTransport {
				t.Fatalf("error = %v, want transport failure", err)
			}
			if !errors.Is(err, boom) {
				t.Errorf("error should wrap the transport error")
			}
		})
	}
}

// TestIngestUnknownStateIsReady checks any state other than PROCESSING or
// FAILED ends the wait and yields the asset without polling.
func TestIngestUnknownStateIsReady(t *testing.T) {
	svc := &fakeService{states: []State{StateUnknown}}
	ing := New(svc, fastOptions(), logger.Discard())

	asset, err := ing.Ingest(context.Background(), writeMedia(t, "demo.mp4"))
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if asset.URI != "https://files.example/abc" {
		t.Errorf("URI = %q", asset.URI)
	}
	if svc.gets != 0 {
		t.Errorf("gets = %d, want 0", svc.gets)
	}
}

// TestIngestTimeout checks the poll loop gives up after the configured timeout.
func TestIngestTimeout(t *testing.T) {
	svc := &fakeService{states: []State{StateProcessing}}
	ing := New(svc, Options{PollInterval: time.Millisecond, Timeout: 20 * time.Millisecond}, logger.Discard())

	_, err := ing.Ingest(context.Background(), writeMedia(t, "demo.mp4"))

	var ingErr *IngestError
	if !errors.As(err, &ingErr) || ingErr.Kind != KindTimeout {
		t.Fatalf("error = %v, want timeout", err)
	}
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("error should match ErrTimeout")
	}
}

// TestIngestContextCancel checks cancellation stops the wait.
func TestIngestContextCancel(t *testing.T) {
	svc := &fakeService{states: []State{StateProcessing}}
	ing := New(svc, Options{PollInterval: time.Hour, Timeout: time.Hour}, logger.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ing.Ingest(ctx, writeMedia(t, "demo.mp4"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

// TestIngestProbe checks probe results are attached and probe errors ignored.
func TestIngestProbe(t *testing.T) {
	want := &Probe{FormatName: "mov,mp4", Duration: 12.5, Streams: 2}

	opts := fastOptions()
	opts.Prober = fakeProber{probe: want}
	ing := New(&fakeService{states: []State{StateActive}}, opts, logger.Discard())

	asset, err := ing.Ingest(context.Background(), writeMedia(t, "demo.mp4"))
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if asset.Probe != want {
		t.Errorf("Probe = %+v, want %+v", asset.Probe, want)
	}

	opts.Prober = fakeProber{err: errors.New("ffprobe missing")}
	ing = New(&fakeService{states: []State{StateActive}}, opts, logger.Discard())
	asset, err = ing.Ingest(context.Background(), writeMedia(t, "demo.mp4"))
	if err != nil {
		t.Fatalf("Ingest() with failing prober error = %v", err)
	}
	if asset.Probe != nil {
		t.Errorf("Probe = %+v, want nil", asset.Probe)
	}
}
