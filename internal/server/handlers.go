package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/nguyentantai21042004/docsquad/internal/config"
	"github.com/nguyentantai21042004/docsquad/internal/export"
	"github.com/nguyentantai21042004/docsquad/internal/media"
	"github.com/nguyentantai21042004/docsquad/internal/shell"
)

func (s *implServer) handleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadMB<<20)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "invalid upload: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !media.IsSupported(header.Filename) {
		http.Error(w, fmt.Sprintf("unsupported file type %q, accepted: %s",
			filepath.Ext(header.Filename), strings.Join(media.SupportedExtensions(), " ")), http.StatusUnsupportedMediaType)
		return
	}
	if s.opts.CheckCredentials != nil {
		if err := s.opts.CheckCredentials(); err != nil {
			s.logger.Error(r.Context(), "Rejected upload: %v", err)
			http.Error(w, "API key is not configured", http.StatusServiceUnavailable)
			return
		}
	}

	if !s.reserve() {
		http.Error(w, "too many uploads waiting, try again later", http.StatusTooManyRequests)
		return
	}

	// The request body is gone once this handler returns.
	data, err := io.ReadAll(file)
	if err != nil {
		s.unreserve()
		http.Error(w, "read upload: "+err.Error(), http.StatusBadRequest)
		return
	}

	run := newRunState(uuid.NewString(), header.Filename, r.FormValue("context"))
	s.runs.add(run)
	s.logger.Info(r.Context(), "Accepted upload %s (%d bytes) as run %s", header.Filename, len(data), run.id)

	go s.process(run, data)

	w.Header().Set("Location", "/api/runs/"+run.id)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	writeJSON(w, run.view())
}

// process waits for the single run slot and hands the upload to the shell.
func (s *implServer) process(run *runState, data []byte) {
	defer s.unreserve()
	ctx := s.baseCtx
	if err := s.slot.acquire(ctx); err != nil {
		run.finish("", err)
		return
	}
	defer s.slot.release()

	run.setStatus(statusRunning)
	res, err := s.shell.Process(ctx, shell.Upload{
		Name:    run.fileName,
		Body:    bytes.NewReader(data),
		Context: run.context,
		Sink:    run,
	})
	if err != nil {
		run.finish("", err)
		return
	}
	run.finish(res.Document, nil)
}

// reserve counts an upload against the running slot plus the queue. It
// reports false when both are full.
func (s *implServer) reserve() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight >= 1+s.opts.MaxQueued {
		return false
	}
	s.inflight++
	return true
}

func (s *implServer) unreserve() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
}

func (s *implServer) handleGet(w http.ResponseWriter, r *http.Request) {
	run, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, run.view())
}

// wsMessage is one frame of the status stream.
type wsMessage struct {
	Type  string   `json:"type"`
	Event any      `json:"event,omitempty"`
	Run   *runView `json:"run,omitempty"`
}

func (s *implServer) handleEvents(w http.ResponseWriter, r *http.Request) {
	run, ok := s.lookup(w, r)
	if !ok {
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn(r.Context(), "Websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// Drain client frames so a closed connection is noticed.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	sent := 0
	for {
		events, done, changed := run.since(sent)
		for _, ev := range events {
			if err := conn.WriteJSON(wsMessage{Type: "event", Event: ev}); err != nil {
				return
			}
			sent++
		}
		if done {
			v := run.view()
			v.Events = nil
			_ = conn.WriteJSON(wsMessage{Type: "done", Run: &v})
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			return
		}

		select {
		case <-changed:
		case <-gone:
			return
		case <-r.Context().Done():
			return
		}
	}
}

func (s *implServer) handlePreview(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.document(w, r)
	if !ok {
		return
	}
	out, err := export.HTML(doc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, out)
}

func (s *implServer) handleMarkdown(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.document(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="documentation.md"`)
	_, _ = io.WriteString(w, doc)
}

func (s *implServer) handleDocx(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.document(w, r)
	if !ok {
		return
	}

	if s.opts.TempDir != "" {
		if err := os.MkdirAll(s.opts.TempDir, 0755); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	tmp, err := os.CreateTemp(s.opts.TempDir, "document-*.docx")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	if err := export.Docx(export.Title(doc, "Documentation"), doc, tmp.Name()); err != nil {
		s.logger.Error(r.Context(), "DOCX export failed: %v", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", `attachment; filename="documentation.docx"`)
	http.ServeFile(w, r, tmp.Name())
}

func (s *implServer) lookup(w http.ResponseWriter, r *http.Request) (*runState, bool) {
	run, ok := s.runs.get(r.PathValue("id"))
	if !ok {
		http.Error(w, "run not found", http.StatusNotFound)
		return nil, false
	}
	return run, true
}

// document returns the finished document, or writes 409 while the run is
// still going.
func (s *implServer) document(w http.ResponseWriter, r *http.Request) (string, bool) {
	run, ok := s.lookup(w, r)
	if !ok {
		return "", false
	}
	v := run.view()
	if v.Status != statusDone {
		http.Error(w, "document not ready: run is "+string(v.Status), http.StatusConflict)
		return "", false
	}
	return v.Document, true
}

func writeJSON(w http.ResponseWriter, v any) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	_ = json.NewEncoder(w).Encode(v)
}

// userError maps shell failures to the message shown in the UI.
func userError(err error) string {
	switch {
	case errors.Is(err, config.ErrMissingCredential):
		return "API key is not configured"
	case errors.Is(err, shell.ErrUnsupportedType):
		return "unsupported file type"
	default:
		return err.Error()
	}
}
