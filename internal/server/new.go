package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nguyentantai21042004/docsquad/internal/logger"
	"github.com/nguyentantai21042004/docsquad/internal/shell"
)

type Options struct {
	Addr        string
	MaxUploadMB int64
	// MaxQueued bounds uploads held in memory while another run is going.
	// Further uploads are rejected with 429. Defaults to 4.
	MaxQueued int
	// TempDir holds generated .docx files while they are downloaded.
	TempDir string
	// CheckCredentials rejects uploads early when no API key is set.
	CheckCredentials func() error
}

type implServer struct {
	shell    shell.Shell
	opts     Options
	logger   logger.Logger
	runs     *runStore
	slot     *semaphore
	mu       sync.Mutex
	inflight int
	upgrader websocket.Upgrader
	baseCtx  context.Context
}

func New(sh shell.Shell, opts Options, log logger.Logger) Server {
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	if opts.MaxUploadMB <= 0 {
		opts.MaxUploadMB = 512
	}
	if opts.MaxQueued <= 0 {
		opts.MaxQueued = 4
	}
	return &implServer{
		shell:  sh,
		opts:   opts,
		logger: log,
		runs:   newRunStore(),
		// one run at a time
		slot: newSemaphore(1),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		baseCtx: context.Background(),
	}
}

func (s *implServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /api/runs", s.handleCreate)
	mux.HandleFunc("GET /api/runs/{id}", s.handleGet)
	mux.HandleFunc("GET /api/runs/{id}/events", s.handleEvents)
	mux.HandleFunc("GET /api/runs/{id}/preview", s.handlePreview)
	mux.HandleFunc("GET /api/runs/{id}/document.md", s.handleMarkdown)
	mux.HandleFunc("GET /api/runs/{id}/document.docx", s.handleDocx)
	return s.logMiddleware(mux)
}

func (s *implServer) Run(ctx context.Context) error {
	s.baseCtx = ctx
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "HTTP server listening on %s", s.opts.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info(context.Background(), "Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *implServer) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug(r.Context(), "%s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}
