package server

import (
	"context"
	"net/http"
)

// Server exposes the pipeline over HTTP: an upload form, a JSON API, a
// websocket status stream and document downloads.
type Server interface {
	Handler() http.Handler
	// Run listens until ctx is cancelled, then shuts down gracefully.
	Run(ctx context.Context) error
}
