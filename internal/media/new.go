package media

import (
	"time"

	"github.com/nguyentantai21042004/docsquad/internal/logger"
)

// Options tunes the upload-and-poll loop.
type Options struct {
	PollInterval time.Duration
	Timeout      time.Duration
	// Prober is optional; when set, a successful ingest carries container metadata.
	Prober Prober
}

type implIngester struct {
	service Service
	opts    Options
	logger  logger.Logger
}

// New creates an Ingester on top of a remote media Service.
func New(svc Service, opts Options, log logger.Logger) Ingester {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 2 * time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Minute
	}
	return &implIngester{
		service: svc,
		opts:    opts,
		logger:  log,
	}
}
