package shell

import (
	"github.com/nguyentantai21042004/docsquad/internal/logger"
	"github.com/nguyentantai21042004/docsquad/internal/pipeline"
)

type Options struct {
	// TempDir holds uploads while they are processed. Empty means os.TempDir.
	TempDir string
	// CheckCredentials runs before every pipeline call; nil skips the check.
	CheckCredentials func() error
}

type implShell struct {
	pipe   pipeline.Pipeline
	opts   Options
	logger logger.Logger
}

func New(pipe pipeline.Pipeline, opts Options, log logger.Logger) Shell {
	return &implShell{
		pipe:   pipe,
		opts:   opts,
		logger: log,
	}
}
