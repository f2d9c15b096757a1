package shell

import (
	"context"

	"github.com/nguyentantai21042004/docsquad/internal/pipeline"
)

// Shell is the boundary between a user-facing surface and the pipeline. It
// owns temporary copies of uploads and gates runs on credentials.
type Shell interface {
	// Process stores the upload in a temporary file, runs the pipeline on it
	// and always removes the file afterwards.
	Process(ctx context.Context, up Upload) (*pipeline.Run, error)
	// ProcessPath runs the pipeline on a file the caller owns.
	ProcessPath(ctx context.Context, path, userContext string, sink pipeline.Sink) (*pipeline.Run, error)
}
