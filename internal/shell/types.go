package shell

import (
	"errors"
	"io"

	"github.com/nguyentantai21042004/docsquad/internal/pipeline"
)

var ErrUnsupportedType = errors.New("unsupported file type")

// Upload is a file received from a user.
type Upload struct {
	// Name is the original file name; only its extension is kept.
	Name    string
	Body    io.Reader
	Context string
	Sink    pipeline.Sink
}

// RunError hides the pipeline failure behind a generic message while keeping
// the cause available to errors.Is and errors.As.
type RunError struct {
	Path string
	Err  error
}

func (e *RunError) Error() string {
	return "an error occurred while processing the file"
}

func (e *RunError) Unwrap() error {
	return e.Err
}
