package media

import (
	"errors"
	"fmt"
)

// State is the processing state reported by the remote service.
type State string

const (
	StateProcessing State = "PROCESSING"
	StateActive     State = "ACTIVE"
	StateFailed     State = "FAILED"
	StateUnknown    State = "STATE_UNSPECIFIED"
)

// RemoteFile is the service's view of an uploaded file.
type RemoteFile struct {
	Name     string
	URI      string
	MIMEType string
	State    State
	Error    string
}

// Asset is a local media file together with its remote identity once ingested.
type Asset struct {
	LocalPath  string `json:"local_path"`
	RemoteName string `json:"remote_name"`
	URI        string `json:"uri"`
	MIMEType   string `json:"mime_type"`
	Probe      *Probe `json:"probe,omitempty"`
}

// Probe is a small subset of ffprobe's format section.
type Probe struct {
	FormatName string  `json:"format_name"`
	Duration   float64 `json:"duration_seconds"`
	Size       int64   `json:"size_bytes"`
	Streams    int     `json:"streams"`
}

var (
	ErrFileNotFound     = errors.New("file does not exist on local storage")
	ErrProcessingFailed = errors.New("remote processing failed")
	ErrTimeout          = errors.New("timed out waiting for remote processing")
)

// Kind classifies ingestion failures.
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindProcessingFailed Kind = "processing_failed"
	KindTransport        Kind = "transport"
	KindTimeout          Kind = "timeout"
)

// IngestError is the typed failure of the ingestion step.
type IngestError struct {
	Path string
	Kind Kind
	Err  error
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("ingest %s (%s): %v", e.Path, e.Kind, e.Err)
}

func (e *IngestError) Unwrap() error {
	return e.Err
}
