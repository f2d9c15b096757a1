package pipeline

import (
	"errors"
	"time"

	"github.com/nguyentantai21042004/docsquad/internal/media"
)

// ErrNotIngested is returned under PolicyHalt when the Ingestor answered
// without ever running its ingestion tool.
var ErrNotIngested = errors.New("ingestor did not ingest the file")

// Policy decides what happens after a failed ingestion.
type Policy string

const (
	// PolicyContinue feeds the Ingestor's answer to the Analyst even when
	// ingestion failed.
	PolicyContinue Policy = "continue"
	// PolicyHalt stops the run with the ingestion error.
	PolicyHalt Policy = "halt"
)

// Request is the input of one pipeline run.
type Request struct {
	FilePath string
	Context  string
	Sink     Sink
}

// Run is the transient state of one invocation.
type Run struct {
	ID        string
	FilePath  string
	Context   string
	Ingestion string
	Analysis  string
	Document  string
	Asset     *media.Asset
	IngestErr error
	Started   time.Time
	Finished  time.Time
}

type Stage string

const (
	StageStart   Stage = "start"
	StageIngest  Stage = "ingest"
	StageAnalyze Stage = "analyze"
	StageWrite   Stage = "write"
)

// Event is a short progress message tagged with the stage that emitted it.
type Event struct {
	RunID   string    `json:"run_id"`
	Seq     int       `json:"seq"`
	Stage   Stage     `json:"stage"`
	Agent   string    `json:"agent,omitempty"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}
