package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/docsquad/internal/agent"
	"github.com/nguyentantai21042004/docsquad/internal/logger"
)

// Run executes the three stages in order. Each stage emits exactly one event
// once it completes; any error stops the run and no later stage executes.
func (p *implPipeline) Run(ctx context.Context, req Request) (*Run, error) {
	run := &Run{
		ID:       uuid.NewString(),
		FilePath: req.FilePath,
		Context:  req.Context,
		Started:  time.Now(),
	}

	sq, err := p.newSquad()
	if err != nil {
		return nil, fmt.Errorf("build agents: %w", err)
	}

	n := &notifier{runID: run.ID, sink: req.Sink, logger: p.logger}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Run %s: %s", run.ID, run.FilePath)
	p.logger.Info(ctx, "========================================")
	n.emit(ctx, StageStart, "", fmt.Sprintf("pipeline started for %s", filepath.Base(req.FilePath)))

	// Step 1: Ingest
	ingested, err := sq.ingestor.Query(ctx, agent.Prompt{Text: ingestPrompt(req.FilePath)})
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	run.Ingestion = ingested.Text
	run.Asset = sq.tool.asset
	run.IngestErr = sq.tool.err
	if err := p.checkIngestion(ctx, sq.tool); err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	n.emit(ctx, StageIngest, sq.ingestor.Name(), "ingestion complete")

	// Step 2: Analyze
	prompt := agent.Prompt{Text: analysisPrompt(run.Ingestion, run.Context)}
	if run.Asset != nil && run.Asset.URI != "" {
		prompt.Media = []agent.MediaRef{{URI: run.Asset.URI, MIMEType: run.Asset.MIMEType}}
	}
	analysis, err := sq.analyst.Query(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	run.Analysis = analysis.Text
	n.emit(ctx, StageAnalyze, sq.analyst.Name(), "analysis complete")

	// Step 3: Write
	doc, err := sq.writer.Query(ctx, agent.Prompt{Text: writerPrompt(run.Analysis)})
	if err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}
	run.Document = doc.Text
	n.emit(ctx, StageWrite, sq.writer.Name(), "writing complete")

	run.Finished = time.Now()
	p.logger.Info(ctx, "Run %s finished in %s", run.ID, run.Finished.Sub(run.Started))
	return run, nil
}

// checkIngestion applies the ingestion failure policy.
func (p *implPipeline) checkIngestion(ctx context.Context, tool *ingestTool) error {
	switch {
	case tool.err != nil && p.opts.OnIngestFailure == PolicyHalt:
		return tool.err
	case tool.err != nil:
		p.logger.Warn(ctx, "Ingestion failed, continuing with the ingestor's answer: %v", tool.err)
	case !tool.called && p.opts.OnIngestFailure == PolicyHalt:
		return ErrNotIngested
	case !tool.called:
		p.logger.Warn(ctx, "Ingestor answered without running %s", ingestToolName)
	}
	return nil
}

func ingestPrompt(path string) string {
	return fmt.Sprintf("Upload and process the file: %s", path)
}

func analysisPrompt(ingestion, userContext string) string {
	return fmt.Sprintf("Here is the ingestion result: %s. Extra context: %s. Analyze the technical facts.", ingestion, userContext)
}

func writerPrompt(analysis string) string {
	return fmt.Sprintf("Here are the extracted technical facts:\n%s\n. Generate the final document.", analysis)
}

// notifier numbers events and delivers them to the sink, or to the log when
// no sink is set.
type notifier struct {
	runID  string
	seq    int
	sink   Sink
	logger logger.Logger
}

func (n *notifier) emit(ctx context.Context, stage Stage, agentName, msg string) {
	n.seq++
	if agentName != "" {
		msg = agentName + ": " + msg
	}
	ev := Event{
		RunID:   n.runID,
		Seq:     n.seq,
		Stage:   stage,
		Agent:   agentName,
		Message: msg,
		Time:    time.Now(),
	}
	if n.sink == nil {
		n.logger.Info(ctx, "[%s] %s", stage, msg)
		return
	}
	n.sink.Report(ctx, ev)
}
