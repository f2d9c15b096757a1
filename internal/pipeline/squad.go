package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/docsquad/internal/agent"
	"github.com/nguyentantai21042004/docsquad/internal/media"
)

const ingestToolName = "ingest_media"

// squad is the set of agents for a single run.
type squad struct {
	ingestor agent.Agent
	analyst  agent.Agent
	writer   agent.Agent
	tool     *ingestTool
}

func (p *implPipeline) newSquad() (*squad, error) {
	tool := &ingestTool{ingester: p.opts.Ingester}

	build := func(spec agent.Spec, tools ...agent.Tool) (agent.Agent, error) {
		model, err := p.opts.Providers.Get(spec.Provider)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec.Name, err)
		}
		return agent.New(spec, model, p.logger, tools...)
	}

	ingestor, err := build(p.opts.Ingestor, tool)
	if err != nil {
		return nil, err
	}
	analyst, err := build(p.opts.Analyst)
	if err != nil {
		return nil, err
	}
	writer, err := build(p.opts.Writer)
	if err != nil {
		return nil, err
	}

	return &squad{ingestor: ingestor, analyst: analyst, writer: writer, tool: tool}, nil
}

// ingestTool exposes the ingestion step to the Ingestor model and keeps the
// typed outcome of the last call for the orchestrator.
type ingestTool struct {
	ingester media.Ingester
	called   bool
	asset    *media.Asset
	err      error
}

func (t *ingestTool) Declaration() agent.ToolDecl {
	return agent.ToolDecl{
		Name:        ingestToolName,
		Description: "Uploads a local media file to the analysis service and waits until it is ready. Returns the file URI or an error.",
		Params: []agent.Param{
			{Name: "file_path", Type: "string", Description: "Path of the local file to upload.", Required: true},
		},
	}
}

func (t *ingestTool) Call(ctx context.Context, args map[string]any) (map[string]any, error) {
	t.called = true

	path, _ := args["file_path"].(string)
	if path == "" {
		t.asset, t.err = nil, errors.New("file_path argument is required")
		return nil, t.err
	}

	t.asset, t.err = t.ingester.Ingest(ctx, path)
	if t.err != nil {
		return nil, t.err
	}

	out := map[string]any{
		"uri":       t.asset.URI,
		"name":      t.asset.RemoteName,
		"mime_type": t.asset.MIMEType,
	}
	if pr := t.asset.Probe; pr != nil {
		out["format"] = pr.FormatName
		out["duration_seconds"] = pr.Duration
	}
	return out, nil
}
