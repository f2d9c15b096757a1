package media

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/nguyentantai21042004/docsquad/pkg/executor"
)

type ffprobe struct {
	exec   executor.Executor
	binary string
}

// NewFFprobe returns a Prober backed by the ffprobe binary.
func NewFFprobe(exec executor.Executor, binary string) Prober {
	if binary == "" {
		binary = "ffprobe"
	}
	return &ffprobe{exec: exec, binary: binary}
}

type ffprobeOutput struct {
	Streams []json.RawMessage `json:"streams"`
	Format  struct {
		FormatName string `json:"format_name"`
		Duration   string `json:"duration"`
		Size       string `json:"size"`
	} `json:"format"`
}

func (p *ffprobe) Probe(ctx context.Context, path string) (*Probe, error) {
	// -v error: only print real errors
	// -show_format -show_streams: container and stream sections
	// -of json: machine readable output
	out, err := p.exec.Execute(ctx, p.binary,
		"-v", "error",
		"-show_format",
		"-show_streams",
		"-of", "json",
		path,
	)
	if err != nil {
		return nil, fmt.Errorf("ffprobe: %w", err)
	}
	return parseProbe([]byte(out))
}

func parseProbe(data []byte) (*Probe, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}

	probe := &Probe{
		FormatName: raw.Format.FormatName,
		Streams:    len(raw.Streams),
	}
	if raw.Format.Duration != "" {
		if d, err := strconv.ParseFloat(raw.Format.Duration, 64); err == nil {
			probe.Duration = d
		}
	}
	if raw.Format.Size != "" {
		if s, err := strconv.ParseInt(raw.Format.Size, 10, 64); err == nil {
			probe.Size = s
		}
	}
	return probe, nil
}
