package cli

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/docsquad/internal/agent"
	"github.com/nguyentantai21042004/docsquad/internal/config"
	"github.com/nguyentantai21042004/docsquad/internal/logger"
	"github.com/nguyentantai21042004/docsquad/internal/media"
	"github.com/nguyentantai21042004/docsquad/internal/pipeline"
	"github.com/nguyentantai21042004/docsquad/internal/shell"
	"github.com/nguyentantai21042004/docsquad/pkg/executor"
)

// buildShell wires the remote clients, the pipeline and the shell from cfg.
// Credentials are checked first so no client is built without one.
func buildShell(ctx context.Context, cfg *config.Config, log logger.Logger) (shell.Shell, error) {
	if err := cfg.CheckCredentials(); err != nil {
		return nil, err
	}

	// One client serves both the Files API and the Gemini agents.
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	providers := agent.Providers{
		config.ProviderGemini: agent.NewGeminiModelFromClient(client),
	}
	if cfg.OpenAI.APIKey != "" {
		model, err := agent.NewOpenAIModel(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("create openai client: %w", err)
		}
		providers[config.ProviderOpenAI] = model
	}

	opts := media.Options{
		PollInterval: cfg.Ingest.PollInterval,
		Timeout:      cfg.Ingest.Timeout,
	}
	if cfg.Ingest.Probe {
		exec := executor.New()
		if exec.Available(cfg.Ingest.FFprobePath) {
			opts.Prober = media.NewFFprobe(exec, cfg.Ingest.FFprobePath)
		} else {
			log.Warn(ctx, "ingest.probe is on but %s was not found in PATH; skipping probe", cfg.Ingest.FFprobePath)
		}
	}
	ingester := media.New(media.NewGeminiServiceFromClient(client), opts, log)

	pipe, err := pipeline.New(pipeline.OptionsFromConfig(cfg, providers, ingester), log)
	if err != nil {
		return nil, fmt.Errorf("create pipeline: %w", err)
	}

	return shell.New(pipe, shell.Options{
		TempDir:          cfg.Paths.Temp,
		CheckCredentials: cfg.CheckCredentials,
	}, log), nil
}

// ensureDirectories creates the working directories if they don't exist.
func ensureDirectories(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
