package pipeline

import (
	"errors"

	"github.com/nguyentantai21042004/docsquad/internal/agent"
	"github.com/nguyentantai21042004/docsquad/internal/config"
	"github.com/nguyentantai21042004/docsquad/internal/logger"
	"github.com/nguyentantai21042004/docsquad/internal/media"
)

// Options wires the three agent roles to their backends.
type Options struct {
	Ingestor        agent.Spec
	Analyst         agent.Spec
	Writer          agent.Spec
	Providers       agent.Providers
	Ingester        media.Ingester
	OnIngestFailure Policy
}

type implPipeline struct {
	opts   Options
	logger logger.Logger
}

// New creates a Pipeline. Agents are built again for every run.
func New(opts Options, log logger.Logger) (Pipeline, error) {
	if opts.Ingester == nil {
		return nil, errors.New("ingester is required")
	}
	if len(opts.Providers) == 0 {
		return nil, errors.New("at least one model provider is required")
	}
	switch opts.OnIngestFailure {
	case "":
		opts.OnIngestFailure = PolicyContinue
	case PolicyContinue, PolicyHalt:
	default:
		return nil, errors.New("unknown ingestion failure policy " + string(opts.OnIngestFailure))
	}

	return &implPipeline{
		opts:   opts,
		logger: log,
	}, nil
}

// SpecFromConfig converts one agent role from configuration.
func SpecFromConfig(c config.AgentConfig) agent.Spec {
	return agent.Spec{
		Name:          c.Name,
		Description:   c.Description,
		Provider:      c.Provider,
		Model:         c.Model,
		Instruction:   c.Instruction,
		MaxToolRounds: c.MaxToolRounds,
	}
}

// OptionsFromConfig builds Options from a validated configuration.
func OptionsFromConfig(cfg *config.Config, providers agent.Providers, ingester media.Ingester) Options {
	return Options{
		Ingestor:        SpecFromConfig(cfg.Agents.Ingestor),
		Analyst:         SpecFromConfig(cfg.Agents.Analyst),
		Writer:          SpecFromConfig(cfg.Agents.Writer),
		Providers:       providers,
		Ingester:        ingester,
		OnIngestFailure: Policy(cfg.Ingest.OnFailure),
	}
}
