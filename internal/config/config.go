package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrMissingCredential is returned when no API key is configured for a provider in use.
var ErrMissingCredential = errors.New("missing API credential")

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	OnFailureContinue = "continue"
	OnFailureHalt     = "halt"
)

type Config struct {
	Gemini  GeminiConfig  `yaml:"gemini"`
	OpenAI  OpenAIConfig  `yaml:"openai"`
	Agents  AgentsConfig  `yaml:"agents"`
	Ingest  IngestConfig  `yaml:"ingest"`
	Paths   PathsConfig   `yaml:"paths"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type AgentsConfig struct {
	Ingestor AgentConfig `yaml:"ingestor"`
	Analyst  AgentConfig `yaml:"analyst"`
	Writer   AgentConfig `yaml:"writer"`
}

// AgentConfig is the data that defines one agent role. Instruction wins over
// InstructionFile when both are set.
type AgentConfig struct {
	Name            string `yaml:"name"`
	Description     string `yaml:"description"`
	Provider        string `yaml:"provider"`
	Model           string `yaml:"model"`
	Instruction     string `yaml:"instruction"`
	InstructionFile string `yaml:"instruction_file"`
	MaxToolRounds   int    `yaml:"max_tool_rounds"`
}

type IngestConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	Timeout      time.Duration `yaml:"timeout"`
	OnFailure    string        `yaml:"on_failure"`
	Probe        bool          `yaml:"probe"`
	FFprobePath  string        `yaml:"ffprobe_path"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
	Temp     string `yaml:"temp"`
}

type ServerConfig struct {
	Addr        string `yaml:"addr"`
	MaxUploadMB int64  `yaml:"max_upload_mb"`
	MaxQueued   int    `yaml:"max_queued"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

func (c *Config) Validate() error {
	if c.Ingest.PollInterval < 0 {
		return fmt.Errorf("ingest.poll_interval must not be negative")
	}
	if c.Ingest.Timeout < 0 {
		return fmt.Errorf("ingest.timeout must not be negative")
	}
	if c.Server.MaxUploadMB < 0 {
		return fmt.Errorf("server.max_upload_mb must not be negative")
	}
	if c.Server.MaxQueued < 0 {
		return fmt.Errorf("server.max_queued must not be negative")
	}

	switch c.Ingest.OnFailure {
	case "":
		c.Ingest.OnFailure = OnFailureContinue
	case OnFailureContinue, OnFailureHalt:
	default:
		return fmt.Errorf("ingest.on_failure must be %q or %q, got %q", OnFailureContinue, OnFailureHalt, c.Ingest.OnFailure)
	}

	roles := []struct {
		key      string
		agent    *AgentConfig
		defaults AgentConfig
	}{
		{"ingestor", &c.Agents.Ingestor, defaultIngestor},
		{"analyst", &c.Agents.Analyst, defaultAnalyst},
		{"writer", &c.Agents.Writer, defaultWriter},
	}
	for _, r := range roles {
		if err := r.agent.applyDefaults(r.defaults); err != nil {
			return fmt.Errorf("agents.%s: %w", r.key, err)
		}
	}
	if c.Agents.Ingestor.Provider != ProviderGemini {
		return fmt.Errorf("agents.ingestor.provider must be %q: only it supports tools and file uploads", ProviderGemini)
	}

	if c.Ingest.PollInterval == 0 {
		c.Ingest.PollInterval = 2 * time.Second
	}
	if c.Ingest.Timeout == 0 {
		c.Ingest.Timeout = 10 * time.Minute
	}
	if c.Ingest.FFprobePath == "" {
		c.Ingest.FFprobePath = "ffprobe"
	}
	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.MaxUploadMB == 0 {
		c.Server.MaxUploadMB = 512
	}
	if c.Server.MaxQueued == 0 {
		c.Server.MaxQueued = 4
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	return nil
}

func (a *AgentConfig) applyDefaults(d AgentConfig) error {
	if a.Name == "" {
		a.Name = d.Name
	}
	if a.Description == "" {
		a.Description = d.Description
	}
	if a.Provider == "" {
		a.Provider = d.Provider
	}
	if a.Model == "" {
		a.Model = d.Model
	}
	if a.Instruction == "" && a.InstructionFile == "" {
		a.Instruction = d.Instruction
	}
	if a.MaxToolRounds == 0 {
		a.MaxToolRounds = 4
	}

	switch a.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("unsupported provider %q", a.Provider)
	}
	if a.MaxToolRounds < 0 {
		return fmt.Errorf("max_tool_rounds must not be negative")
	}
	return nil
}

// AgentList returns the agent configs in pipeline order.
func (c *Config) AgentList() []AgentConfig {
	return []AgentConfig{c.Agents.Ingestor, c.Agents.Analyst, c.Agents.Writer}
}

// CheckCredentials reports ErrMissingCredential when a provider used by any
// agent has no API key.
func (c *Config) CheckCredentials() error {
	for _, a := range c.AgentList() {
		switch {
		case a.Provider == ProviderGemini && c.Gemini.APIKey == "":
			return fmt.Errorf("%w: set gemini.api_key or GOOGLE_API_KEY (needed by %s)", ErrMissingCredential, a.Name)
		case a.Provider == ProviderOpenAI && c.OpenAI.APIKey == "":
			return fmt.Errorf("%w: set openai.api_key or OPENAI_API_KEY (needed by %s)", ErrMissingCredential, a.Name)
		}
	}
	return nil
}
