package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at path, overlays environment variables, validates
// the result and resolves instruction files.
func Load(path string) (*Config, error) {
	return load(path, false)
}

// LoadOrDefault is Load but falls back to defaults when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	return load(path, true)
}

func load(path string, allowMissing bool) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case allowMissing && errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if err := cfg.resolveInstructions(filepath.Dir(path)); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" && c.Gemini.APIKey == "" {
		c.Gemini.APIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" && c.OpenAI.APIKey == "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv("DOCSQUAD_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
}

// resolveInstructions loads instruction_file for agents that have no inline
// instruction. Relative paths are resolved against baseDir.
func (c *Config) resolveInstructions(baseDir string) error {
	for _, a := range []*AgentConfig{&c.Agents.Ingestor, &c.Agents.Analyst, &c.Agents.Writer} {
		if a.Instruction != "" || a.InstructionFile == "" {
			continue
		}

		p := a.InstructionFile
		if !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read instruction file for %s: %w", a.Name, err)
		}
		a.Instruction = strings.TrimSpace(string(data))
		if a.Instruction == "" {
			return fmt.Errorf("instruction file %s for %s is empty", p, a.Name)
		}
	}
	return nil
}
