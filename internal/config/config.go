// Package config loads and validates the application configuration from a
// YAML file, with ${VAR} environment interpolation and sane defaults for
// every section.
package config

import (
	"github.com/JustinLoye/network-agents/internal/iyp"
	"github.com/JustinLoye/network-agents/internal/llm"
)

// Config is the root application configuration.
type Config struct {
	LLM      llm.ProviderConfig `mapstructure:"llm" yaml:"llm"`
	IYP      iyp.Config         `mapstructure:"iyp" yaml:"iyp"`
	Pipeline PipelineConfig     `mapstructure:"pipeline" yaml:"pipeline"`
	Agent    AgentConfig        `mapstructure:"agent" yaml:"agent"`
	Logging  LoggingConfig      `mapstructure:"logging" yaml:"logging"`
}

// PipelineConfig tunes the retrieval pipeline.
type PipelineConfig struct {
	// SchemaPath and ExamplesPath override the embedded graph schema and
	// example bank when set.
	SchemaPath   string `mapstructure:"schema_path" yaml:"schema_path,omitempty"`
	ExamplesPath string `mapstructure:"examples_path" yaml:"examples_path,omitempty"`
	TopK         int    `mapstructure:"top_k" yaml:"top_k" validate:"gte=1"`
}

// AgentConfig tunes the conversational agents.
type AgentConfig struct {
	MaxSteps int `mapstructure:"max_steps" yaml:"max_steps" validate:"gte=1"`
}

// LoggingConfig controls slog output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=text json"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		LLM:      llm.DefaultProviderConfig(),
		IYP:      iyp.DefaultConfig(),
		Pipeline: PipelineConfig{TopK: 5},
		Agent:    AgentConfig{MaxSteps: 10},
		Logging:  LoggingConfig{Level: "info", Format: "text"},
	}
}
