package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustinLoye/network-agents/internal/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
llm:
  provider: ollama
  model: llama3.1:8b
iyp:
  timeout: 5m
pipeline:
  top_k: 3
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "llama3.1:8b", cfg.LLM.DefaultModel)
	assert.Equal(t, 5*time.Minute, cfg.IYP.Timeout)
	assert.Equal(t, 3, cfg.Pipeline.TopK)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Untouched sections keep their defaults
	assert.Equal(t, "https://iyp.iijlab.net/iyp/db/neo4j/query/v2", cfg.IYP.BaseURL)
	assert.Equal(t, 10, cfg.Agent.MaxSteps)
}

func TestLoadInterpolatesEnv(t *testing.T) {
	t.Setenv("NETAGENT_API_KEY", "secret-key")
	t.Setenv("NETAGENT_MODEL", "qwen3:14b")

	path := writeConfig(t, `
llm:
  provider: openai
  api_key: ${NETAGENT_API_KEY}
  model: ${NETAGENT_MODEL}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "secret-key", cfg.LLM.APIKey)
	assert.Equal(t, "qwen3:14b", cfg.LLM.DefaultModel)
}

func TestLoadUnsetEnvLeftVerbatim(t *testing.T) {
	path := writeConfig(t, `
llm:
  api_key: ${DEFINITELY_NOT_SET_12345}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "${DEFINITELY_NOT_SET_12345}", cfg.LLM.APIKey)
}

func TestLoadValidationFailure(t *testing.T) {
	path := writeConfig(t, `
llm:
  provider: not-a-provider
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, types.CONFIG_VALIDATION_FAILED, types.CodeOf(err))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, types.CONFIG_LOAD_FAILED, types.CodeOf(err))
}

func TestLoadWithDefaultsMissingFile(t *testing.T) {
	cfg, err := LoadWithDefaults(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
