package config

import (
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/JustinLoye/network-agents/internal/types"
)

var envPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load reads configuration from path. Settings missing from the file keep
// their defaults; string values support ${VAR} environment interpolation.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, types.WrapError(types.CONFIG_LOAD_FAILED, "cannot read config file", err)
	}

	interpolated, _ := interpolateEnvVars(v.AllSettings()).(map[string]any)
	if err := v.MergeConfigMap(interpolated); err != nil {
		return nil, types.WrapError(types.CONFIG_PARSE_FAILED, "cannot merge interpolated settings", err)
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, types.WrapError(types.CONFIG_PARSE_FAILED, "cannot unmarshal config", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithDefaults loads configuration from path, falling back to defaults
// when the file does not exist.
func LoadWithDefaults(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		if err := Validate(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return Load(path)
}

// Validate checks the structural constraints declared on the config tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return types.WrapError(types.CONFIG_VALIDATION_FAILED, "invalid configuration", err)
	}
	return nil
}

// interpolateEnvVars recursively replaces ${VAR} references in string
// settings with their environment values. Unset variables are left as-is.
func interpolateEnvVars(data any) any {
	switch v := data.(type) {
	case map[string]any:
		result := make(map[string]any, len(v))
		for key, value := range v {
			result[key] = interpolateEnvVars(value)
		}
		return result
	case []any:
		result := make([]any, len(v))
		for i, value := range v {
			result[i] = interpolateEnvVars(value)
		}
		return result
	case string:
		return interpolateString(v)
	default:
		return v
	}
}

func interpolateString(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if value := os.Getenv(name); value != "" {
			return value
		}
		return match
	})
}
