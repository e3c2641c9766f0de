package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"termdeposit/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Artifacts ArtifactConfig
	Inference InferenceConfig
	Log       LogConfig
	Profiling ProfilingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string `env:"PORT" envDefault:"8080"`
	GinMode string `env:"GIN_MODE" envDefault:"release"`
}

// ArtifactConfig locates the fitted preprocessor, model and column list.
type ArtifactConfig struct {
	Dir              string `env:"ARTIFACT_DIR" envDefault:"./artifacts"`
	PreprocessorFile string `env:"PREPROCESSOR_FILE" envDefault:"preprocessor.json"`
	ModelFile        string `env:"MODEL_FILE" envDefault:"model.json"`
	ColumnsFile      string `env:"COLUMNS_FILE" envDefault:"feature_columns.json"`
}

type InferenceConfig struct {
	Threshold        float64 `env:"DECISION_THRESHOLD" envDefault:"0.5"`
	TopContributions int     `env:"TOP_CONTRIBUTIONS" envDefault:"5"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"INFO"`
	Format string `env:"LOG_FORMAT" envDefault:"console"`
	File   string `env:"LOG_FILE"`
}

// ProfilingConfig holds the pprof listener settings. Off unless asked for.
type ProfilingConfig struct {
	Enabled bool   `env:"PPROF_ENABLED" envDefault:"false"`
	Port    string `env:"PPROF_PORT" envDefault:"6060"`
}

// Addr is the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	if strings.HasPrefix(s.Port, ":") {
		return s.Port
	}
	return ":" + s.Port
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	return LoadFrom(nil)
}

// LoadFrom is Load with an explicit environment; a nil map reads the process environment.
func LoadFrom(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, errors.Wrap(err, "failed to parse environment"))
	}

	if err := validateConfig(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func validateConfig(config *Config) error {
	if strings.TrimSpace(config.Server.Port) == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid(fmt.Sprintf("GIN_MODE must be debug, release or test, got %q", config.Server.GinMode))
	}
	if config.Artifacts.Dir == "" {
		return errors.ConfigInvalid("ARTIFACT_DIR is required")
	}
	if config.Artifacts.PreprocessorFile == "" || config.Artifacts.ModelFile == "" || config.Artifacts.ColumnsFile == "" {
		return errors.ConfigInvalid("artifact file names must not be empty")
	}
	if t := config.Inference.Threshold; !(t > 0 && t < 1) {
		return errors.ConfigInvalid(fmt.Sprintf("DECISION_THRESHOLD must be in (0,1), got %v", t))
	}
	if config.Inference.TopContributions < 0 {
		return errors.ConfigInvalid("TOP_CONTRIBUTIONS must not be negative")
	}
	if config.Profiling.Enabled {
		if strings.TrimSpace(config.Profiling.Port) == "" {
			return errors.ConfigInvalid("PPROF_PORT is required when PPROF_ENABLED is set")
		}
		if strings.TrimPrefix(config.Profiling.Port, ":") == strings.TrimPrefix(config.Server.Port, ":") {
			return errors.ConfigInvalid("PPROF_PORT must differ from PORT")
		}
	}
	switch strings.ToLower(config.Log.Format) {
	case "console", "json":
	default:
		return errors.ConfigInvalid(fmt.Sprintf("LOG_FORMAT must be console or json, got %q", config.Log.Format))
	}
	return nil
}
