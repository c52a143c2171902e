package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/spvbuild/internal/workspace"
)

// Config holds all the necessary configuration for an App instance to run.
// Empty string and false values leave the project file setting in place.
type Config struct {
	RootPath   string // positional argument, empty means the working directory
	ConfigPath string // explicit project file
	ToolsDir   string

	ShadersDir   string
	Suffix       string
	CompilerPath string
	CompilerArgs string
	AllEntries   bool
	Strict       bool
	WGSLNaga     bool

	Clean   bool
	Watch   bool
	NoColor bool

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ToolsDir == "" {
		cfg.ToolsDir = workspace.DefaultToolsDir
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, errors.New("invalid log-format: must be 'text' or 'json'")
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	if cfg.Suffix != "" && !strings.HasPrefix(cfg.Suffix, ".") {
		return nil, fmt.Errorf("invalid suffix %q: must start with '.'", cfg.Suffix)
	}
	if cfg.Clean && cfg.Watch {
		return nil, errors.New("clean and watch cannot be combined")
	}
	if cfg.HealthcheckPort < 0 {
		return nil, errors.New("healthcheck-port must not be negative")
	}
	if cfg.HealthcheckPort > 0 && !cfg.Watch {
		return nil, errors.New("healthcheck-port requires watch mode")
	}

	return &cfg, nil
}
