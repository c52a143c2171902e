package app

import (
	"io"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/specialistvlad/spvbuild/internal/compiler"
	"github.com/specialistvlad/spvbuild/internal/project"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	loader   *project.Loader
	platform compiler.Platform

	httpServer *http.Server
}

// NewApp is the constructor for the main application. Logs, progress lines
// and the compiler's own output all go to outW.
func NewApp(outW io.Writer, cfg *Config, loader *project.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	if loader == nil {
		loader = project.NewLoader()
	}

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		loader:   loader,
		platform: compiler.PlatformFromGOOS(runtime.GOOS),
	}
}
