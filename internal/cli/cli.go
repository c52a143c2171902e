package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/spvbuild/internal/app"
	"github.com/specialistvlad/spvbuild/internal/workspace"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("spvbuild", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
spvbuild - Compiles every shader of a project to SPIR-V.

Usage:
  spvbuild [options] [ROOT]

Arguments:
  ROOT
    Project root holding the shaders and bin directories. Defaults to the
    current directory. A path ending in the tools directory means its parent.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to the project file. Defaults to ROOT/spvbuild.hcl when present.")
	shadersDirFlag := flagSet.String("shaders-dir", "", "Shader sources directory, relative to ROOT. (default \""+workspace.DefaultShadersDir+"\")")
	toolsDirFlag := flagSet.String("tools-dir", workspace.DefaultToolsDir, "Name of the directory the tool lives in.")
	suffixFlag := flagSet.String("suffix", "", "Suffix appended to a source name to form its output name. (default \".spv\")")
	compilerFlag := flagSet.String("compiler", "", "Path to the compiler executable, overriding the platform default.")
	compilerArgsFlag := flagSet.String("compiler-args", "", "Extra shell-quoted arguments passed to the compiler before the source.")
	allEntriesFlag := flagSet.Bool("all-entries", false, "Compile every directory entry, including subdirectories and compiled outputs.")
	strictFlag := flagSet.Bool("strict", false, "Exit with an error when any shader fails to compile.")
	cleanFlag := flagSet.Bool("clean", false, "Remove compiled outputs from the shaders directory and exit.")
	watchFlag := flagSet.Bool("watch", false, "Keep running and recompile shaders when they change.")
	wgslNagaFlag := flagSet.Bool("wgsl-naga", false, "Compile .wgsl sources with the built-in compiler.")
	noColorFlag := flagSet.Bool("no-color", false, "Disable colored progress output.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server in watch mode. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected at most one ROOT argument, got %d", flagSet.NArg())}
	}
	root := flagSet.Arg(0)
	slog.Debug("Root argument determined.", "root", root)

	config, err := app.NewConfig(app.Config{
		RootPath:        root,
		ConfigPath:      *configFlag,
		ToolsDir:        *toolsDirFlag,
		ShadersDir:      *shadersDirFlag,
		Suffix:          *suffixFlag,
		CompilerPath:    *compilerFlag,
		CompilerArgs:    *compilerArgsFlag,
		AllEntries:      *allEntriesFlag,
		Strict:          *strictFlag,
		WGSLNaga:        *wgslNagaFlag,
		Clean:           *cleanFlag,
		Watch:           *watchFlag,
		NoColor:         *noColorFlag,
		LogFormat:       *logFormatFlag,
		LogLevel:        *logLevelFlag,
		HealthcheckPort: *healthPortFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
