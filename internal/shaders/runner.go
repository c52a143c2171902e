package shaders

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/muesli/termenv"
	"github.com/specialistvlad/spvbuild/internal/compiler"
	"github.com/specialistvlad/spvbuild/internal/ctxlog"
)

// ErrCompileFailed is returned by Run in strict mode when at least one
// entry failed to compile.
var ErrCompileFailed = errors.New("shader compilation failed")

// Config holds everything a Runner needs.
type Config struct {
	Dir    string
	Filter Filter

	// Compiler handles every entry without a more specific backend.
	Compiler compiler.Compiler
	// Backends maps a lower-case file extension (".wgsl") to a compiler.
	Backends map[string]compiler.Compiler

	// Progress receives one "<name> >> <output name>" line per entry.
	Progress io.Writer
	NoColor  bool

	// Strict turns compile failures into a run error.
	Strict bool
}

// Report summarises a Run.
type Report struct {
	Compiled []string
	Skipped  []string
	Failed   []string
}

// Runner compiles the shader directory sequentially.
type Runner struct {
	cfg Config
	out *termenv.Output
}

// NewRunner creates a Runner.
func NewRunner(cfg Config) (*Runner, error) {
	if cfg.Dir == "" {
		return nil, errors.New("shaders directory must not be empty")
	}
	if cfg.Compiler == nil {
		return nil, errors.New("a compiler is required")
	}
	dir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve shaders directory %s: %w", cfg.Dir, err)
	}
	cfg.Dir = dir
	if cfg.Filter.Suffix == "" {
		cfg.Filter.Suffix = DefaultSuffix
	}
	if cfg.Progress == nil {
		cfg.Progress = io.Discard
	}

	var opts []termenv.OutputOption
	if cfg.NoColor {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}

	return &Runner{
		cfg: cfg,
		out: termenv.NewOutput(cfg.Progress, opts...),
	}, nil
}

// Dir returns the shader directory the runner works on.
func (r *Runner) Dir() string { return r.cfg.Dir }

// Filter returns the entry filter in use.
func (r *Runner) Filter() Filter { return r.cfg.Filter }

// Run compiles every eligible entry of the shader directory. A failing entry
// is logged and does not stop the run.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	logger := ctxlog.FromContext(ctx)

	entries, skipped, err := Discover(r.cfg.Dir, r.cfg.Filter)
	if err != nil {
		return nil, err
	}
	logger.Debug("Shader directory listed.", "dir", r.cfg.Dir, "entries", len(entries), "skipped", len(skipped))

	report := &Report{}
	for _, e := range skipped {
		_, reason := r.cfg.Filter.Skip(e.Name, e.IsDir)
		logger.Debug("Skipping entry.", "entry", e.Name, "reason", reason)
		report.Skipped = append(report.Skipped, e.Name)
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("compilation interrupted: %w", err)
		}

		if err := r.CompileEntry(ctx, e); err != nil {
			if ctx.Err() != nil {
				return report, fmt.Errorf("compilation interrupted: %w", ctx.Err())
			}
			logger.Warn("Shader failed to compile.", "entry", e.Name, "error", err)
			report.Failed = append(report.Failed, e.Name)
			continue
		}
		report.Compiled = append(report.Compiled, e.Name)
	}

	if r.cfg.Strict && len(report.Failed) > 0 {
		return report, fmt.Errorf("%w: %s", ErrCompileFailed, strings.Join(report.Failed, ", "))
	}
	return report, nil
}

// CompileEntry prints the progress line for e and compiles it with the
// backend selected by its extension.
func (r *Runner) CompileEntry(ctx context.Context, e Entry) error {
	c := r.backendFor(e.Name)
	ctx = ctxlog.With(ctx, "entry", e.Name, "backend", c.Name())
	ctxlog.FromContext(ctx).Debug("Invoking compiler.", "source", e.Source, "output", e.Output)

	fmt.Fprintf(r.cfg.Progress, "%s >> %s\n",
		r.out.String(e.Name).Foreground(r.out.Color("6")),
		r.out.String(filepath.Base(e.Output)).Bold(),
	)
	return c.Compile(ctx, e.Source, e.Output)
}

// EntryFor builds the entry for a path inside the shader directory. The
// boolean is false when the path is gone or the filter skips it.
func (r *Runner) EntryFor(path string) (Entry, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Entry{}, false, nil
		}
		return Entry{}, false, err
	}
	if filepath.Dir(path) != r.cfg.Dir {
		return Entry{}, false, nil
	}

	name := filepath.Base(path)
	if skip, _ := r.cfg.Filter.Skip(name, info.IsDir()); skip {
		return Entry{}, false, nil
	}
	return newEntry(filepath.Dir(path), name, info.IsDir(), r.cfg.Filter.Suffix), true, nil
}

func (r *Runner) backendFor(name string) compiler.Compiler {
	if c, ok := r.cfg.Backends[strings.ToLower(filepath.Ext(name))]; ok && c != nil {
		return c
	}
	return r.cfg.Compiler
}
