package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/spvbuild/internal/compiler"
	"github.com/specialistvlad/spvbuild/internal/ctxlog"
	"github.com/specialistvlad/spvbuild/internal/project"
	"github.com/specialistvlad/spvbuild/internal/shaders"
	"github.com/specialistvlad/spvbuild/internal/watch"
	"github.com/specialistvlad/spvbuild/internal/workspace"
)

// Run executes one build: it resolves the project root, finds the shader
// directory and the compiler, then compiles every eligible entry. In watch
// mode it keeps recompiling changed sources until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	root, err := workspace.ResolveRoot(a.config.RootPath, a.config.ToolsDir)
	if err != nil {
		return err
	}
	a.logger.Info("Root path resolved.", "root", root)

	settings, err := a.loader.Load(ctx, root, a.config.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load project file: %w", err)
	}
	a.applyOverrides(settings)

	shadersDir, err := workspace.LocateShaders(root, settings.ShadersDir)
	if err != nil {
		return err
	}
	a.logger.Info("Shaders dir located.", "dir", shadersDir)

	if a.config.Clean {
		removed, err := shaders.Clean(ctx, shadersDir, settings.Suffix)
		if err != nil {
			return err
		}
		a.logger.Info("🧹 Compiled outputs removed.", "count", len(removed))
		return nil
	}

	runner, err := a.newRunner(ctx, root, shadersDir, settings)
	if err != nil {
		return err
	}

	a.logger.Info("🚀 Compiling shaders...")
	report, err := runner.Run(ctx)
	if report != nil {
		a.logger.Info("🏁 Shader compilation finished.",
			"compiled", len(report.Compiled),
			"skipped", len(report.Skipped),
			"failed", len(report.Failed),
		)
	}
	if err != nil {
		return err
	}

	if a.config.Watch {
		if err := a.watch(ctx, runner); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// applyOverrides lays the command-line values over the project settings.
func (a *App) applyOverrides(s *project.Settings) {
	if a.config.ShadersDir != "" {
		s.ShadersDir = a.config.ShadersDir
	}
	if a.config.Suffix != "" {
		s.Suffix = a.config.Suffix
	}
	if a.config.CompilerArgs != "" {
		s.CompilerArgs = a.config.CompilerArgs
	}
	if a.config.AllEntries {
		s.AllEntries = true
	}
	if a.config.Strict {
		s.Strict = true
	}
	if a.config.WGSLNaga {
		s.WGSLBackend = project.BackendNaga
	}
}

// resolveCompiler finds the compiler executable, checking that it exists.
func (a *App) resolveCompiler(root string, s *project.Settings) (string, error) {
	if a.config.CompilerPath != "" {
		return compiler.CheckExecutable(root, a.config.CompilerPath)
	}

	resolver := compiler.NewResolver()
	for p, path := range s.Executables {
		resolver.Set(p, path)
	}
	return resolver.Resolve(root, a.platform)
}

func (a *App) newRunner(ctx context.Context, root, shadersDir string, s *project.Settings) (*shaders.Runner, error) {
	logger := ctxlog.FromContext(ctx)

	bin, err := a.resolveCompiler(root, s)
	if err != nil {
		return nil, fmt.Errorf("platform %s: %w", a.platform, err)
	}
	logger.Info("Compiler located.", "path", bin)

	external, err := compiler.NewExternal(bin, s.CompilerArgs)
	if err != nil {
		return nil, err
	}
	external.Stdout = a.outW
	external.Stderr = a.outW

	backends := map[string]compiler.Compiler{}
	if s.WGSLBackend == project.BackendNaga {
		backends[".wgsl"] = &compiler.Naga{Debug: s.WGSLDebug, Validate: s.WGSLValidate}
		logger.Debug("WGSL sources compiled in-process.")
	}

	return shaders.NewRunner(shaders.Config{
		Dir: shadersDir,
		Filter: shaders.Filter{
			Suffix:     s.Suffix,
			AllEntries: s.AllEntries,
		},
		Compiler: external,
		Backends: backends,
		Progress: a.outW,
		NoColor:  a.config.NoColor,
		Strict:   s.Strict,
	})
}

func (a *App) watch(ctx context.Context, runner *shaders.Runner) error {
	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(ctx, a.config.HealthcheckPort)
		defer a.closeHealthcheckServer(ctx)
	}

	w := watch.New(runner, watch.DefaultInterval)
	if err := w.Run(ctx); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
