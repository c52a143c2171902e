package project

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/spvbuild/internal/compiler"
	"github.com/specialistvlad/spvbuild/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// fileRoot mirrors the top level of a project file.
type fileRoot struct {
	ShadersDir *string        `hcl:"shaders_dir,optional"`
	Suffix     *string        `hcl:"suffix,optional"`
	AllEntries *bool          `hcl:"all_entries,optional"`
	Strict     *bool          `hcl:"strict,optional"`
	Compiler   *compilerBlock `hcl:"compiler,block"`
	WGSL       *wgslBlock     `hcl:"wgsl,block"`
}

type compilerBlock struct {
	Args      *string          `hcl:"args,optional"`
	Platforms []*platformBlock `hcl:"platform,block"`
}

type platformBlock struct {
	Name string `hcl:"name,label"`
	Path string `hcl:"path"`
}

type wgslBlock struct {
	Backend  *string `hcl:"backend,optional"`
	Debug    *bool   `hcl:"debug,optional"`
	Validate *bool   `hcl:"validate,optional"`
}

// Loader reads project files.
type Loader struct {
	// Environ supplies the `env` variable. Defaults to os.Environ.
	Environ func() []string
	// GOOS supplies the `os` variable. Defaults to runtime.GOOS.
	GOOS string
}

// NewLoader creates a new project file loader.
func NewLoader() *Loader {
	return &Loader{Environ: os.Environ, GOOS: runtime.GOOS}
}

// Load reads the project file for root. An explicit path must exist; with an
// empty path, root/spvbuild.hcl is used when present and Defaults otherwise.
func (l *Loader) Load(ctx context.Context, root, path string) (*Settings, error) {
	logger := ctxlog.FromContext(ctx)

	explicit := path != ""
	if !explicit {
		path = filepath.Join(root, FileName)
	} else if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve project file %s: %w", path, err)
		}
		path = abs
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			logger.Debug("No project file found, using defaults.", "path", path)
			return Defaults(), nil
		}
		return nil, fmt.Errorf("error accessing project file %s: %w", path, err)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file %s: %w", path, err)
	}

	settings, err := l.Parse(src, path, root)
	if err != nil {
		return nil, err
	}
	logger.Debug("Project file loaded.", "path", path)
	return settings, nil
}

// Parse decodes project file content. filename is only used in diagnostics.
func (l *Loader) Parse(src []byte, filename, root string) (*Settings, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse project file %s: %w", filename, diags)
	}

	var parsed fileRoot
	diags = gohcl.DecodeBody(file.Body, l.evalContext(root), &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode project file %s: %w", filename, diags)
	}

	settings, err := translate(&parsed)
	if err != nil {
		return nil, fmt.Errorf("invalid project file %s: %w", filename, err)
	}
	settings.Source = filename
	return settings, nil
}

func (l *Loader) evalContext(root string) *hcl.EvalContext {
	environ := os.Environ
	if l.Environ != nil {
		environ = l.Environ
	}
	goos := l.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}

	env := make(map[string]cty.Value)
	for _, kv := range environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" || !hclIdentifier(name) {
			continue
		}
		env[name] = cty.StringVal(value)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"root": cty.StringVal(root),
			"os":   cty.StringVal(goos),
			"env":  cty.ObjectVal(env),
		},
	}
}

// hclIdentifier reports whether name can be used as an attribute in `env.NAME`.
func hclIdentifier(name string) bool {
	for i, r := range name {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case i > 0 && ((r >= '0' && r <= '9') || r == '-'):
		default:
			return false
		}
	}
	return true
}

func translate(parsed *fileRoot) (*Settings, error) {
	s := Defaults()

	if parsed.ShadersDir != nil {
		if *parsed.ShadersDir == "" {
			return nil, errors.New("shaders_dir must not be empty")
		}
		s.ShadersDir = *parsed.ShadersDir
	}
	if parsed.Suffix != nil {
		if *parsed.Suffix == "" {
			return nil, errors.New("suffix must not be empty")
		}
		if !strings.HasPrefix(*parsed.Suffix, ".") {
			return nil, fmt.Errorf("invalid suffix %q: must start with '.'", *parsed.Suffix)
		}
		s.Suffix = *parsed.Suffix
	}
	if parsed.AllEntries != nil {
		s.AllEntries = *parsed.AllEntries
	}
	if parsed.Strict != nil {
		s.Strict = *parsed.Strict
	}

	if c := parsed.Compiler; c != nil {
		if c.Args != nil {
			if _, err := compiler.ParseArgs(*c.Args); err != nil {
				return nil, err
			}
			s.CompilerArgs = *c.Args
		}
		for _, p := range c.Platforms {
			platform, err := compiler.ParsePlatform(p.Name)
			if err != nil {
				return nil, err
			}
			if _, dup := s.Executables[platform]; dup {
				return nil, fmt.Errorf("duplicate platform block %q", p.Name)
			}
			s.Executables[platform] = p.Path
		}
	}

	if w := parsed.WGSL; w != nil {
		if w.Backend != nil {
			switch *w.Backend {
			case BackendExternal, BackendNaga:
				s.WGSLBackend = *w.Backend
			default:
				return nil, fmt.Errorf("unknown wgsl backend %q: must be '%s' or '%s'", *w.Backend, BackendExternal, BackendNaga)
			}
		}
		if w.Debug != nil {
			s.WGSLDebug = *w.Debug
		}
		if w.Validate != nil {
			s.WGSLValidate = *w.Validate
		}
	}

	return s, nil
}
