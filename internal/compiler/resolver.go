package compiler

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/specialistvlad/spvbuild/internal/fsutil"
)

var (
	// ErrUnsupportedPlatform is returned when no compiler executable is known
	// for the running platform.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrCompilerNotFound is returned when the resolved executable does not exist.
	ErrCompilerNotFound = errors.New("compiler executable not found")
)

// Resolver maps platforms to compiler executables. Relative paths are
// resolved against the project root.
type Resolver struct {
	Executables map[Platform]string
}

// NewResolver returns a Resolver with the glslc layout under bin/.
func NewResolver() *Resolver {
	return &Resolver{
		Executables: map[Platform]string{
			PlatformLinux:   filepath.Join("bin", "glslc"),
			PlatformWindows: filepath.Join("bin", "glslc.exe"),
		},
	}
}

// Set overrides the executable for a platform.
func (r *Resolver) Set(p Platform, path string) {
	if r.Executables == nil {
		r.Executables = make(map[Platform]string)
	}
	r.Executables[p] = path
}

// Resolve returns the absolute path of the compiler for platform p, verifying
// that it exists.
func (r *Resolver) Resolve(root string, p Platform) (string, error) {
	rel, ok := r.Executables[p]
	if p == PlatformUnknown || !ok || rel == "" {
		return "", fmt.Errorf("%w: no compiler configured for %s", ErrUnsupportedPlatform, p)
	}
	return CheckExecutable(root, rel)
}

// CheckExecutable resolves path against root and verifies a file exists there.
func CheckExecutable(root, path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("failed to expand compiler path %q: %w", path, err)
	}
	if !filepath.IsAbs(expanded) {
		expanded = filepath.Join(root, expanded)
	}

	ok, err := fsutil.IsFile(expanded)
	if err != nil {
		return "", fmt.Errorf("failed to stat compiler %s: %w", expanded, err)
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrCompilerNotFound, expanded)
	}
	return expanded, nil
}
