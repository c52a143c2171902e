package workspace

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/specialistvlad/spvbuild/internal/fsutil"
)

// DefaultToolsDir is the directory the tool usually lives in, relative to the
// project root.
const DefaultToolsDir = "tools"

// DefaultShadersDir is the shader sources directory, relative to the project root.
const DefaultShadersDir = "shaders"

// ErrShadersDirNotFound is returned when the shader sources directory is
// missing or is not a directory.
var ErrShadersDirNotFound = errors.New("shaders directory not found")

// ResolveRoot turns the user supplied root argument into an absolute project
// root. An empty argument means the current working directory. When the final
// path segment equals toolsDir, the parent is returned instead, so running from
// the repository root or from inside the tools directory behaves the same.
func ResolveRoot(arg, toolsDir string) (string, error) {
	if arg == "" {
		arg = "."
	}

	expanded, err := homedir.Expand(arg)
	if err != nil {
		return "", fmt.Errorf("failed to expand root path %q: %w", arg, err)
	}

	root, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root path %q: %w", arg, err)
	}

	if toolsDir != "" && filepath.Base(root) == toolsDir {
		root = filepath.Dir(root)
	}
	return root, nil
}

// LocateShaders returns root/name if it exists and is a directory.
func LocateShaders(root, name string) (string, error) {
	dir := name
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, name)
	}

	ok, err := fsutil.IsDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to stat shaders directory %s: %w", dir, err)
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrShadersDirNotFound, dir)
	}
	return dir, nil
}
