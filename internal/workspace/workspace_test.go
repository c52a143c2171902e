package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveRoot_ToolsDirMapsToParent(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	tools := filepath.Join(root, "tools")
	require.NoError(t, os.Mkdir(tools, 0755))

	// --- Act ---
	fromRoot, err := ResolveRoot(root, DefaultToolsDir)
	require.NoError(t, err)
	fromTools, err := ResolveRoot(tools, DefaultToolsDir)
	require.NoError(t, err)

	// --- Assert ---
	require.Equal(t, root, fromRoot)
	require.Equal(t, root, fromTools)
}

func TestResolveRoot_CustomToolsDirName(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	scripts := filepath.Join(root, "scripts")

	got, err := ResolveRoot(scripts, "scripts")
	require.NoError(t, err)
	require.Equal(t, root, got)

	got, err = ResolveRoot(scripts, DefaultToolsDir)
	require.NoError(t, err)
	require.Equal(t, scripts, got, "a non-matching name must not be stripped")
}

func TestResolveRoot_RelativeIsMadeAbsolute(t *testing.T) {
	t.Parallel()

	got, err := ResolveRoot("", DefaultToolsDir)
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(got))

	wd, err := os.Getwd()
	require.NoError(t, err)
	if filepath.Base(wd) != DefaultToolsDir {
		require.Equal(t, wd, got)
	}
}

func TestResolveRoot_ExpandsHome(t *testing.T) {
	t.Parallel()

	got, err := ResolveRoot("~", DefaultToolsDir)
	require.NoError(t, err)
	require.NotContains(t, got, "~")
	require.True(t, filepath.IsAbs(got))
}

func TestLocateShaders(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	_, err := LocateShaders(root, DefaultShadersDir)
	require.ErrorIs(t, err, ErrShadersDirNotFound)

	// A regular file named like the shaders directory is not accepted.
	require.NoError(t, os.WriteFile(filepath.Join(root, "shaders"), nil, 0644))
	_, err = LocateShaders(root, DefaultShadersDir)
	require.ErrorIs(t, err, ErrShadersDirNotFound)

	other := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(other, "shaders"), 0755))
	dir, err := LocateShaders(other, DefaultShadersDir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(other, "shaders"), dir)
}
