package compiler

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestHelperProcess is not a real test. It stands in for glslc when the test
// binary is re-executed by newHelperCompiler.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	defer os.Exit(0)

	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	args = args[1:]

	// Expected: [extra...] src -o dst
	if len(args) < 3 || args[len(args)-2] != "-o" {
		fmt.Fprintf(os.Stderr, "bad arguments: %v\n", args)
		os.Exit(2)
	}
	src, dst := args[len(args)-3], args[len(args)-1]

	source, err := os.ReadFile(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if strings.Contains(string(source), "FAIL") {
		fmt.Fprintf(os.Stderr, "%s: error: syntax error\n", filepath.Base(src))
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "compiling %s\n", filepath.Base(src))
	out := fmt.Sprintf("extra=%s\n%s", strings.Join(args[:len(args)-3], " "), source)
	if err := os.WriteFile(dst, []byte(out), 0644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newHelperCompiler(extra ...string) *External {
	return &External{
		Bin:  os.Args[0],
		Args: append([]string{"-test.run=TestHelperProcess", "--"}, extra...),
		Env:  []string{"GO_WANT_HELPER_PROCESS=1"},
	}
}

func TestExternal_CompileWritesOutput(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	src := filepath.Join(dir, "a.vert")
	dst := src + ".spv"
	require.NoError(t, os.WriteFile(src, []byte("void main() {}"), 0644))

	stdout := &bytes.Buffer{}
	c := newHelperCompiler("-O")
	c.Stdout = stdout

	// --- Act ---
	err := c.Compile(context.Background(), src, dst)

	// --- Assert ---
	require.NoError(t, err)
	out, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "extra=-O\nvoid main() {}", string(out))
	require.Contains(t, stdout.String(), "compiling a.vert")
}

func TestExternal_CompileFailureCarriesDiagnostics(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "broken.frag")
	require.NoError(t, os.WriteFile(src, []byte("FAIL"), 0644))

	stderr := &bytes.Buffer{}
	c := newHelperCompiler()
	c.Stderr = stderr

	err := c.Compile(context.Background(), src, src+".spv")

	require.Error(t, err)
	require.Contains(t, err.Error(), "syntax error")
	require.Contains(t, stderr.String(), "syntax error")
	require.NoFileExists(t, src+".spv")
}

func TestExternal_MissingBinary(t *testing.T) {
	t.Parallel()

	c := &External{Bin: filepath.Join(t.TempDir(), "no-such-glslc")}
	err := c.Compile(context.Background(), "a.vert", "a.vert.spv")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to run")
}

func TestNewExternal_ParsesQuotedArgs(t *testing.T) {
	t.Parallel()

	c, err := NewExternal("glslc", `-O --target-env=vulkan1.2 -DNAME="two words"`)
	require.NoError(t, err)
	require.Equal(t, []string{"-O", "--target-env=vulkan1.2", "-DNAME=two words"}, c.Args)
	require.Equal(t, "external", c.Name())

	c, err = NewExternal("glslc", "  ")
	require.NoError(t, err)
	require.Empty(t, c.Args)

	_, err = NewExternal("glslc", `-DNAME="unterminated`)
	require.Error(t, err)
}
