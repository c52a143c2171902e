package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Invocation is one recorded call to a compiler.
type Invocation struct {
	Source string
	Output string
}

// RecordingCompiler is a fake compiler.Compiler. It records every call and,
// unless the source name is listed in FailOn, writes a small output file.
type RecordingCompiler struct {
	Label  string
	FailOn map[string]bool
	// NoWrite disables writing output files.
	NoWrite bool

	mu    sync.Mutex
	calls []Invocation
}

// Name implements compiler.Compiler.
func (c *RecordingCompiler) Name() string {
	if c.Label == "" {
		return "recording"
	}
	return c.Label
}

// Compile implements compiler.Compiler.
func (c *RecordingCompiler) Compile(ctx context.Context, src, dst string) error {
	c.mu.Lock()
	c.calls = append(c.calls, Invocation{Source: src, Output: dst})
	c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if c.FailOn[filepath.Base(src)] {
		return fmt.Errorf("%s: error: compilation failed", filepath.Base(src))
	}
	if c.NoWrite {
		return nil
	}
	return os.WriteFile(dst, []byte("compiled:"+filepath.Base(src)), 0644)
}

// Calls returns a copy of the recorded invocations in call order.
func (c *RecordingCompiler) Calls() []Invocation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Invocation(nil), c.calls...)
}

// SourceNames returns the sorted base names of every recorded source.
func (c *RecordingCompiler) SourceNames() []string {
	calls := c.Calls()
	names := make([]string, 0, len(calls))
	for _, call := range calls {
		names = append(names, filepath.Base(call.Source))
	}
	sort.Strings(names)
	return names
}

// WriteTree creates files under root. Names ending with "/" become directories.
func WriteTree(root string, files map[string]string) error {
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if strings.HasSuffix(name, "/") {
			if err := os.MkdirAll(path, 0755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}
