package shaders

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSuffix is appended to a source file name to form its output name.
const DefaultSuffix = ".spv"

// Entry is one item of the shader directory scheduled for compilation.
type Entry struct {
	Name   string
	Source string
	Output string
	IsDir  bool
}

// Filter decides which directory entries are compiled.
type Filter struct {
	Suffix string
	// AllEntries disables every skip rule: subdirectories and compiled outputs
	// are handed to the compiler like any other entry.
	AllEntries bool
}

// Skip reports whether the named entry is left out, and why.
func (f Filter) Skip(name string, isDir bool) (bool, string) {
	if f.AllEntries {
		return false, ""
	}
	if isDir {
		return true, "directory"
	}
	if strings.HasSuffix(name, f.Suffix) {
		return true, "compiled output"
	}
	return false, ""
}

// OutputPath returns the compiled output path for src.
func OutputPath(src, suffix string) string {
	return src + suffix
}

func newEntry(dir, name string, isDir bool, suffix string) Entry {
	src := filepath.Join(dir, name)
	return Entry{
		Name:   name,
		Source: src,
		Output: OutputPath(src, suffix),
		IsDir:  isDir,
	}
}

// Discover lists dir in directory order and splits its entries into the ones
// to compile and the ones the filter skips.
func Discover(dir string, f Filter) (entries, skipped []Entry, err error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve shaders directory %s: %w", dir, err)
	}

	dirEntries, err := os.ReadDir(abs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list shaders directory %s: %w", abs, err)
	}

	for _, de := range dirEntries {
		e := newEntry(abs, de.Name(), de.IsDir(), f.Suffix)
		if skip, _ := f.Skip(de.Name(), de.IsDir()); skip {
			skipped = append(skipped, e)
			continue
		}
		entries = append(entries, e)
	}
	return entries, skipped, nil
}
