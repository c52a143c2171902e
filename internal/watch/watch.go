// Package watch recompiles shader sources as they change on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/specialistvlad/spvbuild/internal/ctxlog"
	"github.com/specialistvlad/spvbuild/internal/shaders"
)

// DefaultInterval is how long change events are collected before the
// affected sources are compiled.
const DefaultInterval = 200 * time.Millisecond

// Runner is the part of shaders.Runner the watcher drives.
type Runner interface {
	Dir() string
	Filter() shaders.Filter
	EntryFor(path string) (shaders.Entry, bool, error)
	CompileEntry(ctx context.Context, e shaders.Entry) error
}

// Watcher recompiles sources of a shader directory after they are created or
// written. Compilation stays sequential.
type Watcher struct {
	runner   Runner
	interval time.Duration
	ready    chan struct{}
}

// New creates a Watcher for r.
func New(r Runner, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{
		runner:   r,
		interval: interval,
		ready:    make(chan struct{}),
	}
}

// Ready is closed once the directory is being watched.
func (w *Watcher) Ready() <-chan struct{} { return w.ready }

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()

	dir := w.runner.Dir()
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	close(w.ready)
	logger.Info("👀 Watching for shader changes...", "dir", dir)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	pending := make(map[string]struct{})
	for {
		select {
		case <-ctx.Done():
			logger.Debug("Watcher stopped.")
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if w.ignored(ev.Name) {
				continue
			}
			pending[ev.Name] = struct{}{}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error.", "error", err)

		case <-ticker.C:
			if len(pending) == 0 {
				continue
			}
			w.flush(ctx, pending)
			pending = make(map[string]struct{})
		}
	}
}

// ignored drops events for compiled outputs even when the filter accepts
// every entry, otherwise each output would trigger its own recompilation.
func (w *Watcher) ignored(path string) bool {
	return strings.HasSuffix(filepath.Base(path), w.runner.Filter().Suffix)
}

func (w *Watcher) flush(ctx context.Context, pending map[string]struct{}) {
	logger := ctxlog.FromContext(ctx)

	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		if ctx.Err() != nil {
			return
		}
		e, ok, err := w.runner.EntryFor(p)
		if err != nil {
			logger.Warn("Failed to inspect changed file.", "path", p, "error", err)
			continue
		}
		if !ok || e.IsDir {
			continue
		}
		if err := w.runner.CompileEntry(ctx, e); err != nil {
			logger.Warn("Shader failed to compile.", "entry", e.Name, "error", err)
			continue
		}
		logger.Info("Shader recompiled.", "entry", e.Name)
	}
}
