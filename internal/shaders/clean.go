package shaders

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/spvbuild/internal/ctxlog"
	"github.com/specialistvlad/spvbuild/internal/fsutil"
)

// Clean removes the compiled outputs sitting directly in dir and returns
// their paths. Sources and subdirectories are left alone.
func Clean(ctx context.Context, dir, suffix string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)
	if suffix == "" {
		suffix = DefaultSuffix
	}

	files, err := fsutil.FindFilesBySuffix(dir, suffix)
	if err != nil {
		return nil, fmt.Errorf("failed to find compiled outputs in %s: %w", dir, err)
	}

	removed := make([]string, 0, len(files))
	for _, f := range files {
		if err := os.Remove(f); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", f, err)
		}
		logger.Debug("Removed compiled output.", "path", f)
		removed = append(removed, f)
	}
	return removed, nil
}
