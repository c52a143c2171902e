package compiler

import (
	"context"
	"fmt"
	"os"

	"github.com/gogpu/naga"
)

// Naga compiles WGSL sources to SPIR-V in-process.
type Naga struct {
	Debug    bool
	Validate bool
}

// Name implements Compiler.
func (n *Naga) Name() string { return "naga" }

// Compile implements Compiler.
func (n *Naga) Compile(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	source, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read shader %s: %w", src, err)
	}

	opts := naga.DefaultOptions()
	opts.Debug = n.Debug
	opts.Validate = n.Validate

	spirv, err := naga.CompileWithOptions(string(source), opts)
	if err != nil {
		return fmt.Errorf("failed to compile %s: %w", src, err)
	}

	if err := os.WriteFile(dst, spirv, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return nil
}
