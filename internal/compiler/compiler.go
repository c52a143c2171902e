package compiler

import "context"

// Compiler turns one shader source into a compiled output file.
type Compiler interface {
	// Compile compiles src and writes the result to dst. Both paths are absolute.
	Compile(ctx context.Context, src, dst string) error
	// Name identifies the backend in logs.
	Name() string
}
