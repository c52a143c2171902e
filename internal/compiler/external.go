package compiler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/mattn/go-shellwords"
)

// External runs a glslc compatible compiler binary as a child process with
// the arguments `<Args...> <src> -o <dst>`.
type External struct {
	Bin  string
	Args []string
	// Env is appended to the parent environment.
	Env []string

	// Stdout and Stderr receive the child's output. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

// NewExternal returns an External for bin. extraArgs is a shell-quoted
// argument string inserted before the source path.
func NewExternal(bin, extraArgs string) (*External, error) {
	args, err := ParseArgs(extraArgs)
	if err != nil {
		return nil, err
	}
	return &External{Bin: bin, Args: args}, nil
}

// ParseArgs splits a shell-quoted argument string.
func ParseArgs(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	args, err := shellwords.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("failed to parse compiler arguments %q: %w", s, err)
	}
	return args, nil
}

// Name implements Compiler.
func (e *External) Name() string { return "external" }

// Compile implements Compiler.
func (e *External) Compile(ctx context.Context, src, dst string) error {
	args := make([]string, 0, len(e.Args)+3)
	args = append(args, e.Args...)
	args = append(args, src, "-o", dst)

	cmd := exec.CommandContext(ctx, e.Bin, args...)
	if len(e.Env) > 0 {
		cmd.Env = append(os.Environ(), e.Env...)
	}

	var diag bytes.Buffer
	cmd.Stdout = e.Stdout
	if e.Stderr != nil {
		cmd.Stderr = io.MultiWriter(e.Stderr, &diag)
	} else {
		cmd.Stderr = &diag
	}

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(diag.String())
		if msg != "" {
			return fmt.Errorf("failed to run %v: %w\n%s", cmd.Args, err, msg)
		}
		return fmt.Errorf("failed to run %v: %w", cmd.Args, err)
	}
	return nil
}
