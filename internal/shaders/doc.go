// Package shaders implements the build step: it lists the shader directory,
// derives an output path for every eligible entry by appending the compiled
// suffix to its name, and invokes a compiler for each entry, one at a time.
package shaders
