// Package project loads the optional spvbuild.hcl project file found at the
// project root and turns it into Settings.
//
// Attribute expressions are evaluated with three variables in scope: `root`
// (the absolute project root), `os` (runtime.GOOS) and `env` (the process
// environment as an object).
package project
