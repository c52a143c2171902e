// Package workspace resolves the project root a build runs against and
// locates the shader sources directory beneath it.
package workspace
