// Package compiler locates and drives shader compilers.
//
// A Resolver maps the running Platform to the compiler executable shipped
// under the project root. Compilation itself goes through the Compiler
// interface, implemented by External, which runs a glslc compatible binary
// as a child process, and by Naga, which compiles WGSL in-process.
package compiler
