package project

import (
	"github.com/specialistvlad/spvbuild/internal/compiler"
	"github.com/specialistvlad/spvbuild/internal/shaders"
	"github.com/specialistvlad/spvbuild/internal/workspace"
)

// FileName is the project file looked up at the project root.
const FileName = "spvbuild.hcl"

// Backend names accepted by the wgsl block.
const (
	BackendExternal = "external"
	BackendNaga     = "naga"
)

// Settings is the merged project configuration.
type Settings struct {
	ShadersDir string
	Suffix     string
	AllEntries bool
	Strict     bool

	// Executables overrides the compiler path per platform.
	Executables map[compiler.Platform]string
	// CompilerArgs is a shell-quoted string of extra compiler arguments.
	CompilerArgs string

	WGSLBackend  string
	WGSLDebug    bool
	WGSLValidate bool

	// Source is the project file the settings came from, empty for defaults.
	Source string
}

// Defaults returns the settings used when no project file exists.
func Defaults() *Settings {
	return &Settings{
		ShadersDir:   workspace.DefaultShadersDir,
		Suffix:       shaders.DefaultSuffix,
		Executables:  map[compiler.Platform]string{},
		WGSLBackend:  BackendExternal,
		WGSLValidate: true,
	}
}
