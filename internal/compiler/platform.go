package compiler

import "fmt"

// Platform identifies an operating system the tool knows a compiler layout for.
type Platform int

const (
	PlatformUnknown Platform = iota
	PlatformLinux
	PlatformWindows
)

// PlatformFromGOOS maps a runtime.GOOS value to a Platform.
func PlatformFromGOOS(goos string) Platform {
	switch goos {
	case "linux":
		return PlatformLinux
	case "windows":
		return PlatformWindows
	default:
		return PlatformUnknown
	}
}

// ParsePlatform parses a platform label as written in the project file.
func ParsePlatform(name string) (Platform, error) {
	p := PlatformFromGOOS(name)
	if p == PlatformUnknown {
		return PlatformUnknown, fmt.Errorf("unknown platform %q: must be 'linux' or 'windows'", name)
	}
	return p, nil
}

func (p Platform) String() string {
	switch p {
	case PlatformLinux:
		return "linux"
	case PlatformWindows:
		return "windows"
	default:
		return "unknown"
	}
}
