package types

import "runtime"

// Version information for the htmldate library.
const (
	Version = "0.4.0"
	Name    = "htmldate"
)

// BuildInfo contains version and build information for the library.
type BuildInfo struct {
	Version   string `json:"version" yaml:"version"`
	Name      string `json:"name" yaml:"name"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

// GetBuildInfo returns the current version information, for logs or help output.
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Name:      Name,
		GoVersion: runtime.Version(),
	}
}
