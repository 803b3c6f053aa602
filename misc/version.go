// Package misc provides build identification helpers.
package misc

import "runtime/debug"

const appName = "flint"

// set by the linker during release builds
var (
	version = "development"
	gitHash = "unknown"
)

// GetAppName returns short program name, used for logger and temporary file naming.
func GetAppName() string {
	return appName
}

// GetVersion returns program version as set at build time.
func GetVersion() string {
	if version != "development" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return version
}

// GetGitHash returns VCS revision recorded in the binary if any.
func GetGitHash() string {
	if gitHash != "unknown" {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return gitHash
}
