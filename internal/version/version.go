package version

import "fmt"

var (
	// Version is the semantic version of this build; release builds override it via ldflags.
	Version = "1.0.0"
	// Commit is the short git SHA stamped at build time, or "none" for local builds.
	Commit = "none"
	// BuildTime is the UTC timestamp stamped at build time.
	BuildTime = "unknown"
)

// Short returns only the semantic version string.
func Short() string {
	return Version
}

// Full renders the version together with commit and build time, for CLI output and logs.
func Full() string {
	return fmt.Sprintf("version: %s, commit: %s, built at: %s", Version, Commit, BuildTime)
}
