// Package version provides build-time version information.
package version

import "fmt"

// AppName is the user-visible application name.
const AppName = "Mask Annotator"

// These variables are set at build time using -ldflags
var (
	// Version is the semantic version
	Version = "0.1.0"

	// GitCommit is the git commit hash
	GitCommit = "unknown"
)

// String returns a human-readable version line.
func String() string {
	return fmt.Sprintf("%s v%s (%s)", AppName, Version, GitCommit)
}
