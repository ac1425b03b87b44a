// Package version holds the c2rust-init version information.
// It has no dependencies so any package can import it.
package version

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)
