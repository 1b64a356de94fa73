// Package version holds build metadata, overridden with -ldflags at release.
package version

var (
	Version   = "0.1.0"
	GitCommit = "development"
	BuildDate = "unknown"
)
