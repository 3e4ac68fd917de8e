// Package version exposes build metadata stamped in with -ldflags -X.
package version

import "fmt"

//nolint:gochecknoglobals,revive // overwritten by the linker
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the metadata for the version command.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
