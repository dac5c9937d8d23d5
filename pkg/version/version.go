package version

import "fmt"

// Populated through -ldflags at release time.
var (
	Version = "v0.1.0"
	Commit  = "unknown"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
