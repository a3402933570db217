package governance

import "runtime"

// build info, injected through ldflags
var (
	CurrentVersion = "dev"
	CurrentBranch  = "unknown"
	CurrentCommit  = "unknown"
	BuildDate      = "unknown"

	Platform  = runtime.GOOS + "/" + runtime.GOARCH
	GoVersion = runtime.Version()
)
