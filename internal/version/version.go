package version

// Version is the tsfile-site release, set at build time:
// go build -ldflags "-X github.com/apache/tsfile-website/internal/version.Version=v1.0.0".
var Version = "unknown"

var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by --version.
func String() string {
	return "tsfile-site " + Version + " (commit " + GitCommit + ", built " + BuildTime + ")"
}
