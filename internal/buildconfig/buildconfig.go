package buildconfig

// Set at release time via -ldflags "-X github.com/driftline/infinite-library/internal/buildconfig.version=..."
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// Version returns the release tag baked into the binary.
func Version() string {
	return version
}

// Commit returns the git commit hash the binary was cut from.
func Commit() string {
	return commit
}

// VersionInfo returns every build-time field, for the metrics surface.
func VersionInfo() map[string]string {
	return map[string]string{
		"version":    version,
		"commit":     commit,
		"build_date": buildDate,
	}
}
