// Package version provides information about the build version of the service.
package version

// ServiceName is the name the api reports in health and build info
const ServiceName = "crimestats-api"

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information. The version, commit, and date variables
// are intended to be set at build time using -ldflags.
func Info() BuildInfo {
	// Set via -ldflags "-X 'crimestats/internal/core/version.version=v0.0.1'
	// -X 'crimestats/internal/core/version.commit=abcd' -X 'crimestats/internal/core/version.date=2025-09-02'"
	return BuildInfo{
		Service: ServiceName,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
