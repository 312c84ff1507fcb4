// Package buildinfo holds version information injected at build time via
// -ldflags "-X github.com/oh-my-claude/menubar/internal/buildinfo.Version=...".
package buildinfo

import "fmt"

var (
	Version    = "dev"
	Codename   = "unreleased"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// Short returns "version (codename)".
func Short() string {
	return fmt.Sprintf("%s (%s)", Version, Codename)
}

// Fields returns the build metadata as key/value pairs for structured logs.
func Fields() map[string]string {
	return map[string]string{
		"version":  Version,
		"codename": Codename,
		"commit":   CommitHash,
		"built":    BuildDate,
	}
}
