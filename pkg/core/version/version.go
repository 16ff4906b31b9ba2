// ============================================================================
// knuth - Math Typesetting Service
// ============================================================================
//
// Package:     version
// Description: Central version management for the CLI and services
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants for all knuth components
const (
	// Platform version
	Platform = "0.1.0"

	// Component versions
	Engine  = "0.1.0" // parser and layout builder
	Server  = "0.1.0"
	Preview = "0.1.0"
)

// Build information, set via -ldflags "-X ..."
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "engine", "texmath":
		return Engine
	case "server", "knuth-server":
		return Server
	case "preview":
		return Preview
	default:
		return Platform
	}
}

// Info returns a one-line description of the build
func Info() string {
	return fmt.Sprintf("knuth %s (engine %s, commit %s, built %s, %s/%s)",
		Platform, Engine, Commit, BuildDate, runtime.GOOS, runtime.GOARCH)
}
