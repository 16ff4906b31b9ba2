// File: discovery.go
// Title: Configuration File Discovery
// Description: Locates a configuration file across directories, base names
//              and extensions.
// Version: v0.2.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.2.0: Discovery returns a path for LoadInto

package config

import (
	"os"
	"path/filepath"

	mdwerror "github.com/msto63/knuth/foundation/core/error"
)

// DiscoveryOptions defines where to look for configuration files
type DiscoveryOptions struct {
	Paths      []string // Directories to search
	Filenames  []string // Base filenames without extension
	Extensions []string // Extensions to try, in order
}

// DefaultDiscoveryOptions returns the search order used by the CLI
func DefaultDiscoveryOptions(name string) DiscoveryOptions {
	paths := []string{".", "./configs"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, "."+name))
	}
	paths = append(paths, filepath.Join("/etc", name))
	return DiscoveryOptions{
		Paths:      paths,
		Filenames:  []string{name, "config"},
		Extensions: []string{".toml", ".yaml", ".yml"},
	}
}

// Candidates lists every path discovery would try, in order
func Candidates(options DiscoveryOptions) []string {
	var files []string
	for _, dir := range options.Paths {
		for _, name := range options.Filenames {
			for _, ext := range options.Extensions {
				files = append(files, filepath.Join(dir, name+ext))
			}
		}
	}
	return files
}

// FindConfigFile returns the first existing candidate file
func FindConfigFile(options DiscoveryOptions) (string, error) {
	for _, candidate := range Candidates(options) {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", mdwerror.New("no configuration file found").
		WithCode(mdwerror.CodeNotFound).
		WithOperation("config.FindConfigFile").
		WithDetail("searched", len(Candidates(options)))
}
