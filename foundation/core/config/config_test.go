// File: config_test.go
// Title: Configuration Loading Tests
// Description: Tests for TOML/YAML decoding, environment expansion, strict
//              mode and file discovery.
// Version: v0.2.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.2.0: Tests for typed decoding

package config

import (
	"os"
	"path/filepath"
	"testing"

	mdwerror "github.com/msto63/knuth/foundation/core/error"
)

type sample struct {
	Name   string `toml:"name" yaml:"name"`
	Render struct {
		Style    string `toml:"style" yaml:"style"`
		MaxDepth int    `toml:"max_depth" yaml:"max_depth"`
	} `toml:"render" yaml:"render"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadIntoFormats(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		file    string
		content string
	}{
		{"knuth.toml", "name = \"knuth\"\n[render]\nstyle = \"display\"\nmax_depth = 32\n"},
		{"knuth.yaml", "name: knuth\nrender:\n  style: display\n  max_depth: 32\n"},
		{"knuth.yml", "name: knuth\nrender:\n  style: display\n  max_depth: 32\n"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)
			var got sample
			if err := LoadInto(path, &got, LoadOptions{}); err != nil {
				t.Fatalf("LoadInto: %v", err)
			}
			if got.Name != "knuth" || got.Render.Style != "display" || got.Render.MaxDepth != 32 {
				t.Errorf("unexpected result: %+v", got)
			}
		})
	}
}

func TestLoadIntoExpandsEnv(t *testing.T) {
	t.Setenv("KNUTH_TEST_STYLE", "script")
	path := writeFile(t, t.TempDir(), "c.toml", "[render]\nstyle = \"${KNUTH_TEST_STYLE}\"\n")

	var got sample
	if err := LoadInto(path, &got, LoadOptions{ExpandEnv: true}); err != nil {
		t.Fatalf("LoadInto: %v", err)
	}
	if got.Render.Style != "script" {
		t.Errorf("style = %q, want script", got.Render.Style)
	}
}

func TestLoadIntoErrors(t *testing.T) {
	dir := t.TempDir()
	broken := writeFile(t, dir, "broken.toml", "name = \n")
	unknown := writeFile(t, dir, "unknown.toml", "colour = \"blue\"\n")
	unknownYAML := writeFile(t, dir, "unknown.yaml", "colour: blue\n")

	tests := []struct {
		name     string
		path     string
		opts     LoadOptions
		wantCode mdwerror.Code
	}{
		{"empty path", "", LoadOptions{}, mdwerror.CodeMissingConfig},
		{"missing file", filepath.Join(dir, "nope.toml"), LoadOptions{}, mdwerror.CodeNotFound},
		{"syntax error", broken, LoadOptions{}, mdwerror.CodeInvalidConfig},
		{"strict toml", unknown, LoadOptions{Strict: true}, mdwerror.CodeInvalidConfig},
		{"strict yaml", unknownYAML, LoadOptions{Strict: true}, mdwerror.CodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got sample
			err := LoadInto(tt.path, &got, tt.opts)
			if err == nil {
				t.Fatal("expected an error")
			}
			if code := mdwerror.GetCode(err); code != tt.wantCode {
				t.Errorf("code = %v, want %v", code, tt.wantCode)
			}
		})
	}

	var lenient sample
	if err := LoadInto(unknown, &lenient, LoadOptions{}); err != nil {
		t.Errorf("non-strict load should ignore unknown keys: %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"": FormatAuto, "TOML": FormatTOML, ".yml": FormatYAML, "yaml": FormatYAML}
	for in, want := range tests {
		if got, err := ParseFormat(in); err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseFormat("ini"); err == nil {
		t.Error("ParseFormat(ini) should fail")
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	opts := DiscoveryOptions{
		Paths:      []string{filepath.Join(dir, "missing"), dir},
		Filenames:  []string{"knuth"},
		Extensions: []string{".toml", ".yaml"},
	}

	if _, err := FindConfigFile(opts); !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}

	want := writeFile(t, dir, "knuth.yaml", "name: knuth\n")
	got, err := FindConfigFile(opts)
	if err != nil {
		t.Fatalf("FindConfigFile: %v", err)
	}
	if got != want {
		t.Errorf("found %q, want %q", got, want)
	}
	if n := len(Candidates(opts)); n != 4 {
		t.Errorf("Candidates() = %d entries, want 4", n)
	}
}
