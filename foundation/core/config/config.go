// File: config.go
// Title: Configuration File Decoding
// Description: Format detection and decoding of TOML and YAML configuration
//              into typed structs, with optional environment expansion.
// Version: v0.2.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.2.0: LoadInto and Decode for typed configuration

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/knuth/foundation/core/error"
)

// Format represents the configuration file format
type Format int

const (
	// FormatAuto detects the format from the file extension
	FormatAuto Format = iota

	// FormatTOML represents TOML format (default for unknown extensions)
	FormatTOML

	// FormatYAML represents YAML format
	FormatYAML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// ParseFormat converts a name such as "yaml" or ".yml" into a Format
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")) {
	case "", "auto":
		return FormatAuto, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatAuto, mdwerror.New(fmt.Sprintf("unsupported config format: %s", name)).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.ParseFormat")
	}
}

// LoadOptions defines options for loading configuration
type LoadOptions struct {
	Format    Format // File format (default: auto-detect)
	ExpandEnv bool   // Expand ${VAR} references before decoding
	Strict    bool   // Reject keys that do not map to a struct field
}

// DetectFormat determines the configuration format from a file extension
func DetectFormat(filePath string) Format {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// LoadInto reads the file at filePath and decodes it into v
func LoadInto(filePath string, v interface{}, options LoadOptions) error {
	if strings.TrimSpace(filePath) == "" {
		return mdwerror.New("config file path cannot be empty").
			WithCode(mdwerror.CodeMissingConfig).
			WithOperation("config.LoadInto")
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		code := mdwerror.CodeConfigError
		if os.IsNotExist(err) {
			code = mdwerror.CodeNotFound
		}
		return mdwerror.Wrap(err, "failed to read config file").
			WithCode(code).
			WithOperation("config.LoadInto").
			WithDetail("filePath", filePath)
	}

	format := options.Format
	if format == FormatAuto {
		format = DetectFormat(filePath)
	}
	options.Format = format

	if err := Decode(content, v, options); err != nil {
		return mdwerror.Wrap(err, "failed to parse config file").
			WithOperation("config.LoadInto").
			WithDetail("filePath", filePath)
	}
	return nil
}

// Decode decodes raw configuration content into v. FormatAuto is treated
// as TOML.
func Decode(content []byte, v interface{}, options LoadOptions) error {
	if options.ExpandEnv {
		content = []byte(os.ExpandEnv(string(content)))
	}

	switch options.Format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(options.Strict)
		if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
			return mdwerror.Wrap(err, "YAML parse error").
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("config.Decode")
		}
	default:
		md, err := toml.Decode(string(content), v)
		if err != nil {
			return mdwerror.Wrap(err, "TOML parse error").
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("config.Decode")
		}
		if undecoded := md.Undecoded(); options.Strict && len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return mdwerror.New(fmt.Sprintf("unknown config keys: %s", strings.Join(keys, ", "))).
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("config.Decode")
		}
	}
	return nil
}
