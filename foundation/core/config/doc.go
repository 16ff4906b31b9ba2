// Package config loads configuration files into typed structs.
//
// Package: config
// Title: knuth Configuration Loading
// Description: Decodes TOML (BurntSushi/toml) or YAML (yaml.v3) files into
//              caller-provided structs. The format is detected from the file
//              extension unless given explicitly; ${VAR} references in the
//              raw file are expanded from the environment before decoding.
//              Discovery searches a list of directories and base names.
// Version: v0.2.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.2.0: Typed decoding replaces the key/value store
//
// Usage:
//
//	var cfg AppConfig
//	if err := config.LoadInto("knuth.toml", &cfg, config.LoadOptions{ExpandEnv: true}); err != nil {
//		return err
//	}
package config
