// Package log provides structured logging for the knuth platform.
//
// Package: log
// Title: knuth Structured Logging
// Description: Leveled, structured logging with persistent fields, four
//              output formats (json, text, console, logfmt) and timers for
//              operation durations. Loggers are immutable: WithField and
//              friends return derived loggers that share the output.
// Version: v0.2.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.2.0: Synchronous logger, deterministic field order
//
// Usage:
//
//	logger := log.NewWithConfig(log.Config{Level: log.LevelDebug, Format: log.FormatConsole})
//	logger = logger.WithField("component", "texmath-parser")
//	logger.Debug("parsing markup", log.Fields{"length": len(input)})
//
//	timer := logger.StartTimer("render")
//	defer timer.Stop()
package log
