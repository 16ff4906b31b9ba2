// Package error provides structured error handling for the knuth platform.
//
// Package: error
// Title: knuth Error Handling
// Description: Structured errors with codes, severity, details and operation
//              context. Domain errors from the typesetting engine (parse and
//              layout errors) expose a Code method so they can be classified
//              with the same helpers as *Error values.
// Version: v0.2.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.2.0: Math markup codes, Coder interface for domain errors
//
// Usage:
//
//	err := error.New("sqlite open failed").
//		WithCode(error.CodeDatabaseError).
//		WithDetail("path", path)
//
//	if error.HasCode(err, error.CodeDoubleSuperscript) {
//		// report the offending position to the user
//	}
package error
