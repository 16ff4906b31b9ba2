// File: codes.go
// Title: Error Code Definitions
// Description: Standardized error codes for the knuth platform. Math markup
//              codes classify parser and layout failures, generic codes are
//              used by the services around the engine.
// Version: v0.2.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.2.0: Math markup codes replace the command language codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"

	// Math markup: parser
	CodeTypeMismatch        Code = "TYPE_MISMATCH"
	CodeDoubleSuperscript   Code = "DOUBLE_SUPERSCRIPT"
	CodeDoubleSubscript     Code = "DOUBLE_SUBSCRIPT"
	CodeMissingArgument     Code = "MISSING_ARGUMENT"
	CodeUnexpectedCharacter Code = "UNEXPECTED_CHARACTER"
	CodeInputTooLong        Code = "INPUT_TOO_LONG"
	CodeRecursionLimit      Code = "RECURSION_LIMIT"

	// Math markup: layout
	CodeUnknownGroupKind     Code = "UNKNOWN_GROUP_KIND"
	CodeUnsupportedConstruct Code = "UNSUPPORTED_CONSTRUCT"

	// Storage
	CodeDatabaseError    Code = "DATABASE_ERROR"
	CodeConnectionFailed Code = "CONNECTION_FAILED"

	// Service and network
	CodeServiceUnavailable    Code = "SERVICE_UNAVAILABLE"
	CodeServiceInitialization Code = "SERVICE_INITIALIZATION"
	CodeNetworkError          Code = "NETWORK_ERROR"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeMissingConfig Code = "MISSING_CONFIG"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeTimeout,
		CodeTypeMismatch, CodeDoubleSuperscript, CodeDoubleSubscript, CodeMissingArgument,
		CodeUnexpectedCharacter, CodeInputTooLong, CodeRecursionLimit,
		CodeUnknownGroupKind, CodeUnsupportedConstruct,
		CodeDatabaseError, CodeConnectionFailed,
		CodeServiceUnavailable, CodeServiceInitialization, CodeNetworkError,
		CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeTypeMismatch, CodeDoubleSuperscript, CodeDoubleSubscript, CodeMissingArgument,
		CodeUnexpectedCharacter, CodeInputTooLong, CodeRecursionLimit:
		return "syntax"
	case CodeUnknownGroupKind, CodeUnsupportedConstruct:
		return "layout"
	case CodeDatabaseError, CodeConnectionFailed:
		return "database"
	case CodeServiceUnavailable, CodeServiceInitialization, CodeNetworkError:
		return "service"
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return "configuration"
	default:
		return "generic"
	}
}

// IsUserError reports whether the code describes a problem with the
// submitted markup rather than with the platform.
func (c Code) IsUserError() bool {
	switch c.Category() {
	case "syntax":
		return true
	}
	return c == CodeInvalidInput || c == CodeUnsupportedConstruct
}

// HTTPStatus returns the appropriate HTTP status code for this error code
func (c Code) HTTPStatus() int {
	switch {
	case c == CodeNotFound:
		return 404
	case c == CodeInputTooLong:
		return 413
	case c.IsUserError():
		return 400
	case c == CodeTimeout:
		return 408
	case c == CodeServiceUnavailable, c == CodeDatabaseError, c == CodeConnectionFailed:
		return 503
	default:
		return 500
	}
}
