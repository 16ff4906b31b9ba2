// File: severity.go
// Title: Error Severity Levels
// Description: Severity levels used for log levels and alerting decisions.
// Version: v0.2.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.2.0: Severity mapping for math markup codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow covers rejected user input such as malformed markup
	SeverityLow Severity = iota

	// SeverityMedium covers failures with a workaround
	SeverityMedium

	// SeverityHigh covers failures of a backing resource (database, listener)
	SeverityHigh

	// SeverityCritical makes the service unusable
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines the default severity for a code
func GetSeverityFromCode(code Code) Severity {
	switch {
	case code == CodeServiceUnavailable:
		return SeverityCritical
	case code == CodeDatabaseError, code == CodeConnectionFailed, code == CodeServiceInitialization:
		return SeverityHigh
	case code == CodeUnknownGroupKind, code == CodeInternal:
		// a parser/builder contract violation is a bug, not bad input
		return SeverityHigh
	case code.IsUserError(), code == CodeNotFound:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
