// File: errors.go
// Title: texmath Layout Errors
// Description: BuildError reports a node the builder cannot lay out.
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial error types

package layout

import (
	"fmt"

	mdwerror "github.com/msto63/knuth/foundation/core/error"
	"github.com/msto63/knuth/foundation/texmath/ast"
)

// BuildError is a fatal layout failure
type BuildError struct {
	code    mdwerror.Code
	Kind    ast.Kind
	Message string
}

// Code returns the classification code
func (e *BuildError) Code() mdwerror.Code {
	return e.code
}

func (e *BuildError) Error() string {
	if e.Kind == "" {
		return "build error: " + e.Message
	}
	return fmt.Sprintf("build error in %s: %s", e.Kind, e.Message)
}

// Metadata returns the node kind for transports
func (e *BuildError) Metadata() map[string]string {
	if e.Kind == "" {
		return nil
	}
	return map[string]string{"kind": string(e.Kind)}
}

func newUnknownKind(kind ast.Kind, detail string) *BuildError {
	msg := fmt.Sprintf("got group of unknown type '%s'", kind)
	if detail != "" {
		msg += " (" + detail + ")"
	}
	return &BuildError{code: mdwerror.CodeUnknownGroupKind, Kind: kind, Message: msg}
}

func newUnsupported(kind ast.Kind, message string) *BuildError {
	return &BuildError{code: mdwerror.CodeUnsupportedConstruct, Kind: kind, Message: message}
}

func newTooDeep(kind ast.Kind, limit int) *BuildError {
	return &BuildError{
		code:    mdwerror.CodeRecursionLimit,
		Kind:    kind,
		Message: fmt.Sprintf("tree nested deeper than %d", limit),
	}
}
