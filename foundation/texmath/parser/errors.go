// File: errors.go
// Title: texmath Parse Errors
// Description: ParseError carries the classification code, the offending
//              token and its position. All parse errors are fatal; the
//              parser never returns a partial tree.
// Version: v0.1.1
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial error types
// - 2026-10-19 v0.1.1: Metadata for transports

package parser

import (
	"fmt"
	"strconv"

	mdwerror "github.com/msto63/knuth/foundation/core/error"
)

// Argument roles reported by MissingArgument errors
const (
	ArgumentGroup       = "argument"
	ArgumentNumerator   = "numerator"
	ArgumentDenominator = "denominator"
)

// ParseError is a fatal parse failure
type ParseError struct {
	code     mdwerror.Code
	Message  string
	Position int
	Token    string // type of the offending token
	Expected string // TypeMismatch only
	Command  string // MissingArgument only
	Argument string // MissingArgument only
}

// Code returns the classification code
func (pe *ParseError) Code() mdwerror.Code {
	return pe.code
}

func (pe *ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d: %s", pe.Position, pe.Message)
}

// Metadata returns the populated fields as strings for transports
func (pe *ParseError) Metadata() map[string]string {
	md := map[string]string{
		"position": strconv.Itoa(pe.Position),
		"token":    pe.Token,
	}
	for k, v := range map[string]string{"expected": pe.Expected, "command": pe.Command, "argument": pe.Argument} {
		if v != "" {
			md[k] = v
		}
	}
	return md
}

func newTypeMismatch(expected string, got Token) *ParseError {
	return &ParseError{
		code:     mdwerror.CodeTypeMismatch,
		Message:  fmt.Sprintf("expected '%s', got '%s'", expected, got.Type),
		Position: got.Position,
		Token:    got.Type,
		Expected: expected,
	}
}

func newDoubleScript(tok Token) *ParseError {
	if tok.Type == TypeSubscript {
		return &ParseError{
			code:     mdwerror.CodeDoubleSubscript,
			Message:  "double subscript",
			Position: tok.Position,
			Token:    tok.Type,
		}
	}
	return &ParseError{
		code:     mdwerror.CodeDoubleSuperscript,
		Message:  "double superscript",
		Position: tok.Position,
		Token:    tok.Type,
	}
}

func newMissingArgument(command Token, argument string, at int) *ParseError {
	return &ParseError{
		code:     mdwerror.CodeMissingArgument,
		Message:  fmt.Sprintf("expected %s after '%s'", argument, command.Text),
		Position: at,
		Token:    command.Type,
		Command:  command.Text,
		Argument: argument,
	}
}

func newUnexpectedCharacter(char string, pos int) *ParseError {
	return &ParseError{
		code:     mdwerror.CodeUnexpectedCharacter,
		Message:  fmt.Sprintf("unexpected character '%s'", char),
		Position: pos,
		Token:    char,
	}
}

func newInputTooLong(length, limit int) *ParseError {
	return &ParseError{
		code:     mdwerror.CodeInputTooLong,
		Message:  fmt.Sprintf("input exceeds maximum length: %d > %d", length, limit),
		Position: limit,
	}
}

func newRecursionLimit(pos, limit int) *ParseError {
	return &ParseError{
		code:     mdwerror.CodeRecursionLimit,
		Message:  fmt.Sprintf("groups nested deeper than %d", limit),
		Position: pos,
	}
}
