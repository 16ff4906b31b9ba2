package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	mdwerror "github.com/msto63/knuth/foundation/core/error"
	"github.com/msto63/knuth/foundation/texmath/parser"
	"github.com/msto63/knuth/internal/knuth/service"
)

// errorPosition returns the byte offset a parse error points at. Remote
// errors carry it as the "position" detail.
func errorPosition(err error) (int, bool) {
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		return pe.Position, true
	}
	var e *mdwerror.Error
	if errors.As(err, &e) {
		if v, ok := e.Details()["position"]; ok {
			if pos, convErr := strconv.Atoi(fmt.Sprint(v)); convErr == nil {
				return pos, true
			}
		}
	}
	return 0, false
}

// printPosition shows input with a caret under the offending character.
// Positions refer to the normalized input, so that is what gets printed.
func printPosition(w io.Writer, input string, err error) {
	input = service.Normalize(input)
	pos, ok := errorPosition(err)
	if !ok || pos < 0 || pos > len(input) || strings.Contains(input, "\n") {
		return
	}
	fmt.Fprintf(w, "  %s\n  %s^\n", input, strings.Repeat(" ", utf8.RuneCountInString(input[:pos])))
}
