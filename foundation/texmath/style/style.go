// Package style implements the typesetting styles and the option context
// carried through layout.
//
// Package: style
// Title: texmath Styles and Options
// Description: The eight style variants (display, text, script and
//              scriptscript, each plain or cramped) with their derivation
//              tables for superscripts, subscripts and fraction parts, and the
//              immutable Options value combining a style with a color.
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial style table
package style

import (
	"fmt"
	"strings"
)

// Style is one of the eight style variants. The zero value is Display.
type Style int

// Style identifiers; each cramped variant follows its plain variant.
const (
	Display Style = iota
	DisplayCramped
	Text
	TextCramped
	Script
	ScriptCramped
	ScriptScript
	ScriptScriptCramped
)

type styleData struct {
	name       string
	size       int
	multiplier float64
	cramped    bool
}

var table = [...]styleData{
	Display:             {"display", 0, 1.0, false},
	DisplayCramped:      {"display", 0, 1.0, true},
	Text:                {"text", 1, 1.0, false},
	TextCramped:         {"text", 1, 1.0, true},
	Script:              {"script", 2, 0.66, false},
	ScriptCramped:       {"script", 2, 0.66, true},
	ScriptScript:        {"scriptscript", 3, 0.5, false},
	ScriptScriptCramped: {"scriptscript", 3, 0.5, true},
}

// Derivation tables, indexed by the current style
var (
	supTable     = [...]Style{Script, ScriptCramped, Script, ScriptCramped, ScriptScript, ScriptScriptCramped, ScriptScript, ScriptScriptCramped}
	subTable     = [...]Style{ScriptCramped, ScriptCramped, ScriptCramped, ScriptCramped, ScriptScriptCramped, ScriptScriptCramped, ScriptScriptCramped, ScriptScriptCramped}
	fracNumTable = [...]Style{Text, TextCramped, Script, ScriptCramped, ScriptScript, ScriptScriptCramped, ScriptScript, ScriptScriptCramped}
	fracDenTable = [...]Style{TextCramped, TextCramped, ScriptCramped, ScriptCramped, ScriptScriptCramped, ScriptScriptCramped, ScriptScriptCramped, ScriptScriptCramped}
)

// sizeNames are the class names per size; display carries "textstyle" too
var sizeNames = [...]string{"displaystyle textstyle", "textstyle", "scriptstyle", "scriptscriptstyle"}

// Valid reports whether s is one of the eight variants
func (s Style) Valid() bool {
	return s >= Display && s <= ScriptScriptCramped
}

// Sup returns the style of a superscript set in s
func (s Style) Sup() Style { return supTable[s] }

// Sub returns the style of a subscript set in s
func (s Style) Sub() Style { return subTable[s] }

// FracNum returns the style of a fraction numerator set in s
func (s Style) FracNum() Style { return fracNumTable[s] }

// FracDen returns the style of a fraction denominator set in s
func (s Style) FracDen() Style { return fracDenTable[s] }

// Cramp returns the cramped variant of s
func (s Style) Cramp() Style {
	if table[s].cramped {
		return s
	}
	return s + 1
}

// Size returns the size group: 0 display, 1 text, 2 script, 3 scriptscript
func (s Style) Size() int { return table[s].size }

// SizeMultiplier returns the font scale of s relative to text size
func (s Style) SizeMultiplier() float64 { return table[s].multiplier }

// IsCramped reports whether superscripts are lowered in s
func (s Style) IsCramped() bool { return table[s].cramped }

// IsDisplay reports whether s is the uncramped display style
func (s Style) IsDisplay() bool { return s == Display }

// Class returns the class string of s, e.g. "textstyle uncramped"
func (s Style) Class() string {
	if table[s].cramped {
		return sizeNames[table[s].size] + " cramped"
	}
	return sizeNames[table[s].size] + " uncramped"
}

// String returns a short name such as "text" or "script'"
func (s Style) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Style(%d)", int(s))
	}
	if table[s].cramped {
		return table[s].name + "'"
	}
	return table[s].name
}

// Parse converts a configuration name into a style. A trailing apostrophe
// or the suffix "-cramped" selects the cramped variant.
func Parse(name string) (Style, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	cramped := false
	switch {
	case strings.HasSuffix(n, "'"):
		n, cramped = strings.TrimSuffix(n, "'"), true
	case strings.HasSuffix(n, "-cramped"):
		n, cramped = strings.TrimSuffix(n, "-cramped"), true
	}
	var s Style
	switch n {
	case "display", "d":
		s = Display
	case "text", "t", "":
		s = Text
	case "script", "s":
		s = Script
	case "scriptscript", "ss":
		s = ScriptScript
	default:
		return Text, fmt.Errorf("unknown style %q", name)
	}
	if cramped {
		s = s.Cramp()
	}
	return s, nil
}
