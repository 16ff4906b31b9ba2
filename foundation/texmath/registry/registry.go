// File: registry.go
// Title: texmath Command Registry
// Description: Immutable command tables and the Registry accessor type.
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial tables

package registry

import (
	"sort"
	"strings"

	"github.com/msto63/knuth/foundation/texmath/ast"
)

// Command names of the structural functions
const (
	CommandLlap  = `\llap`
	CommandRlap  = `\rlap`
	CommandSqrt  = `\sqrt`
	CommandLogo  = `\KaTeX`
	CommandFrac  = `\frac`
	CommandDFrac = `\dfrac`
	CommandTFrac = `\tfrac`
)

// symbolGroups lists, per category, the token types that produce a symbol of
// that category. Generic lexer categories are listed first.
var symbolGroups = []struct {
	class  ast.Kind
	tokens []string
}{
	{ast.KindTextOrd, []string{
		"textord", `\$`, `\%`, `\angle`, `\infty`, `\prime`, `\triangle`,
		`\Gamma`, `\Delta`, `\Theta`, `\Lambda`, `\Xi`, `\Pi`, `\Sigma`,
		`\Upsilon`, `\Phi`, `\Psi`, `\Omega`,
	}},
	{ast.KindMathOrd, []string{
		"mathord", `\alpha`, `\beta`, `\gamma`, `\delta`, `\epsilon`, `\zeta`,
		`\eta`, `\theta`, `\iota`, `\kappa`, `\lambda`, `\mu`, `\nu`, `\xi`,
		`\omicron`, `\pi`, `\rho`, `\sigma`, `\tau`, `\upsilon`, `\phi`, `\chi`,
		`\psi`, `\omega`, `\varepsilon`, `\vartheta`, `\varpi`, `\varrho`,
		`\varsigma`, `\varphi`,
	}},
	{ast.KindBin, []string{"bin", `\cdot`, `\circ`, `\div`, `\pm`, `\times`}},
	{ast.KindOpen, []string{"open", `\langle`, `\lvert`}},
	{ast.KindClose, []string{"close", `\rangle`, `\rvert`}},
	{ast.KindRel, []string{
		"rel", `\approx`, `\cong`, `\ge`, `\geq`, `\gets`, `\in`, `\leftarrow`,
		`\le`, `\leq`, `\ne`, `\neq`, `\rightarrow`, `\to`,
	}},
	{ast.KindAmsRel, []string{`\ngeq`, `\nleq`}},
	{ast.KindSpacing, []string{`\!`, `\ `, `\,`, `\:`, `\;`, `\qquad`, `\quad`, `\space`}},
	{ast.KindPunct, []string{"punct", `\colon`}},
	{ast.KindNamedFn, []string{
		`\arcsin`, `\arccos`, `\arctan`, `\arg`, `\cos`, `\cosh`, `\cot`,
		`\coth`, `\csc`, `\deg`, `\dim`, `\exp`, `\hom`, `\ker`, `\lg`, `\ln`,
		`\log`, `\sec`, `\sin`, `\sinh`, `\tan`, `\tanh`,
	}},
}

var colorCommands = []string{`\blue`, `\orange`, `\pink`, `\red`, `\green`, `\gray`, `\purple`}

// sizeCommands is ordered from smallest to largest; the 1-based position is
// the size index.
var sizeCommands = []string{
	`\tiny`, `\scriptsize`, `\footnotesize`, `\small`, `\normalsize`,
	`\large`, `\Large`, `\LARGE`, `\huge`, `\Huge`,
}

var fracCommands = []string{CommandDFrac, CommandFrac, CommandTFrac}

// Registry is a read-only view of the command tables
type Registry struct {
	symbols map[string]ast.Kind
	colors  map[string]string
	sizes   map[string]int
	fracs   map[string]string
}

var defaultRegistry = build()

// Default returns the process-wide registry
func Default() *Registry {
	return defaultRegistry
}

func build() *Registry {
	r := &Registry{
		symbols: make(map[string]ast.Kind),
		colors:  make(map[string]string, len(colorCommands)),
		sizes:   make(map[string]int, len(sizeCommands)),
		fracs:   make(map[string]string, len(fracCommands)),
	}
	for _, group := range symbolGroups {
		for _, token := range group.tokens {
			r.symbols[token] = group.class
		}
	}
	for _, cmd := range colorCommands {
		r.colors[cmd] = stripEscape(cmd)
	}
	for i, cmd := range sizeCommands {
		r.sizes[cmd] = i + 1
	}
	for _, cmd := range fracCommands {
		r.fracs[cmd] = stripEscape(cmd)
	}
	return r
}

func stripEscape(cmd string) string {
	return strings.TrimPrefix(cmd, `\`)
}

// Symbol returns the symbol category for a token type
func (r *Registry) Symbol(tokenType string) (ast.Kind, bool) {
	k, ok := r.symbols[tokenType]
	return k, ok
}

// Color returns the color name for a color command, e.g. "blue" for `\blue`
func (r *Registry) Color(tokenType string) (string, bool) {
	c, ok := r.colors[tokenType]
	return c, ok
}

// Size returns the 1-based size index of a size command
func (r *Registry) Size(tokenType string) (int, bool) {
	s, ok := r.sizes[tokenType]
	return s, ok
}

// SizeCommand returns the command for a 1-based size index
func (r *Registry) SizeCommand(index int) (string, bool) {
	if index < 1 || index > len(sizeCommands) {
		return "", false
	}
	return sizeCommands[index-1], true
}

// Fraction returns the variant name of a fraction command
func (r *Registry) Fraction(tokenType string) (string, bool) {
	v, ok := r.fracs[tokenType]
	return v, ok
}

// Lap returns the node kind for the overlap commands
func (r *Registry) Lap(tokenType string) (ast.Kind, bool) {
	switch tokenType {
	case CommandLlap:
		return ast.KindLlap, true
	case CommandRlap:
		return ast.KindRlap, true
	}
	return "", false
}

// Entry describes one command for listings
type Entry struct {
	Command  string `json:"command" yaml:"command"`
	Category string `json:"category" yaml:"category"`
	Args     int    `json:"args" yaml:"args"`
}

// Entries lists every command (generic lexer categories excluded), sorted by
// category and then by command.
func (r *Registry) Entries() []Entry {
	var entries []Entry
	for token, class := range r.symbols {
		if !strings.HasPrefix(token, `\`) {
			continue
		}
		entries = append(entries, Entry{Command: token, Category: string(class)})
	}
	for cmd := range r.colors {
		entries = append(entries, Entry{Command: cmd, Category: string(ast.KindColor), Args: 1})
	}
	for cmd := range r.sizes {
		entries = append(entries, Entry{Command: cmd, Category: string(ast.KindSizing), Args: 1})
	}
	for cmd := range r.fracs {
		entries = append(entries, Entry{Command: cmd, Category: string(ast.KindFrac), Args: 2})
	}
	entries = append(entries,
		Entry{Command: CommandLlap, Category: string(ast.KindLlap), Args: 1},
		Entry{Command: CommandRlap, Category: string(ast.KindRlap), Args: 1},
		Entry{Command: CommandSqrt, Category: string(ast.KindSqrt), Args: 1},
		Entry{Command: CommandLogo, Category: string(ast.KindLogo)},
	)
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Category != entries[j].Category {
			return entries[i].Category < entries[j].Category
		}
		return entries[i].Command < entries[j].Command
	})
	return entries
}

// Categories returns the distinct categories of Entries in sorted order
func (r *Registry) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, e := range r.Entries() {
		if !seen[e.Category] {
			seen[e.Category] = true
			out = append(out, e.Category)
		}
	}
	return out
}
