// File: parser.go
// Title: texmath Recursive Descent Parser
// Description: Converts math markup into AST nodes. Every production takes
//              an explicit token position and returns the position after
//              what it consumed, so productions can probe a position and
//              discard the attempt without undoing any state. A production
//              that does not match returns a nil node.
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial parser implementation

package parser

import (
	mdwlog "github.com/msto63/knuth/foundation/core/log"
	"github.com/msto63/knuth/foundation/texmath/ast"
	"github.com/msto63/knuth/foundation/texmath/registry"
)

const (
	// DefaultMaxInputLength is the input limit in bytes
	DefaultMaxInputLength = 4096

	// DefaultMaxDepth bounds the nesting of groups and command arguments
	DefaultMaxDepth = 64
)

// Options configures parser behavior
type Options struct {
	Logger         *mdwlog.Logger
	MaxInputLength int
	MaxDepth       int
	Registry       *registry.Registry
}

// Parser implements recursive descent parsing for math markup. A Parser is
// safe for concurrent use.
type Parser struct {
	logger   *mdwlog.Logger
	registry *registry.Registry
	options  Options
}

// New creates a new parser with the given options
func New(opts Options) (*Parser, error) {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.MaxInputLength <= 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.Registry == nil {
		opts.Registry = registry.Default()
	}

	return &Parser{
		logger:   opts.Logger.WithField("component", "texmath-parser"),
		registry: opts.Registry,
		options:  opts,
	}, nil
}

// Parse parses a markup string into its top-level expression
func (p *Parser) Parse(input string) ([]ast.Node, error) {
	if len(input) > p.options.MaxInputLength {
		return nil, newInputTooLong(len(input), p.options.MaxInputLength)
	}

	p.logger.Debug("Parsing markup", mdwlog.Fields{"length": len(input)})

	nodes, err := p.ParseTokens(NewLexer(input))
	if err != nil {
		p.logger.Debug("Parsing failed", mdwlog.Fields{"error": err.Error()})
		return nil, err
	}

	p.logger.Debug("Parsing completed", mdwlog.Fields{"nodes": len(nodes)})
	return nodes, nil
}

// ParseTokens parses the tokens of src from position zero. The whole source
// must be consumed.
func (p *Parser) ParseTokens(src TokenSource) ([]ast.Node, error) {
	nodes, pos, err := p.parseExpression(src, 0, 0)
	if err != nil {
		return nil, err
	}

	tok, err := src.Lex(pos)
	if err != nil {
		return nil, err
	}
	if tok.Type != TypeEOF {
		return nil, newTypeMismatch(TypeEOF, tok)
	}
	return nodes, nil
}

// parseExpression parses a list of atoms
func (p *Parser) parseExpression(src TokenSource, pos, depth int) ([]ast.Node, int, error) {
	var expression []ast.Node
	for {
		atom, next, err := p.parseAtom(src, pos, depth)
		if err != nil {
			return nil, pos, err
		}
		if atom == nil {
			return expression, pos, nil
		}
		expression = append(expression, atom)
		pos = next
	}
}

// parseAtom parses an optional nucleus followed by at most one superscript
// and at most one subscript in either order
func (p *Parser) parseAtom(src TokenSource, pos, depth int) (ast.Node, int, error) {
	nucleus, next, err := p.parseGroup(src, pos, depth)
	if err != nil {
		return nil, pos, err
	}

	start := -1
	if nucleus != nil {
		start = nucleus.Pos()
	} else {
		next = pos
	}

	var sup, sub ast.Node
	for {
		tok, err := src.Lex(next)
		if err != nil {
			return nil, pos, err
		}
		if start < 0 {
			start = tok.Position
		}

		var script ast.Node
		switch tok.Type {
		case TypeSuperscript, TypePrime:
			if script, next, err = p.parseSuperscript(src, tok, depth); err != nil {
				return nil, pos, err
			}
			if sup != nil {
				return nil, pos, newDoubleScript(tok)
			}
			sup = script
			continue
		case TypeSubscript:
			if script, next, err = p.parseSubscript(src, tok, depth); err != nil {
				return nil, pos, err
			}
			if sub != nil {
				return nil, pos, newDoubleScript(tok)
			}
			sub = script
			continue
		}
		break
	}

	if sup == nil && sub == nil {
		return nucleus, next, nil
	}
	return &ast.SupSub{Base: nucleus, Sup: sup, Sub: sub, Start: start}, next, nil
}

// parseSuperscript parses "^" and its group, or a prime. The prime stands
// for a fixed symbol and consumes no group.
func (p *Parser) parseSuperscript(src TokenSource, tok Token, depth int) (ast.Node, int, error) {
	if tok.Type == TypePrime {
		return &ast.Symbol{Class: ast.KindTextOrd, Value: `\prime`, Start: tok.Position}, tok.Next, nil
	}
	return p.parseScriptGroup(src, tok, depth)
}

// parseSubscript parses "_" and its group
func (p *Parser) parseSubscript(src TokenSource, tok Token, depth int) (ast.Node, int, error) {
	return p.parseScriptGroup(src, tok, depth)
}

// parseScriptGroup parses the required group after a script marker. A
// marker directly followed by a marker of the same kind, as in "x^^2", is
// reported as a double script.
func (p *Parser) parseScriptGroup(src TokenSource, marker Token, depth int) (ast.Node, int, error) {
	group, next, err := p.parseGroup(src, marker.Next, depth+1)
	if err != nil {
		return nil, marker.Position, err
	}
	if group != nil {
		return group, next, nil
	}

	following, err := src.Lex(marker.Next)
	if err != nil {
		return nil, marker.Position, err
	}
	if following.Type == marker.Type {
		return nil, marker.Position, newDoubleScript(following)
	}
	return nil, marker.Position, newMissingArgument(marker, ArgumentGroup, following.Position)
}

// parseGroup parses a braced expression or a single nucleus
func (p *Parser) parseGroup(src TokenSource, pos, depth int) (ast.Node, int, error) {
	tok, err := src.Lex(pos)
	if err != nil {
		return nil, pos, err
	}
	if depth > p.options.MaxDepth {
		return nil, pos, newRecursionLimit(tok.Position, p.options.MaxDepth)
	}

	if tok.Type != TypeLeftBrace {
		return p.parseNucleus(src, tok, depth)
	}

	body, next, err := p.parseExpression(src, tok.Next, depth+1)
	if err != nil {
		return nil, pos, err
	}
	closing, err := src.Lex(next)
	if err != nil {
		return nil, pos, err
	}
	if closing.Type != TypeRightBrace {
		return nil, pos, newTypeMismatch(TypeRightBrace, closing)
	}
	return &ast.OrdGroup{Body: body, Start: tok.Position}, closing.Next, nil
}

// parseNucleus parses a function with its arguments or a symbol. Tokens
// that start neither return a nil node.
func (p *Parser) parseNucleus(src TokenSource, tok Token, depth int) (ast.Node, int, error) {
	reg := p.registry

	if color, ok := reg.Color(tok.Type); ok {
		arg, next, err := p.parseArgument(src, tok, tok.Next, ArgumentGroup, depth)
		if err != nil {
			return nil, tok.Position, err
		}
		body := []ast.Node{arg}
		if group, ok := arg.(*ast.OrdGroup); ok {
			body = group.Body
		}
		return &ast.Color{Color: color, Body: body, Start: tok.Position}, next, nil
	}

	if size, ok := reg.Size(tok.Type); ok {
		arg, next, err := p.parseArgument(src, tok, tok.Next, ArgumentGroup, depth)
		if err != nil {
			return nil, tok.Position, err
		}
		return &ast.Sizing{Size: size, Body: arg, Start: tok.Position}, next, nil
	}

	if side, ok := reg.Lap(tok.Type); ok {
		arg, next, err := p.parseArgument(src, tok, tok.Next, ArgumentGroup, depth)
		if err != nil {
			return nil, tok.Position, err
		}
		return &ast.Lap{Side: side, Body: arg, Start: tok.Position}, next, nil
	}

	if variant, ok := reg.Fraction(tok.Type); ok {
		numer, next, err := p.parseArgument(src, tok, tok.Next, ArgumentNumerator, depth)
		if err != nil {
			return nil, tok.Position, err
		}
		denom, next, err := p.parseArgument(src, tok, next, ArgumentDenominator, depth)
		if err != nil {
			return nil, tok.Position, err
		}
		return &ast.Frac{Numer: numer, Denom: denom, Variant: variant, Start: tok.Position}, next, nil
	}

	switch tok.Type {
	case registry.CommandSqrt:
		arg, next, err := p.parseArgument(src, tok, tok.Next, ArgumentGroup, depth)
		if err != nil {
			return nil, tok.Position, err
		}
		return &ast.Sqrt{Body: arg, Start: tok.Position}, next, nil
	case registry.CommandLogo:
		return &ast.Logo{Start: tok.Position}, tok.Next, nil
	}

	if class, ok := reg.Symbol(tok.Type); ok {
		return &ast.Symbol{Class: class, Value: tok.Text, Start: tok.Position}, tok.Next, nil
	}

	return nil, tok.Position, nil
}

// parseArgument parses the required group at pos for command
func (p *Parser) parseArgument(src TokenSource, command Token, pos int, role string, depth int) (ast.Node, int, error) {
	group, next, err := p.parseGroup(src, pos, depth+1)
	if err != nil {
		return nil, pos, err
	}
	if group == nil {
		at := pos
		if tok, err := src.Lex(pos); err == nil {
			at = tok.Position
		}
		return nil, pos, newMissingArgument(command, role, at)
	}
	return group, next, nil
}
