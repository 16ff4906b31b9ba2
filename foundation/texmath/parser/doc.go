// Package parser turns math markup into AST nodes.
//
// Package: parser
// Title: texmath Parser
// Description: A position-addressed lexer and a recursive descent parser for
//              the markup grammar: expressions of atoms, atoms with optional
//              superscript and subscript, braced groups and nuclei (functions
//              with their arguments or table-driven symbols). Parsing either
//              returns the full tree or a *ParseError; there is no recovery
//              and no partial output.
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial lexer and parser
//
// Usage:
//
//	p, _ := parser.New(parser.Options{})
//	nodes, err := p.Parse(`\frac{a}{b}^2`)
//	if err != nil {
//		var perr *parser.ParseError
//		if errors.As(err, &perr) {
//			fmt.Println(perr.Code(), perr.Position)
//		}
//	}
package parser
