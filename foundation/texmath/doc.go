// Package texmath typesets math markup into backend-agnostic box trees.
//
// Package: texmath
// Title: texmath Engine
// Description: Entry points tying together the parser and the layout
//              builder. ParseToAST returns the syntax tree of a markup
//              string; RenderToBoxTree parses and lays it out in the
//              engine's default style. Both fail atomically with a
//              *parser.ParseError or a *layout.BuildError, whose codes are
//              readable through the core error helpers.
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial engine
//
// Usage:
//
//	engine, err := texmath.New(texmath.Options{DefaultStyle: "display"})
//	if err != nil {
//		return err
//	}
//	tree, err := engine.RenderToBoxTree(`x^2 + \frac{1}{y}`)
//	if mdwerror.HasCode(err, mdwerror.CodeDoubleSuperscript) {
//		// report the markup error to the user
//	}
package texmath
