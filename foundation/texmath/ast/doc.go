// Package ast defines the abstract syntax tree of the math markup language.
//
// Package: ast
// Title: texmath AST
// Description: The closed set of node kinds produced by the parser. The Node
//              interface is sealed; consumers dispatch through Visitor, which
//              has one method per concrete node type, so a new node type is a
//              compile error in every visitor rather than a runtime fallback.
//              Table-driven symbols share the Symbol type and carry their
//              category in Class.
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial node set and visitors
package ast
