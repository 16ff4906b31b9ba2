// File: symbols.go
// Title: texmath Symbol Rules
// Description: Layout of table-driven symbols: ordinary glyphs, operators,
//              relations, delimiters, punctuation, named functions and
//              spacing. Includes the reclassification of binary operators
//              that have no left operand.
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial symbol rules

package layout

import (
	"strings"

	"github.com/msto63/knuth/foundation/texmath/ast"
	"github.com/msto63/knuth/foundation/texmath/boxtree"
	"github.com/msto63/knuth/foundation/texmath/metrics"
)

// symbolClasses maps symbol kinds drawn as a single classed glyph
var symbolClasses = map[ast.Kind]string{
	ast.KindTextOrd: "mord",
	ast.KindRel:     "mrel",
	ast.KindAmsRel:  "mrel",
	ast.KindOpen:    "mopen",
	ast.KindClose:   "mclose",
	ast.KindPunct:   "mpunct",
}

// spacingClasses maps spacing commands onto spacer classes
var spacingClasses = map[string]string{
	`\qquad`: "qquad",
	`\quad`:  "quad",
	`\;`:     "thickspace",
	`\:`:     "mediumspace",
	`\,`:     "thinspace",
	`\!`:     "negativethinspace",
}

// BinAsOrd reports whether a binary operator whose previous sibling has
// the given render kind is drawn as an ordinary symbol. The check is on
// the literal kind, so a preceding amsrel keeps the operator binary.
func BinAsOrd(prev ast.Kind) bool {
	switch prev {
	case noPrev, ast.KindBin, ast.KindOpen, ast.KindRel:
		return true
	}
	return false
}

// glyph is the text leaf of a literal value with its metrics
func glyph(value string) *boxtree.TextBox {
	return boxtree.NewText(metrics.Glyph(value), metrics.Height(value), metrics.Depth(value))
}

func (g *groupBuilder) symbol(n *ast.Symbol) (interface{}, error) {
	color := g.opts.Color()

	switch n.Class {
	case ast.KindMathOrd:
		italic := boxtree.NewBox([]string{"mathit"}, []boxtree.Node{glyph(n.Value)})
		return result{
			node: boxtree.NewBox(boxtree.Classes("mord", color), []boxtree.Node{italic}),
			kind: n.Class,
		}, nil

	case ast.KindBin:
		class, kind := "mbin", ast.KindBin
		if BinAsOrd(g.prev) {
			class, kind = "mord", ast.KindOrd
		}
		return result{
			node: boxtree.NewBox(boxtree.Classes(class, color), []boxtree.Node{glyph(n.Value)}),
			kind: kind,
		}, nil

	case ast.KindNamedFn:
		name := strings.TrimPrefix(n.Value, `\`)
		return result{
			node: boxtree.NewBox(boxtree.Classes("mop", color), []boxtree.Node{glyph(name)}),
			kind: n.Class,
		}, nil

	case ast.KindSpacing:
		return g.spacing(n)
	}

	class, ok := symbolClasses[n.Class]
	if !ok {
		return nil, newUnknownKind(n.Class, "")
	}
	return result{
		node: boxtree.NewBox(boxtree.Classes(class, color), []boxtree.Node{glyph(n.Value)}),
		kind: n.Class,
	}, nil
}

// spacing draws the two word-space commands as a space glyph and every
// other spacing command as an empty spacer with a fixed width
func (g *groupBuilder) spacing(n *ast.Symbol) (interface{}, error) {
	if n.Value == `\ ` || n.Value == `\space` {
		return result{
			node: boxtree.NewBox(boxtree.Classes("mord mspace"), []boxtree.Node{glyph(n.Value)}),
			kind: n.Class,
		}, nil
	}

	class, ok := spacingClasses[n.Value]
	if !ok {
		return nil, newUnknownKind(n.Class, "spacing command "+n.Value)
	}
	width, _ := metrics.SpaceWidth(class)
	return result{
		node: boxtree.NewBox(boxtree.Classes("mord mspace", class), nil, boxtree.WithWidth(width)),
		kind: n.Class,
	}, nil
}
