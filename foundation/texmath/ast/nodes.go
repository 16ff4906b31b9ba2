// File: nodes.go
// Title: texmath AST Node Definitions
// Description: Node kinds and the concrete node types. Nodes are immutable
//              once the parser returns them.
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial node definitions

package ast

// Kind is the string tag of a node. The set is closed.
type Kind string

const (
	// Symbol categories, produced from the symbol table
	KindMathOrd Kind = "mathord"
	KindTextOrd Kind = "textord"
	KindBin     Kind = "bin"
	KindRel     Kind = "rel"
	KindOpen    Kind = "open"
	KindClose   Kind = "close"
	KindPunct   Kind = "punct"
	KindAmsRel  Kind = "amsrel"
	KindSpacing Kind = "spacing"
	KindNamedFn Kind = "namedfn"

	// Structural kinds
	KindSupSub   Kind = "supsub"
	KindOrdGroup Kind = "ordgroup"
	KindColor    Kind = "color"
	KindSizing   Kind = "sizing"
	KindLlap     Kind = "llap"
	KindRlap     Kind = "rlap"
	KindFrac     Kind = "frac"
	KindSqrt     Kind = "sqrt"
	KindLogo     Kind = "katex"

	// KindOrd is the render class of a binary operator without a left
	// operand. The parser never produces it.
	KindOrd Kind = "ord"
)

var symbolKinds = map[Kind]bool{
	KindMathOrd: true, KindTextOrd: true, KindBin: true, KindRel: true,
	KindOpen: true, KindClose: true, KindPunct: true, KindAmsRel: true,
	KindSpacing: true, KindNamedFn: true,
}

// IsSymbol reports whether k is one of the table-driven symbol categories
func (k Kind) IsSymbol() bool {
	return symbolKinds[k]
}

// Kinds returns every kind the parser can produce
func Kinds() []Kind {
	return []Kind{
		KindMathOrd, KindTextOrd, KindBin, KindRel, KindOpen, KindClose,
		KindPunct, KindAmsRel, KindSpacing, KindNamedFn,
		KindSupSub, KindOrdGroup, KindColor, KindSizing, KindLlap, KindRlap,
		KindFrac, KindSqrt, KindLogo,
	}
}

// Node is implemented by every AST node
type Node interface {
	// Kind returns the node's tag
	Kind() Kind

	// Pos returns the byte offset of the token that started the node
	Pos() int

	// Accept dispatches to the visitor method for the concrete type
	Accept(v Visitor) (interface{}, error)

	// String returns a compact one-line representation
	String() string

	node()
}

// Symbol is a no-argument symbol from the symbol table. Value is the literal
// token text, e.g. "x", "+" or `\alpha`.
type Symbol struct {
	Class Kind
	Value string
	Start int
}

// SupSub is an atom with a superscript, a subscript or both. Base may be
// nil when the markup has no nucleus; at least one of Sup and Sub is set.
type SupSub struct {
	Base  Node
	Sup   Node
	Sub   Node
	Start int
}

// OrdGroup is a brace-delimited sub-expression
type OrdGroup struct {
	Body  []Node
	Start int
}

// Color applies a named color to its body. A braced argument is spliced
// into Body rather than kept as an ordgroup.
type Color struct {
	Color string
	Body  []Node
	Start int
}

// Sizing sets the relative font size of its body. Size is the 1-based
// position of the command in the size table.
type Sizing struct {
	Size  int
	Body  Node
	Start int
}

// Lap overlaps its body with the content to the left (KindLlap) or the
// right (KindRlap).
type Lap struct {
	Side  Kind
	Body  Node
	Start int
}

// Frac is a fraction. Variant is the command name without the backslash:
// "frac", "dfrac" or "tfrac".
type Frac struct {
	Numer   Node
	Denom   Node
	Variant string
	Start   int
}

// Sqrt is a square root of its body
type Sqrt struct {
	Body  Node
	Start int
}

// Logo is the fixed marker node of the logo command
type Logo struct {
	Start int
}

func (n *Symbol) Kind() Kind   { return n.Class }
func (n *SupSub) Kind() Kind   { return KindSupSub }
func (n *OrdGroup) Kind() Kind { return KindOrdGroup }
func (n *Color) Kind() Kind    { return KindColor }
func (n *Sizing) Kind() Kind   { return KindSizing }
func (n *Lap) Kind() Kind      { return n.Side }
func (n *Frac) Kind() Kind     { return KindFrac }
func (n *Sqrt) Kind() Kind     { return KindSqrt }
func (n *Logo) Kind() Kind     { return KindLogo }

func (n *Symbol) Pos() int   { return n.Start }
func (n *SupSub) Pos() int   { return n.Start }
func (n *OrdGroup) Pos() int { return n.Start }
func (n *Color) Pos() int    { return n.Start }
func (n *Sizing) Pos() int   { return n.Start }
func (n *Lap) Pos() int      { return n.Start }
func (n *Frac) Pos() int     { return n.Start }
func (n *Sqrt) Pos() int     { return n.Start }
func (n *Logo) Pos() int     { return n.Start }

func (n *Symbol) Accept(v Visitor) (interface{}, error)   { return v.VisitSymbol(n) }
func (n *SupSub) Accept(v Visitor) (interface{}, error)   { return v.VisitSupSub(n) }
func (n *OrdGroup) Accept(v Visitor) (interface{}, error) { return v.VisitOrdGroup(n) }
func (n *Color) Accept(v Visitor) (interface{}, error)    { return v.VisitColor(n) }
func (n *Sizing) Accept(v Visitor) (interface{}, error)   { return v.VisitSizing(n) }
func (n *Lap) Accept(v Visitor) (interface{}, error)      { return v.VisitLap(n) }
func (n *Frac) Accept(v Visitor) (interface{}, error)     { return v.VisitFrac(n) }
func (n *Sqrt) Accept(v Visitor) (interface{}, error)     { return v.VisitSqrt(n) }
func (n *Logo) Accept(v Visitor) (interface{}, error)     { return v.VisitLogo(n) }

func (n *Symbol) String() string   { return Format(n) }
func (n *SupSub) String() string   { return Format(n) }
func (n *OrdGroup) String() string { return Format(n) }
func (n *Color) String() string    { return Format(n) }
func (n *Sizing) String() string   { return Format(n) }
func (n *Lap) String() string      { return Format(n) }
func (n *Frac) String() string     { return Format(n) }
func (n *Sqrt) String() string     { return Format(n) }
func (n *Logo) String() string     { return Format(n) }

func (*Symbol) node()   {}
func (*SupSub) node()   {}
func (*OrdGroup) node() {}
func (*Color) node()    {}
func (*Sizing) node()   {}
func (*Lap) node()      {}
func (*Frac) node()     {}
func (*Sqrt) node()     {}
func (*Logo) node()     {}

// Children returns the direct child nodes in source order. Absent optional
// children (a missing base, sup or sub) are skipped.
func Children(n Node) []Node {
	var out []Node
	add := func(children ...Node) {
		for _, c := range children {
			if c != nil {
				out = append(out, c)
			}
		}
	}
	switch n := n.(type) {
	case *SupSub:
		add(n.Base, n.Sup, n.Sub)
	case *OrdGroup:
		add(n.Body...)
	case *Color:
		add(n.Body...)
	case *Sizing:
		add(n.Body)
	case *Lap:
		add(n.Body)
	case *Frac:
		add(n.Numer, n.Denom)
	case *Sqrt:
		add(n.Body)
	}
	return out
}

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the children of the current node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}

// Depth returns the nesting depth of the deepest node in nodes; a flat
// expression has depth 1, an empty one depth 0.
func Depth(nodes []Node) int {
	deepest := 0
	for _, n := range nodes {
		if d := 1 + Depth(Children(n)); d > deepest {
			deepest = d
		}
	}
	return deepest
}

// Equal reports whether two trees have the same shape and values. Source
// positions are ignored.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return Format(a) == Format(b)
}
