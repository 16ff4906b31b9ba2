// File: boxtree.go
// Title: texmath Box Tree Nodes
// Description: Box, TextBox and Fragment with metric propagation.
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial node types

package boxtree

import (
	"strings"
)

// Node is a Box, a TextBox or a Fragment
type Node interface {
	Height() float64
	Depth() float64
	node()
}

// Box is a container with classes, children and metrics. Boxes are
// immutable after construction.
type Box struct {
	classes  []string
	children []Node
	height   float64
	depth    float64
	width    float64
	hasWidth bool
	shift    float64
	hasShift bool
}

// Option adjusts a box while it is constructed
type Option func(*Box)

// WithHeight overrides the height computed from the children
func WithHeight(h float64) Option { return func(b *Box) { b.height = h } }

// WithDepth overrides the depth computed from the children
func WithDepth(d float64) Option { return func(b *Box) { b.depth = d } }

// WithShift sets a vertical offset in em; positive values move the box down
func WithShift(em float64) Option {
	return func(b *Box) { b.shift, b.hasShift = em, true }
}

// WithWidth sets an explicit width in em, used by spacers
func WithWidth(em float64) Option {
	return func(b *Box) { b.width, b.hasWidth = em, true }
}

// NewBox creates a box. Fragment children are spliced into the child list;
// height and depth are the maxima over the children (never below zero)
// before the options are applied.
func NewBox(classes []string, children []Node, opts ...Option) *Box {
	b := &Box{classes: Classes(classes...), children: flatten(children)}
	for _, c := range b.children {
		if h := c.Height(); h > b.height {
			b.height = h
		}
		if d := c.Depth(); d > b.depth {
			b.depth = d
		}
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Classes splits space separated class strings into tags and drops empty
// ones, so NewBox([]string{"mord", " blue"}) and "mord blue" agree.
func Classes(parts ...string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, strings.Fields(p)...)
	}
	return out
}

func flatten(children []Node) []Node {
	out := make([]Node, 0, len(children))
	for _, c := range children {
		switch c := c.(type) {
		case nil:
		case *Fragment:
			out = append(out, c.children...)
		default:
			out = append(out, c)
		}
	}
	return out
}

// Classes returns a copy of the box classes
func (b *Box) Classes() []string {
	return append([]string(nil), b.classes...)
}

// HasClass reports whether the box carries the class
func (b *Box) HasClass(class string) bool {
	for _, c := range b.classes {
		if c == class {
			return true
		}
	}
	return false
}

// Children returns a copy of the child list
func (b *Box) Children() []Node {
	return append([]Node(nil), b.children...)
}

// Len returns the number of children
func (b *Box) Len() int { return len(b.children) }

// Child returns the i-th child
func (b *Box) Child(i int) Node { return b.children[i] }

func (b *Box) Height() float64 { return b.height }
func (b *Box) Depth() float64  { return b.depth }

// Width returns the explicit width, if any
func (b *Box) Width() (float64, bool) { return b.width, b.hasWidth }

// Shift returns the vertical offset, if any
func (b *Box) Shift() (float64, bool) { return b.shift, b.hasShift }

func (*Box) node() {}

// TextBox is a leaf carrying the drawn text
type TextBox struct {
	text   string
	height float64
	depth  float64
}

// NewText creates a text leaf
func NewText(text string, height, depth float64) *TextBox {
	return &TextBox{text: text, height: height, depth: depth}
}

// Text returns the drawn text
func (t *TextBox) Text() string    { return t.text }
func (t *TextBox) Height() float64 { return t.height }
func (t *TextBox) Depth() float64  { return t.depth }
func (*TextBox) node()             {}

// Fragment is a run of siblings without a wrapping box
type Fragment struct {
	children []Node
	height   float64
	depth    float64
}

// NewFragment creates a fragment; nested fragments are flattened
func NewFragment(children ...Node) *Fragment {
	f := &Fragment{children: flatten(children)}
	for _, c := range f.children {
		if h := c.Height(); h > f.height {
			f.height = h
		}
		if d := c.Depth(); d > f.depth {
			f.depth = d
		}
	}
	return f
}

// Children returns a copy of the fragment's nodes
func (f *Fragment) Children() []Node {
	return append([]Node(nil), f.children...)
}

// Len returns the number of nodes in the fragment
func (f *Fragment) Len() int { return len(f.children) }

func (f *Fragment) Height() float64 { return f.height }
func (f *Fragment) Depth() float64  { return f.depth }
func (*Fragment) node()             {}

// Walk visits n and its descendants depth-first
func Walk(n Node, fn func(Node)) {
	if n == nil {
		return
	}
	fn(n)
	switch n := n.(type) {
	case *Box:
		for _, c := range n.children {
			Walk(c, fn)
		}
	case *Fragment:
		for _, c := range n.children {
			Walk(c, fn)
		}
	}
}

// PlainText concatenates the text leaves of n in order
func PlainText(n Node) string {
	var sb strings.Builder
	Walk(n, func(n Node) {
		if t, ok := n.(*TextBox); ok {
			sb.WriteString(t.text)
		}
	})
	return sb.String()
}
