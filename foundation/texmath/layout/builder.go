// File: builder.go
// Title: texmath Layout Builder
// Description: Builder entry points, the sibling-run fold and the visitor
//              that dispatches each node kind to its rule.
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial builder

package layout

import (
	"fmt"

	mdwlog "github.com/msto63/knuth/foundation/core/log"
	"github.com/msto63/knuth/foundation/texmath/ast"
	"github.com/msto63/knuth/foundation/texmath/boxtree"
	"github.com/msto63/knuth/foundation/texmath/metrics"
	"github.com/msto63/knuth/foundation/texmath/style"
)

// DefaultMaxDepth bounds the nesting of the AST being built
const DefaultMaxDepth = 256

// RootClass tags the outermost box of every built tree
const RootClass = "katex"

// Environment describes capabilities of the rendering surface
type Environment struct {
	// FractionsUnsupported marks surfaces that cannot stack the three
	// fraction rows; building a fraction then fails.
	FractionsUnsupported bool
}

// Options configures a Builder
type Options struct {
	Logger      *mdwlog.Logger
	Environment Environment
	MaxDepth    int
}

// Builder lays out AST nodes. A Builder is safe for concurrent use.
type Builder struct {
	logger   *mdwlog.Logger
	env      Environment
	maxDepth int
}

// New creates a builder
func New(opts Options) *Builder {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Builder{
		logger:   opts.Logger.WithField("component", "texmath-layout"),
		env:      opts.Environment,
		maxDepth: opts.MaxDepth,
	}
}

// Build lays out an expression and wraps it in the root box and a box
// carrying the class of the starting style
func (b *Builder) Build(nodes []ast.Node, opts style.Options) (*boxtree.Box, error) {
	b.logger.Debug("Building layout", mdwlog.Fields{
		"nodes": len(nodes),
		"style": opts.Style().String(),
	})

	children, err := b.BuildExpression(nodes, opts)
	if err != nil {
		b.logger.Debug("Layout failed", mdwlog.Fields{"error": err.Error()})
		return nil, err
	}

	inner := boxtree.NewBox(boxtree.Classes(opts.Style().Class()), children)
	root := boxtree.NewBox([]string{RootClass}, []boxtree.Node{inner})

	b.logger.Debug("Layout completed", mdwlog.Fields{
		"height": root.Height(),
		"depth":  root.Depth(),
	})
	return root, nil
}

// BuildExpression lays out a sibling run and returns the flattened boxes;
// color groups contribute their children directly.
func (b *Builder) BuildExpression(nodes []ast.Node, opts style.Options) ([]boxtree.Node, error) {
	built, _, err := b.buildExpression(nodes, opts, noPrev, 0)
	if err != nil {
		return nil, err
	}
	return boxtree.NewFragment(built...).Children(), nil
}

// noPrev is the left context at the start of a run
const noPrev ast.Kind = ""

// buildExpression folds the left context through a sibling run and returns
// the kind of the last sibling
func (b *Builder) buildExpression(nodes []ast.Node, opts style.Options, prev ast.Kind, depth int) ([]boxtree.Node, ast.Kind, error) {
	out := make([]boxtree.Node, 0, len(nodes))
	for _, n := range nodes {
		built, kind, err := b.buildGroup(n, opts, prev, depth)
		if err != nil {
			return nil, prev, err
		}
		out = append(out, built)
		prev = kind
	}
	return out, prev, nil
}

// buildGroup lays out one node. A nil node yields an empty box.
func (b *Builder) buildGroup(n ast.Node, opts style.Options, prev ast.Kind, depth int) (boxtree.Node, ast.Kind, error) {
	if n == nil {
		return boxtree.NewBox(nil, nil), noPrev, nil
	}
	if depth > b.maxDepth {
		return nil, noPrev, newTooDeep(n.Kind(), b.maxDepth)
	}

	res, err := n.Accept(&groupBuilder{b: b, opts: opts, prev: prev, depth: depth})
	if err != nil {
		return nil, noPrev, err
	}
	r, ok := res.(result)
	if !ok {
		return nil, noPrev, newUnknownKind(n.Kind(), fmt.Sprintf("visitor returned %T", res))
	}
	return r.node, r.kind, nil
}

// result is what every rule returns: the built node and the render kind
// the next sibling sees as its left context
type result struct {
	node boxtree.Node
	kind ast.Kind
}

// groupBuilder applies the rule of one node kind
type groupBuilder struct {
	b     *Builder
	opts  style.Options
	prev  ast.Kind
	depth int
}

// child builds a nested node with a fresh left context
func (g *groupBuilder) child(n ast.Node, opts style.Options) (boxtree.Node, error) {
	built, _, err := g.b.buildGroup(n, opts, noPrev, g.depth+1)
	return built, err
}

func (g *groupBuilder) VisitSymbol(n *ast.Symbol) (interface{}, error) {
	return g.symbol(n)
}

func (g *groupBuilder) VisitSupSub(n *ast.SupSub) (interface{}, error) {
	return g.supsub(n)
}

func (g *groupBuilder) VisitOrdGroup(n *ast.OrdGroup) (interface{}, error) {
	s := g.opts.Style()
	children, _, err := g.b.buildExpression(n.Body, g.opts, noPrev, g.depth+1)
	if err != nil {
		return nil, err
	}
	return result{
		node: boxtree.NewBox(boxtree.Classes("mord", s.Class()), children),
		kind: ast.KindOrdGroup,
	}, nil
}

// VisitColor splices the children into the enclosing run. The run inside
// the group continues the outer left context, and the group reports the
// kind of its last child; an empty group reports no previous sibling.
func (g *groupBuilder) VisitColor(n *ast.Color) (interface{}, error) {
	children, last, err := g.b.buildExpression(n.Body, g.opts.WithColor(n.Color), g.prev, g.depth+1)
	if err != nil {
		return nil, err
	}
	if len(n.Body) == 0 {
		last = noPrev
	}
	return result{node: boxtree.NewFragment(children...), kind: last}, nil
}

// VisitSizing wraps the body in a box tagged with the size index. Metrics
// are not scaled here; renderers apply the size multiplier.
func (g *groupBuilder) VisitSizing(n *ast.Sizing) (interface{}, error) {
	inner, err := g.child(n.Body, g.opts)
	if err != nil {
		return nil, err
	}
	return result{
		node: boxtree.NewBox(boxtree.Classes("sizing", fmt.Sprintf("size%d", n.Size)), []boxtree.Node{inner}),
		kind: ast.KindSizing,
	}, nil
}

func (g *groupBuilder) VisitLap(n *ast.Lap) (interface{}, error) {
	if n.Side != ast.KindLlap && n.Side != ast.KindRlap {
		return nil, newUnknownKind(n.Side, "lap side")
	}
	built, err := g.child(n.Body, g.opts)
	if err != nil {
		return nil, err
	}
	inner := boxtree.NewBox(nil, []boxtree.Node{built})
	return result{
		node: boxtree.NewBox(boxtree.Classes(string(n.Side), g.opts.Style().Class()), []boxtree.Node{inner}),
		kind: n.Side,
	}, nil
}

func (g *groupBuilder) VisitFrac(n *ast.Frac) (interface{}, error) {
	return g.frac(n)
}

func (g *groupBuilder) VisitSqrt(n *ast.Sqrt) (interface{}, error) {
	return g.sqrt(n)
}

func (g *groupBuilder) VisitLogo(n *ast.Logo) (interface{}, error) {
	text := boxtree.NewText("KaTeX", metrics.DefaultHeight, 0)
	return result{
		node: boxtree.NewBox(boxtree.Classes("mord logo", g.opts.Color()), []boxtree.Node{text}),
		kind: ast.KindLogo,
	}, nil
}
