// File: engine.go
// Title: texmath Engine
// Description: Engine combines a parser and a layout builder configured from
//              one Options value. A package-level engine with default options
//              backs the ParseToAST and RenderToBoxTree functions.
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial engine implementation

package texmath

import (
	"fmt"
	"sync"

	mdwerror "github.com/msto63/knuth/foundation/core/error"
	mdwlog "github.com/msto63/knuth/foundation/core/log"
	"github.com/msto63/knuth/foundation/texmath/ast"
	"github.com/msto63/knuth/foundation/texmath/boxtree"
	"github.com/msto63/knuth/foundation/texmath/layout"
	"github.com/msto63/knuth/foundation/texmath/parser"
	"github.com/msto63/knuth/foundation/texmath/style"
)

// Options configures an Engine
type Options struct {
	// Logger for engine operations (optional, defaults to default logger)
	Logger *mdwlog.Logger

	// MaxInputLength limits the markup length in bytes (default: 4096)
	MaxInputLength int

	// MaxDepth bounds group nesting in the parser (default: 64)
	MaxDepth int

	// Environment describes the capabilities of the target surface
	Environment layout.Environment

	// DefaultStyle names the style RenderToBoxTree starts in, e.g.
	// "display" or "text" (default: text)
	DefaultStyle string
}

// Engine parses and lays out math markup. An Engine is safe for concurrent
// use.
type Engine struct {
	parser       *parser.Parser
	builder      *layout.Builder
	logger       *mdwlog.Logger
	defaultStyle style.Style
	options      Options
}

// New creates an engine
func New(opts Options) (*Engine, error) {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.MaxInputLength <= 0 {
		opts.MaxInputLength = parser.DefaultMaxInputLength
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = parser.DefaultMaxDepth
	}

	defaultStyle, err := style.Parse(opts.DefaultStyle)
	if err != nil {
		return nil, mdwerror.Wrap(err, "invalid default style").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("texmath.New").
			WithDetail("style", opts.DefaultStyle)
	}

	logger := opts.Logger.WithField("component", "texmath-engine")

	p, err := parser.New(parser.Options{
		Logger:         opts.Logger,
		MaxInputLength: opts.MaxInputLength,
		MaxDepth:       opts.MaxDepth,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize parser: %w", err)
	}

	builder := layout.New(layout.Options{
		Logger:      opts.Logger,
		Environment: opts.Environment,
		MaxDepth:    4 * opts.MaxDepth,
	})

	logger.Debug("Engine initialized", mdwlog.Fields{
		"maxInputLength": opts.MaxInputLength,
		"maxDepth":       opts.MaxDepth,
		"defaultStyle":   defaultStyle.String(),
		"fractions":      !opts.Environment.FractionsUnsupported,
	})

	return &Engine{
		parser:       p,
		builder:      builder,
		logger:       logger,
		defaultStyle: defaultStyle,
		options:      opts,
	}, nil
}

// Options returns the effective options
func (e *Engine) Options() Options {
	return e.options
}

// DefaultStyle returns the style RenderToBoxTree starts in
func (e *Engine) DefaultStyle() style.Style {
	return e.defaultStyle
}

// ParseToAST parses markup into its top-level expression
func (e *Engine) ParseToAST(input string) ([]ast.Node, error) {
	return e.parser.Parse(input)
}

// RenderToBoxTree parses markup and lays it out in the default style
func (e *Engine) RenderToBoxTree(input string) (*boxtree.Box, error) {
	return e.Render(input, style.NewOptions(e.defaultStyle, ""))
}

// Render parses markup and lays it out with the given option context
func (e *Engine) Render(input string, opts style.Options) (*boxtree.Box, error) {
	timer := e.logger.StartTimer("render").WithField("length", len(input))

	nodes, err := e.parser.Parse(input)
	if err != nil {
		e.logger.Debug("Render rejected markup", mdwlog.Fields{"code": string(mdwerror.GetCode(err))})
		return nil, err
	}

	tree, err := e.builder.Build(nodes, opts)
	if err != nil {
		e.logger.Debug("Render failed in layout", mdwlog.Fields{"code": string(mdwerror.GetCode(err))})
		return nil, err
	}

	timer.WithField("nodes", len(nodes)).Stop()
	return tree, nil
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// Default returns the package-level engine with default options
func Default() *Engine {
	defaultEngineOnce.Do(func() {
		// default options always validate
		defaultEngine, _ = New(Options{})
	})
	return defaultEngine
}

// ParseToAST parses markup with the default engine
func ParseToAST(input string) ([]ast.Node, error) {
	return Default().ParseToAST(input)
}

// RenderToBoxTree renders markup with the default engine
func RenderToBoxTree(input string) (*boxtree.Box, error) {
	return Default().RenderToBoxTree(input)
}
