// ============================================================================
// knuth - Math Typesetting Service
// ============================================================================
//
// Package:     service
// Description: Render service combining the texmath engine with a memory
//              cache and an optional persistent store
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/text/unicode/norm"

	mdwerror "github.com/msto63/knuth/foundation/core/error"
	"github.com/msto63/knuth/foundation/texmath"
	"github.com/msto63/knuth/foundation/texmath/ast"
	"github.com/msto63/knuth/foundation/texmath/boxtree"
	"github.com/msto63/knuth/foundation/texmath/style"
	"github.com/msto63/knuth/internal/knuth/store"
	"github.com/msto63/knuth/internal/renderer/html"
	"github.com/msto63/knuth/pkg/core/cache"
	"github.com/msto63/knuth/pkg/core/logging"
)

// Result sources
const (
	SourceEngine = "engine"
	SourceMemory = "memory"
	SourceStore  = "store"
)

// Store is the persistent render cache used behind the memory cache
type Store interface {
	Get(ctx context.Context, key string) (*store.Render, error)
	Put(ctx context.Context, r *store.Render) error
	Count(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

// RenderRequest represents a render request
type RenderRequest struct {
	Input string
	Style string // display, text, script, scriptscript; empty uses the default
}

// RenderResult represents a render result
type RenderResult struct {
	Key      string
	Input    string
	Style    string
	Tree     *boxtree.Box
	TreeJSON []byte
	HTML     string
	Text     string
	Cached   bool
	Source   string
	Duration time.Duration
}

// ParseResult represents the parse tree of a markup string
type ParseResult struct {
	Input     string
	Nodes     []ast.Node
	AST       []interface{}
	Formatted string
	Depth     int
}

// Stats summarizes service activity
type Stats struct {
	Renders      int64   `json:"renders"`
	Failures     int64   `json:"failures"`
	CacheHits    int64   `json:"cache_hits"`
	CacheMisses  int64   `json:"cache_misses"`
	CacheHitRate float64 `json:"cache_hit_rate"`
	CacheSize    int     `json:"cache_size"`
	StoreHits    int64   `json:"store_hits"`
	Stored       int64   `json:"stored"`
}

// Config holds service configuration
type Config struct {
	Engine       texmath.Options
	CacheEnabled bool
	Cache        cache.Config
	Store        Store // optional
	Logger       *logging.Logger
}

// DefaultConfig returns a configuration with the memory cache enabled and
// no persistent store
func DefaultConfig() Config {
	return Config{
		CacheEnabled: true,
		Cache:        cache.DefaultConfig(),
	}
}

// Service is the knuth render service
type Service struct {
	engine *texmath.Engine
	cache  *cache.Cache[*RenderResult]
	store  Store
	logger *logging.Logger

	// keyParts scopes cache keys to the engine settings that change results
	keyParts []string

	renders   atomic.Int64
	failures  atomic.Int64
	storeHits atomic.Int64
}

// NewService creates a new render service
func NewService(cfg Config) (*Service, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New("knuth")
	}
	if cfg.Engine.Logger == nil {
		cfg.Engine.Logger = logger.Logger
	}

	engine, err := texmath.New(cfg.Engine)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to create engine").
			WithCode(mdwerror.CodeServiceInitialization).
			WithOperation("service.NewService")
	}

	s := &Service{
		engine:   engine,
		store:    cfg.Store,
		logger:   logger,
		keyParts: engineKeyParts(engine.Options()),
	}
	if cfg.CacheEnabled {
		s.cache = cache.New[*RenderResult](cfg.Cache)
	}
	return s, nil
}

// Normalize returns the form of input the service parses (NFC). Error
// positions are byte offsets into the normalized string.
func Normalize(input string) string {
	return norm.NFC.String(input)
}

// engineKeyParts lists the engine settings a cached render depends on.
// Renders stored under other limits or capabilities must not be served.
func engineKeyParts(opts texmath.Options) []string {
	return []string{
		"max_input=" + strconv.Itoa(opts.MaxInputLength),
		"max_depth=" + strconv.Itoa(opts.MaxDepth),
		"fractions=" + strconv.FormatBool(!opts.Environment.FractionsUnsupported),
	}
}

// Engine returns the underlying engine
func (s *Service) Engine() *texmath.Engine {
	return s.engine
}

// Render lays out markup, serving repeated requests from the caches
func (s *Service) Render(ctx context.Context, req RenderRequest) (*RenderResult, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, contextError(err, "service.Render")
	}

	st := s.engine.DefaultStyle()
	if req.Style != "" {
		parsed, err := style.Parse(req.Style)
		if err != nil {
			return nil, mdwerror.Wrap(err, "invalid style").
				WithCode(mdwerror.CodeInvalidInput).
				WithOperation("service.Render").
				WithDetail("style", req.Style)
		}
		st = parsed
	}

	input := Normalize(req.Input)
	key := cache.RenderKey(input, st.String(), s.keyParts...)

	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			return hit(cached, SourceMemory, start), nil
		}
	}

	if cached := s.fromStore(ctx, key); cached != nil {
		s.storeHits.Add(1)
		if s.cache != nil {
			s.cache.Set(key, cached)
		}
		return hit(cached, SourceStore, start), nil
	}

	tree, err := s.engine.Render(input, style.NewOptions(st, ""))
	if err != nil {
		s.failures.Add(1)
		s.logger.Debug("Render failed", "code", string(mdwerror.GetCode(err)), "length", len(input))
		return nil, err
	}
	s.renders.Add(1)

	result, err := newResult(key, input, st, tree)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(key, result)
	}
	s.toStore(ctx, result)

	out := *result
	out.Source = SourceEngine
	out.Duration = time.Since(start)
	s.logger.Debug("Rendered markup", "key", key, "style", out.Style, "duration_ms", out.Duration.Milliseconds())
	return &out, nil
}

// Parse returns the parse tree of markup
func (s *Service) Parse(ctx context.Context, input string) (*ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, contextError(err, "service.Parse")
	}

	input = Normalize(input)
	nodes, err := s.engine.ParseToAST(input)
	if err != nil {
		s.failures.Add(1)
		return nil, err
	}
	return &ParseResult{
		Input:     input,
		Nodes:     nodes,
		AST:       ast.DumpList(nodes),
		Formatted: ast.FormatList(nodes),
		Depth:     ast.Depth(nodes),
	}, nil
}

// Stats returns service counters
func (s *Service) Stats(ctx context.Context) Stats {
	stats := Stats{
		Renders:   s.renders.Load(),
		Failures:  s.failures.Load(),
		StoreHits: s.storeHits.Load(),
	}
	if s.cache != nil {
		stats.CacheHits, stats.CacheMisses, stats.CacheHitRate = s.cache.Stats()
		stats.CacheSize = s.cache.Size()
	}
	if s.store != nil {
		if n, err := s.store.Count(ctx); err == nil {
			stats.Stored = n
		}
	}
	return stats
}

// Ping checks the engine with a trivial render and the store connection
func (s *Service) Ping(ctx context.Context) error {
	if _, err := s.engine.RenderToBoxTree("x"); err != nil {
		return err
	}
	if s.store != nil {
		return s.store.Ping(ctx)
	}
	return nil
}

// HasStore reports whether a persistent store is configured
func (s *Service) HasStore() bool {
	return s.store != nil
}

// Close releases the memory cache
func (s *Service) Close() {
	if s.cache != nil {
		s.cache.Close()
	}
}

func (s *Service) fromStore(ctx context.Context, key string) *RenderResult {
	if s.store == nil {
		return nil
	}
	r, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) && !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
			s.logger.Warn("Store lookup failed", "key", key, "error", err)
		}
		return nil
	}

	node, err := boxtree.Decode(r.TreeJSON)
	if err != nil {
		s.logger.Warn("Stored tree is unreadable", "key", key, "error", err)
		return nil
	}
	tree, ok := node.(*boxtree.Box)
	if !ok {
		return nil
	}
	return &RenderResult{
		Key:      r.Key,
		Input:    r.Input,
		Style:    r.Style,
		Tree:     tree,
		TreeJSON: r.TreeJSON,
		HTML:     r.HTML,
		Text:     boxtree.PlainText(tree),
	}
}

func (s *Service) toStore(ctx context.Context, r *RenderResult) {
	if s.store == nil {
		return
	}
	err := s.store.Put(ctx, &store.Render{
		Key:      r.Key,
		Input:    r.Input,
		Style:    r.Style,
		HTML:     r.HTML,
		TreeJSON: r.TreeJSON,
	})
	if err != nil {
		s.logger.Warn("Store write failed", "key", r.Key, "error", err)
	}
}

func newResult(key, input string, st style.Style, tree *boxtree.Box) (*RenderResult, error) {
	treeJSON, err := json.Marshal(tree)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to encode box tree").
			WithCode(mdwerror.CodeInternal).
			WithOperation("service.Render")
	}
	markup, err := html.RenderString(tree, html.Options{})
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to render html").
			WithCode(mdwerror.CodeInternal).
			WithOperation("service.Render")
	}
	return &RenderResult{
		Key:      key,
		Input:    input,
		Style:    st.String(),
		Tree:     tree,
		TreeJSON: treeJSON,
		HTML:     markup,
		Text:     boxtree.PlainText(tree),
	}, nil
}

func hit(r *RenderResult, source string, start time.Time) *RenderResult {
	out := *r
	out.Cached = true
	out.Source = source
	out.Duration = time.Since(start)
	return &out
}

func contextError(err error, operation string) error {
	code := mdwerror.CodeInternal
	if errors.Is(err, context.DeadlineExceeded) {
		code = mdwerror.CodeTimeout
	}
	return mdwerror.Wrap(err, "request aborted").WithCode(code).WithOperation(operation)
}
