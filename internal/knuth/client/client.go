// ============================================================================
// knuth - Math Typesetting Service
// ============================================================================
//
// Package:     client
// Description: gRPC client for the knuth render service
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package client

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	mdwerror "github.com/msto63/knuth/foundation/core/error"
	"github.com/msto63/knuth/foundation/texmath/boxtree"
	"github.com/msto63/knuth/internal/knuth/api"
	coreGrpc "github.com/msto63/knuth/pkg/core/grpc"
)

// Config holds client configuration
type Config struct {
	Target  string
	Timeout time.Duration
}

// DefaultConfig returns the configuration for a local server
func DefaultConfig() Config {
	return Config{
		Target:  "localhost:9310",
		Timeout: 10 * time.Second,
	}
}

// Client calls knuth.v1.RenderService
type Client struct {
	conn    *grpc.ClientConn
	timeout time.Duration
}

// New dials target. Extra options are appended to the defaults of the
// core gRPC package.
func New(cfg Config, opts ...grpc.DialOption) (*Client, error) {
	grpcCfg := coreGrpc.DefaultClientConfig(cfg.Target)
	if cfg.Timeout > 0 {
		grpcCfg.Timeout = cfg.Timeout
	}

	conn, err := coreGrpc.Dial(grpcCfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, timeout: grpcCfg.Timeout}, nil
}

// Render lays out input remotely
func (c *Client) Render(ctx context.Context, input, style string) (*api.RenderResponse, error) {
	var resp api.RenderResponse
	if err := c.invoke(ctx, api.RenderMethod, api.RenderRequest{Input: input, Style: style}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Parse returns the remote parse tree of input
func (c *Client) Parse(ctx context.Context, input string) (*api.ParseResponse, error) {
	var resp api.ParseResponse
	if err := c.invoke(ctx, api.ParseMethod, api.ParseRequest{Input: input}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) invoke(ctx context.Context, method string, req, resp interface{}) error {
	in, err := api.ToStruct(req)
	if err != nil {
		return err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, method, in, out); err != nil {
		return coreGrpc.FromStatus(err)
	}
	return api.FromStruct(out, resp)
}

// Close closes the connection
func (c *Client) Close() error {
	return c.conn.Close()
}

// Tree decodes the box tree of a render response
func Tree(resp *api.RenderResponse) (*boxtree.Box, error) {
	node, err := boxtree.Decode(resp.Tree)
	if err != nil {
		return nil, mdwerror.Wrap(err, "malformed box tree").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("client.Tree")
	}
	box, ok := node.(*boxtree.Box)
	if !ok {
		return nil, mdwerror.New("box tree root is not a box").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("client.Tree")
	}
	return box, nil
}
