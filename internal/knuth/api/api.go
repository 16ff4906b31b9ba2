// ============================================================================
// knuth - Math Typesetting Service
// ============================================================================
//
// Package:     api
// Description: Wire messages of the knuth.v1.RenderService. Requests and
//              responses travel as google.protobuf.Struct values.
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package api

import (
	"encoding/json"

	"google.golang.org/protobuf/types/known/structpb"

	mdwerror "github.com/msto63/knuth/foundation/core/error"
	"github.com/msto63/knuth/internal/knuth/service"
)

// Service and method names
const (
	ServiceName  = "knuth.v1.RenderService"
	RenderMethod = "/" + ServiceName + "/Render"
	ParseMethod  = "/" + ServiceName + "/Parse"
)

// RenderRequest is the payload of Render
type RenderRequest struct {
	Input string `json:"input"`
	Style string `json:"style,omitempty"`
}

// RenderResponse is the result of Render
type RenderResponse struct {
	Key        string          `json:"key"`
	Input      string          `json:"input"`
	Style      string          `json:"style"`
	HTML       string          `json:"html"`
	Text       string          `json:"text"`
	Tree       json.RawMessage `json:"tree"`
	Cached     bool            `json:"cached"`
	Source     string          `json:"source"`
	DurationMs float64         `json:"duration_ms"`
}

// NewRenderResponse converts a service result
func NewRenderResponse(r *service.RenderResult) RenderResponse {
	return RenderResponse{
		Key:        r.Key,
		Input:      r.Input,
		Style:      r.Style,
		HTML:       r.HTML,
		Text:       r.Text,
		Tree:       json.RawMessage(r.TreeJSON),
		Cached:     r.Cached,
		Source:     r.Source,
		DurationMs: float64(r.Duration.Microseconds()) / 1000,
	}
}

// ParseRequest is the payload of Parse
type ParseRequest struct {
	Input string `json:"input"`
}

// ParseResponse is the result of Parse
type ParseResponse struct {
	Input     string          `json:"input"`
	Formatted string          `json:"formatted"`
	Depth     int             `json:"depth"`
	AST       json.RawMessage `json:"ast"`
}

// NewParseResponse converts a service parse result
func NewParseResponse(r *service.ParseResult) (ParseResponse, error) {
	dump, err := json.Marshal(r.AST)
	if err != nil {
		return ParseResponse{}, encodeError(err)
	}
	return ParseResponse{
		Input:     r.Input,
		Formatted: r.Formatted,
		Depth:     r.Depth,
		AST:       dump,
	}, nil
}

// ToStruct encodes a message as a Struct through its JSON form
func ToStruct(v interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, encodeError(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, encodeError(err)
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, encodeError(err)
	}
	return s, nil
}

// FromStruct decodes a Struct into a message. Type mismatches are invalid
// input.
func FromStruct(s *structpb.Struct, v interface{}) error {
	if s == nil {
		return mdwerror.New("empty message").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("api.FromStruct")
	}
	data, err := json.Marshal(s.AsMap())
	if err != nil {
		return encodeError(err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return mdwerror.Wrap(err, "malformed message").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("api.FromStruct")
	}
	return nil
}

func encodeError(err error) error {
	return mdwerror.Wrap(err, "failed to encode message").
		WithCode(mdwerror.CodeInternal).
		WithOperation("api.ToStruct")
}
