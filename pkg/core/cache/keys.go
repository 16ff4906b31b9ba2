// ============================================================================
// knuth - Math Typesetting Service
// ============================================================================
//
// Package:     cache
// Description: Cache key derivation for render results
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// RenderKey generates a cache key for a render of input in the given style.
// Parts are joined with a separator that cannot occur in a style name.
func RenderKey(input, style string, extra ...string) string {
	h := sha256.New()
	h.Write([]byte(style))
	h.Write([]byte{0})
	h.Write([]byte(input))
	if len(extra) > 0 {
		h.Write([]byte{0})
		h.Write([]byte(strings.Join(extra, "\x00")))
	}
	return "render:" + hex.EncodeToString(h.Sum(nil)[:16]) // Use first 16 bytes
}
