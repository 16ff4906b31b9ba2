package preview

import (
	"time"

	"github.com/msto63/knuth/internal/knuth/service"
)

// renderedMsg carries the outcome of a render of input
type renderedMsg struct {
	input    string
	result   *service.RenderResult
	parse    *service.ParseResult
	err      error
	duration time.Duration
}
