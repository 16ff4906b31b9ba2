// ============================================================================
// knuth - Math Typesetting Service
// ============================================================================
//
// Package:     terminal
// Description: Renders box trees as an indented outline for terminals
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package terminal

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/knuth/foundation/texmath/boxtree"
)

const indent = "  "

// Colors follow the palette of the preview TUI
var (
	ColorClass  = lipgloss.Color("#8B5CF6") // Violet
	ColorMetric = lipgloss.Color("#64748B") // Slate 500
	ColorShift  = lipgloss.Color("#F59E0B") // Amber
	ColorText   = lipgloss.Color("#10B981") // Emerald
)

// Styles groups the lipgloss styles used for each part of a line
type Styles struct {
	Class  lipgloss.Style
	Metric lipgloss.Style
	Shift  lipgloss.Style
	Text   lipgloss.Style
}

// DefaultStyles returns the colored styles
func DefaultStyles() Styles {
	return Styles{
		Class:  lipgloss.NewStyle().Foreground(ColorClass).Bold(true),
		Metric: lipgloss.NewStyle().Foreground(ColorMetric),
		Shift:  lipgloss.NewStyle().Foreground(ColorShift),
		Text:   lipgloss.NewStyle().Foreground(ColorText),
	}
}

// Options controls the outline
type Options struct {
	// Plain disables styling, for pipes and files
	Plain bool
	// Metrics appends height and depth to every box line
	Metrics bool
	// Styles overrides DefaultStyles when Plain is false
	Styles *Styles
}

// Materializer produces one outline block per node
type Materializer struct {
	opts   Options
	styles Styles
}

// NewMaterializer creates a materializer
func NewMaterializer(opts Options) *Materializer {
	m := &Materializer{opts: opts}
	switch {
	case opts.Plain:
	case opts.Styles != nil:
		m.styles = *opts.Styles
	default:
		m.styles = DefaultStyles()
	}
	return m
}

var _ boxtree.Materializer[string] = (*Materializer)(nil)

// Box renders the box line followed by its indented children
func (m *Materializer) Box(b *boxtree.Box, children []string) string {
	var sb strings.Builder

	classes := "[" + strings.Join(b.Classes(), " ") + "]"
	sb.WriteString(m.paint(m.styles.Class, classes))

	if m.opts.Metrics {
		sb.WriteString(" ")
		sb.WriteString(m.paint(m.styles.Metric, "h="+number(b.Height())+" d="+number(b.Depth())))
	}
	if shift, ok := b.Shift(); ok {
		sb.WriteString(" ")
		sb.WriteString(m.paint(m.styles.Shift, "shift="+number(shift)))
	}
	if width, ok := b.Width(); ok {
		sb.WriteString(" ")
		sb.WriteString(m.paint(m.styles.Shift, "width="+number(width)))
	}

	for _, child := range children {
		for _, line := range strings.Split(child, "\n") {
			sb.WriteString("\n")
			sb.WriteString(indent)
			sb.WriteString(line)
		}
	}
	return sb.String()
}

// Text renders a quoted text leaf
func (m *Materializer) Text(t *boxtree.TextBox) string {
	return m.paint(m.styles.Text, strconv.Quote(t.Text()))
}

func (m *Materializer) paint(style lipgloss.Style, s string) string {
	if m.opts.Plain {
		return s
	}
	return style.Render(s)
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// Render returns the outline of tree; fragment roots produce one block per
// child, separated by newlines
func Render(tree boxtree.Node, opts Options) string {
	blocks := boxtree.Materialize[string](tree, NewMaterializer(opts))
	return strings.Join(blocks, "\n")
}
