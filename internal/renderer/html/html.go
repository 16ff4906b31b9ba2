// ============================================================================
// knuth - Math Typesetting Service
// ============================================================================
//
// Package:     html
// Description: Materializes box trees as HTML span markup
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package html

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/msto63/knuth/foundation/texmath/boxtree"
	"github.com/msto63/knuth/foundation/texmath/metrics"
)

// Options controls the emitted markup
type Options struct {
	// Metrics adds data-height and data-depth attributes to every span
	Metrics bool
}

// Materializer converts box tree nodes into html.Node values
type Materializer struct {
	opts Options
}

// NewMaterializer creates a materializer
func NewMaterializer(opts Options) *Materializer {
	return &Materializer{opts: opts}
}

var _ boxtree.Materializer[*html.Node] = (*Materializer)(nil)

// Box turns a box into a span; classes become the class attribute and the
// shift, width and size multiplier become inline style
func (m *Materializer) Box(b *boxtree.Box, children []*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: "span", DataAtom: atom.Span}

	if classes := b.Classes(); len(classes) > 0 {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: strings.Join(classes, " ")})
	}
	if style := inlineStyle(b); style != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "style", Val: style})
	}
	if m.opts.Metrics {
		n.Attr = append(n.Attr,
			html.Attribute{Key: "data-height", Val: em(b.Height())},
			html.Attribute{Key: "data-depth", Val: em(b.Depth())},
		)
	}

	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

// Text turns a text leaf into a text node
func (m *Materializer) Text(t *boxtree.TextBox) *html.Node {
	return &html.Node{Type: html.TextNode, Data: t.Text()}
}

func inlineStyle(b *boxtree.Box) string {
	var parts []string
	if shift, ok := b.Shift(); ok {
		parts = append(parts, "top:"+em(shift)+"em")
	}
	if width, ok := b.Width(); ok {
		parts = append(parts, "width:"+em(width)+"em")
	}
	if b.HasClass("sizing") {
		for _, c := range b.Classes() {
			var index int
			if _, err := fmt.Sscanf(c, "size%d", &index); err == nil && index > 0 {
				parts = append(parts, "font-size:"+em(metrics.SizeMultiplier(index))+"em")
				break
			}
		}
	}
	return strings.Join(parts, ";")
}

// em formats a length rounded to four decimals
func em(v float64) string {
	r := math.Round(v*1e4) / 1e4
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// Nodes materializes tree; a fragment yields several top-level nodes
func Nodes(tree boxtree.Node, opts Options) []*html.Node {
	return boxtree.Materialize[*html.Node](tree, NewMaterializer(opts))
}

// Render writes tree as HTML to w
func Render(w io.Writer, tree boxtree.Node, opts Options) error {
	for _, n := range Nodes(tree, opts) {
		if err := html.Render(w, n); err != nil {
			return err
		}
	}
	return nil
}

// RenderString returns tree as an HTML string
func RenderString(tree boxtree.Node, opts Options) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, tree, opts); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Document wraps the rendering of tree in a minimal standalone page
func Document(w io.Writer, title string, tree boxtree.Node, opts Options) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element("html", atom.Html)
	head := element("head", atom.Head)
	meta := element("meta", atom.Meta)
	meta.Attr = []html.Attribute{{Key: "charset", Val: "utf-8"}}
	head.AppendChild(meta)
	titleNode := element("title", atom.Title)
	titleNode.AppendChild(&html.Node{Type: html.TextNode, Data: title})
	head.AppendChild(titleNode)

	body := element("body", atom.Body)
	for _, n := range Nodes(tree, opts) {
		body.AppendChild(n)
	}
	root.AppendChild(head)
	root.AppendChild(body)
	doc.AppendChild(root)

	return html.Render(w, doc)
}

func element(tag string, a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: a}
}
