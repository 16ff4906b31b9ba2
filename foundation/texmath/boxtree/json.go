package boxtree

import (
	"encoding/json"
	"fmt"
)

// wireNode is the JSON shape shared by all node types
type wireNode struct {
	Type     string            `json:"type"`
	Classes  []string          `json:"classes,omitempty"`
	Text     string            `json:"text,omitempty"`
	Height   float64           `json:"height"`
	Depth    float64           `json:"depth"`
	Width    *float64          `json:"width,omitempty"`
	Shift    *float64          `json:"shift,omitempty"`
	Children []json.RawMessage `json:"children,omitempty"`
}

func marshalChildren(children []Node) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(children))
	for _, c := range children {
		raw, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, nil
}

// MarshalJSON encodes the box with its subtree
func (b *Box) MarshalJSON() ([]byte, error) {
	children, err := marshalChildren(b.children)
	if err != nil {
		return nil, err
	}
	w := wireNode{Type: "box", Classes: b.classes, Height: b.height, Depth: b.depth, Children: children}
	if b.hasWidth {
		w.Width = &b.width
	}
	if b.hasShift {
		w.Shift = &b.shift
	}
	return json.Marshal(w)
}

// MarshalJSON encodes the text leaf
func (t *TextBox) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireNode{Type: "text", Text: t.text, Height: t.height, Depth: t.depth})
}

// MarshalJSON encodes the fragment with its nodes
func (f *Fragment) MarshalJSON() ([]byte, error) {
	children, err := marshalChildren(f.children)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireNode{Type: "fragment", Height: f.height, Depth: f.depth, Children: children})
}

// Decode reads a tree written by the MarshalJSON methods. Stored metrics
// are restored as they were, including overridden ones.
func Decode(data []byte) (Node, error) {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	children := make([]Node, 0, len(w.Children))
	for _, raw := range w.Children {
		c, err := Decode(raw)
		if err != nil {
			return nil, err
		}
		children = append(children, c)
	}

	switch w.Type {
	case "box":
		b := &Box{classes: w.Classes, children: children, height: w.Height, depth: w.Depth}
		if w.Width != nil {
			b.width, b.hasWidth = *w.Width, true
		}
		if w.Shift != nil {
			b.shift, b.hasShift = *w.Shift, true
		}
		return b, nil
	case "text":
		return NewText(w.Text, w.Height, w.Depth), nil
	case "fragment":
		return &Fragment{children: children, height: w.Height, depth: w.Depth}, nil
	default:
		return nil, fmt.Errorf("boxtree: unknown node type %q", w.Type)
	}
}
