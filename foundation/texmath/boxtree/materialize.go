package boxtree

// Materializer converts box tree nodes into the node type of a rendering
// surface. Box receives the already converted children.
type Materializer[T any] interface {
	Box(b *Box, children []T) T
	Text(t *TextBox) T
}

// Materialize converts n and its descendants. A fragment yields one surface
// node per child; boxes and text leaves yield exactly one.
func Materialize[T any](n Node, m Materializer[T]) []T {
	switch n := n.(type) {
	case *Box:
		var children []T
		for _, c := range n.children {
			children = append(children, Materialize(c, m)...)
		}
		return []T{m.Box(n, children)}
	case *TextBox:
		return []T{m.Text(n)}
	case *Fragment:
		var out []T
		for _, c := range n.children {
			out = append(out, Materialize(c, m)...)
		}
		return out
	}
	return nil
}
