package style

// Options is the option context threaded through layout. It is a value
// type; the With methods return modified copies.
type Options struct {
	style Style
	color string
}

// NewOptions returns an option context with the given style and color
func NewOptions(s Style, color string) Options {
	return Options{style: s, color: color}
}

// Default returns the context used for a top-level expression: text style
// and no color.
func Default() Options {
	return Options{style: Text}
}

// Style returns the current style
func (o Options) Style() Style { return o.style }

// Color returns the current color name, empty when inherited
func (o Options) Color() string { return o.color }

// WithStyle returns a copy of o with a different style
func (o Options) WithStyle(s Style) Options {
	o.style = s
	return o
}

// WithColor returns a copy of o with a different color
func (o Options) WithColor(color string) Options {
	o.color = color
	return o
}
