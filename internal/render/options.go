// Package render turns consultant replies into terminal output and holds
// the colour themes of the chat view.
package render

// Options configures the markdown renderer
type Options struct {
	// Width is the word wrap column
	Width int

	// Style is a glamour standard style name or a path to a JSON style file
	Style string

	EnableEmoji      bool
	PreserveNewLines bool
	TableWrap        bool
	InlineTableLinks bool
}

// DefaultOptions returns the renderer defaults
func DefaultOptions() Options {
	return Options{
		Width:            80,
		Style:            "dark",
		EnableEmoji:      false,
		PreserveNewLines: true,
		TableWrap:        true,
		InlineTableLinks: false,
	}
}

// WithWidth returns a copy of o wrapping at width.
// Widths below 20 columns are raised to 20.
func (o Options) WithWidth(width int) Options {
	if width < minWidth {
		width = minWidth
	}
	o.Width = width
	return o
}

// WithStyle returns a copy of o using style
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}

const minWidth = 20
