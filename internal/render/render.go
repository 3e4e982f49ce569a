package render

import "strings"

// Markdown renders markdown content for the terminal using a pooled renderer
func Markdown(content string, opts Options) (string, error) {
	renderer, err := globalPool.get(opts)
	if err != nil {
		return "", err
	}
	defer globalPool.put(opts, renderer)

	return renderer.Render(content)
}

// Reply formats a consultant reply for display.
//
// Replies are shown verbatim unless markdown is enabled. If rendering fails
// the verbatim text is returned, so a reply is never lost to a style error.
func Reply(text string, markdown bool, opts Options) string {
	if !markdown {
		return text
	}
	out, err := Markdown(text, opts)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}
