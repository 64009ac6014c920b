package render

import "strings"

// Markdown renders markdown content for terminal display.
func Markdown(content string, opts Options) (string, error) {
	renderer, err := rendererFor(opts)
	if err != nil {
		return "", err
	}
	return renderer.Render(content)
}

// MarkdownOrPlain renders content, returning it unchanged if rendering
// fails. Surrounding blank lines added by glamour are trimmed.
func MarkdownOrPlain(content string, opts Options) string {
	out, err := Markdown(content, opts)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}
