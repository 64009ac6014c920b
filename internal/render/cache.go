package render

import "github.com/charmbracelet/glamour"

// cached holds the last renderer built and the options it was built
// with. Rendering happens on the chat loop only, so it is not locked.
var cached struct {
	opts     Options
	renderer *glamour.TermRenderer
}

// rendererFor returns the cached renderer when opts match the last call
// and builds a replacement otherwise. A failed build leaves the cache
// untouched.
func rendererFor(opts Options) (*glamour.TermRenderer, error) {
	if cached.renderer != nil && cached.opts == opts {
		return cached.renderer, nil
	}

	renderer, err := createRenderer(opts)
	if err != nil {
		return nil, err
	}
	cached.opts = opts
	cached.renderer = renderer
	return renderer, nil
}

func createRenderer(opts Options) (*glamour.TermRenderer, error) {
	rendererOpts := []glamour.TermRendererOption{
		glamour.WithStylePath(opts.Style),
		glamour.WithWordWrap(opts.Width),
		glamour.WithTableWrap(opts.TableWrap),
		glamour.WithInlineTableLinks(opts.InlineTableLinks),
	}
	if opts.EnableEmoji {
		rendererOpts = append(rendererOpts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		rendererOpts = append(rendererOpts, glamour.WithPreservedNewLines())
	}
	return glamour.NewTermRenderer(rendererOpts...)
}
