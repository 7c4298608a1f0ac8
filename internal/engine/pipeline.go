package engine

import (
	"context"

	"github.com/KosukeOnishi/reportgen/internal/imgembed"
)

// DefaultTOCTitle heads the generated table of contents.
const DefaultTOCTitle = "目次"

// Options configures one Pipeline.
type Options struct {
	// BaseDir resolves relative image references; empty means references
	// are taken as-is.
	BaseDir string

	// TOC enables table-of-contents extraction.
	TOC bool

	// TOCTitle overrides DefaultTOCTitle.
	TOCTitle string

	// Resolver locates referenced images. Defaults to the filesystem
	// resolver.
	Resolver imgembed.Resolver
}

// Pipeline renders one extended-markdown document to HTML. It holds no
// mutable state across invocations and may be shared between goroutines.
type Pipeline struct {
	opts     Options
	resolver imgembed.Resolver
}

// New creates a Pipeline with the given options.
func New(opts Options) *Pipeline {
	if opts.TOCTitle == "" {
		opts.TOCTitle = DefaultTOCTitle
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = imgembed.FileResolver{}
	}
	return &Pipeline{opts: opts, resolver: resolver}
}

// Render runs the transformation stages over content and returns the HTML
// body: the TOC fragment (when enabled and non-empty) followed by the
// rendered document.
//
// The TOC fragment is itself routed back through the rendering stages, then
// wrapped in a nav container so the assembler's stylesheet can pick it out.
func (p *Pipeline) Render(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return ""
	}

	var tocHTML string
	if p.opts.TOC {
		tocMarkdown, rewritten := extractTOC(content, p.opts.TOCTitle)
		if tocMarkdown != "" {
			content = rewritten
			tocHTML = `<nav class="toc">` + p.renderBody(ctx, tocMarkdown) + `</nav>`
		}
	}

	return tocHTML + p.renderBody(ctx, content)
}

// renderBody applies stages 2 through 5 in order. Ordering is load-bearing:
// block substitution must precede paragraph wrapping, and anchor binding
// must precede plain header conversion.
func (p *Pipeline) renderBody(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return ""
	}
	content = p.substituteBlocks(content)

	if ctx.Err() != nil {
		return ""
	}
	content = renderInline(content)

	if ctx.Err() != nil {
		return ""
	}
	content = buildBlocks(content)

	return wrapParagraphs(content)
}
