package engine

import (
	"fmt"
	"regexp"
	"strings"
)

// Patterns for column-group and image substitution.
var (
	// <!-- columns --> ... <!-- /columns --> span; dot matches newlines
	columnSpanPattern = regexp.MustCompile(`(?s)<!--\s*columns\s*-->(.*?)<!--\s*/columns\s*-->`)

	// a whole physical line carrying two or more image references
	multiImageLinePattern = regexp.MustCompile(`(?m)^.*!\[[^\]]*\]\([^)]+\).*!\[[^\]]*\]\([^)]+\).*$`)
)

// substituteBlocks replaces column groups and image references with HTML
// fragments. It must run before paragraph wrapping so generated block
// elements are not re-wrapped. Column consumption runs first and removes
// those image tokens from further matching, so the global single-image pass
// afterwards cannot double-substitute.
func (p *Pipeline) substituteBlocks(content string) string {
	content = p.substituteColumnSpans(content)
	content = p.substituteInlineColumns(content)
	content = p.substituteImages(content)
	return content
}

// substituteColumnSpans converts explicit column spans into column layouts.
// A span containing no image references passes through verbatim, markers
// included.
func (p *Pipeline) substituteColumnSpans(content string) string {
	return columnSpanPattern.ReplaceAllStringFunc(content, func(span string) string {
		inner := columnSpanPattern.FindStringSubmatch(span)[1]
		html, ok := p.columnGroupHTML(inner)
		if !ok {
			return span
		}
		return html
	})
}

// substituteInlineColumns treats any single physical line carrying 2+ image
// references as an implicit column group. Lines with exactly one reference
// are left to standard image substitution.
func (p *Pipeline) substituteInlineColumns(content string) string {
	return multiImageLinePattern.ReplaceAllStringFunc(content, func(line string) string {
		if classifyLine(line) != lineColumnGroup {
			return line
		}
		html, ok := p.columnGroupHTML(line)
		if !ok {
			return line
		}
		return html
	})
}

// columnGroupHTML renders every resolvable image reference in span as one
// side-by-side column layout. Returns false when span holds no references.
// Unresolvable references are skipped silently: a column slot is cosmetic,
// unlike a standalone figure.
func (p *Pipeline) columnGroupHTML(span string) (string, bool) {
	refs := imagePattern.FindAllStringSubmatch(span, -1)
	if len(refs) == 0 {
		return "", false
	}

	var b strings.Builder
	b.WriteString(`<div class="image-columns">`)
	for _, ref := range refs {
		alt, path := ref[1], ref[2]
		payload, ok := p.resolver.Resolve(path, p.opts.BaseDir)
		if !ok {
			continue
		}
		fmt.Fprintf(&b,
			`<figure class="column-item"><img src="%s" alt="%s"/><figcaption>%s</figcaption></figure>`,
			payload.DataURI(), alt, alt)
	}
	b.WriteString(`</div>`)
	return b.String(), true
}

// substituteImages converts each remaining image reference into an embedded
// figure, or a visible placeholder when the reference cannot be resolved.
// Resolution failure never aborts the pipeline.
func (p *Pipeline) substituteImages(content string) string {
	return imagePattern.ReplaceAllStringFunc(content, func(ref string) string {
		m := imagePattern.FindStringSubmatch(ref)
		alt, path := m[1], m[2]

		payload, ok := p.resolver.Resolve(path, p.opts.BaseDir)
		if !ok {
			return fmt.Sprintf(
				`<figure class="missing-image"><div style="background:#f0f0f0; padding:40px; text-align:center; border:1px dashed #ccc;">[Image: %s]</div></figure>`,
				alt)
		}
		return fmt.Sprintf(
			`<figure><img src="%s" alt="%s" style="max-width:100%%; height:auto;"/><figcaption>%s</figcaption></figure>`,
			payload.DataURI(), alt, alt)
	})
}
