package engine

import (
	"fmt"
	"strings"
)

// Figure is a caller-supplied image descriptor for the document's side
// sections.
type Figure struct {
	Path    string
	Caption string
}

// Document holds everything the assembler composes into the final HTML.
type Document struct {
	Title    string
	Author   string
	Date     string
	Body     string // rendered body, TOC included
	CSS      string // inline print stylesheet
	Diagrams []Figure
	Figures  []Figure
}

// documentTemplate is the self-contained output document. Slots: title,
// CSS, title again, date, author, body, diagrams section, figures section.
const documentTemplate = `<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="UTF-8">
<title>%s</title>
<style>
%s
</style>
</head>
<body>
<h1>%s</h1>
<div class="metadata">
<p>Date: %s | Author: %s</p>
</div>
<div class="content">
%s
</div>
%s%s</body>
</html>`

// Assemble composes the rendered body with the title block, metadata line,
// and the diagrams and figures sections, in that fixed order, into one
// self-contained HTML document with inline styling.
func (p *Pipeline) Assemble(doc Document) string {
	diagrams := p.imageSection("diagrams-section", "Diagrams", "Diagram", doc.Diagrams)
	figures := p.imageSection("images-section", "Figures", "Figure", doc.Figures)

	return fmt.Sprintf(documentTemplate,
		doc.Title, doc.CSS, doc.Title, doc.Date, doc.Author, doc.Body,
		diagrams, figures)
}

// imageSection renders one side section from caller-supplied descriptors.
// Descriptors whose path cannot be resolved are skipped silently; captions
// keep their position-based numbering either way, so a skipped entry leaves
// a numbering gap rather than renumbering its successors.
func (p *Pipeline) imageSection(class, heading, label string, figs []Figure) string {
	if len(figs) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<div class="%s"><h2>%s</h2>`, class, heading)

	for i, fig := range figs {
		payload, ok := p.resolver.Resolve(fig.Path, "")
		if !ok {
			continue
		}
		fmt.Fprintf(&b,
			"\n<figure>\n<img src=%q alt=%q/>\n<figcaption>%s %d: %s</figcaption>\n</figure>\n",
			payload.DataURI(), fig.Caption, label, i+1, fig.Caption)
	}
	b.WriteString("</div>\n")

	return b.String()
}
