package engine

import (
	"regexp"
	"strings"
)

// structuralTagPattern recognizes blocks already rendered as block-level
// HTML; those must not be re-wrapped in paragraph markers.
var structuralTagPattern = regexp.MustCompile(`(?i)^<(h[1-6]|ul|ol|li|blockquote|figure|hr|p|div|table)`)

// wrapParagraphs partitions the text into blank-line-delimited blocks and
// wraps each plain-text block in one paragraph. Internal newlines are kept
// as-is, not converted to explicit breaks. Empty blocks are dropped.
func wrapParagraphs(content string) string {
	blocks := strings.Split(content, "\n\n")
	out := make([]string, 0, len(blocks))

	for _, block := range blocks {
		trimmed := strings.TrimSpace(block)
		switch {
		case trimmed == "":
			continue
		case structuralTagPattern.MatchString(trimmed):
			out = append(out, trimmed)
		case strings.HasPrefix(trimmed, "<"):
			// some other tag, pass through verbatim
			out = append(out, trimmed)
		default:
			out = append(out, "<p>"+trimmed+"</p>")
		}
	}

	return strings.Join(out, "\n")
}
