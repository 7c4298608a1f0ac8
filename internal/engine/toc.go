package engine

import (
	"fmt"
	"regexp"
	"strings"
)

// Patterns for header scanning and anchor slugs.
var (
	// Level-2 and level-3 headers only: the level-1 header is the document
	// title and is rendered separately; levels 4+ are too deep for the TOC.
	tocHeaderPattern = regexp.MustCompile(`^(#{2,3})\s+(.+)$`)

	// {#anchor} annotation, with any leading whitespace
	anchorAnnotationPattern = regexp.MustCompile(`\s*\{#[^}]+\}`)

	// Characters outside the slug alphabet. Letters and digits of any
	// script are retained so Japanese and other non-ASCII headers keep
	// usable anchors.
	slugStripPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)

	whitespaceRunPattern = regexp.MustCompile(`\s+`)
)

// extractTOC scans the document for level-2/3 headers, assigns each a unique
// anchor, and returns the TOC as markdown plus the document with every
// participating header rewritten to carry an explicit {#anchor} annotation.
//
// Pre-existing annotations are stripped from titles before slug derivation,
// so running the extractor over its own output does not stack anchors.
// When no headers qualify, the TOC is empty and the text returns unmodified.
func extractTOC(content, tocTitle string) (tocMarkdown, rewritten string) {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	var items []string

	// Collision table scoped to this call: base slug to last used suffix.
	seen := make(map[string]int)

	for _, line := range lines {
		m := tocHeaderPattern.FindStringSubmatch(line)
		if m == nil {
			out = append(out, line)
			continue
		}

		level := len(m[1])
		title := stripAnchorAnnotations(strings.TrimSpace(m[2]))

		anchor := deriveSlug(title)
		if n, collided := seen[anchor]; collided {
			seen[anchor] = n + 1
			anchor = fmt.Sprintf("%s-%d", anchor, n+1)
		} else {
			seen[anchor] = 0
		}

		indent := strings.Repeat("  ", level-2)
		items = append(items, fmt.Sprintf("%s- [%s](#%s)", indent, title, anchor))
		out = append(out, fmt.Sprintf("%s %s {#%s}", m[1], title, anchor))
	}

	if len(items) == 0 {
		return "", content
	}

	tocMarkdown = "## " + tocTitle + "\n\n" + strings.Join(items, "\n") + "\n\n---\n\n"
	return tocMarkdown, strings.Join(out, "\n")
}

// deriveSlug normalizes a header title into an anchor slug: lowercase,
// non-word characters dropped, whitespace runs collapsed to single hyphens.
func deriveSlug(title string) string {
	slug := slugStripPattern.ReplaceAllString(strings.ToLower(title), "")
	return whitespaceRunPattern.ReplaceAllString(slug, "-")
}

// stripAnchorAnnotations removes every {#anchor} annotation from s.
func stripAnchorAnnotations(s string) string {
	return anchorAnnotationPattern.ReplaceAllString(s, "")
}
