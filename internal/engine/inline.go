package engine

import (
	"fmt"
	"regexp"

	"github.com/dlclark/regexp2"
)

// Patterns for header and inline rendering.
var (
	// header line whose title ends in a bound {#anchor} annotation
	anchoredHeaderPattern = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+\{#[^}]+\})$`)

	anchorRefPattern = regexp.MustCompile(`\{#([^}]+)\}`)

	// plain headers, deepest level first so ^## does not eat ### lines
	plainHeaderPatterns = []struct {
		re    *regexp.Regexp
		level int
	}{
		{regexp.MustCompile(`(?m)^###### (.+)$`), 6},
		{regexp.MustCompile(`(?m)^##### (.+)$`), 5},
		{regexp.MustCompile(`(?m)^#### (.+)$`), 4},
		{regexp.MustCompile(`(?m)^### (.+)$`), 3},
		{regexp.MustCompile(`(?m)^## (.+)$`), 2},
		{regexp.MustCompile(`(?m)^# (.+)$`), 1},
	}

	// emphasis, fixed precedence: triple before double before single
	boldItalicPattern = regexp.MustCompile(`\*\*\*(.+?)\*\*\*`)
	boldPattern       = regexp.MustCompile(`\*\*(.+?)\*\*`)

	// single-asterisk italic must not touch another delimiter on either
	// side, or fragments of **bold** would be misread; RE2 has no
	// lookaround, hence regexp2 for this one rule
	italicPattern = regexp2.MustCompile(`(?<!\*)\*([^*\n]+?)\*(?!\*)`, 0)

	linkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	rulePattern = regexp.MustCompile(`(?m)^---+$`)
)

// renderInline converts headers, emphasis, links and horizontal rules.
// Anchored headers bind first, then any leftover annotations are stripped
// (headers never touched by TOC extraction, e.g. with TOC disabled), then
// plain headers convert by level.
func renderInline(content string) string {
	content = bindAnchoredHeaders(content)
	content = stripAnchorAnnotations(content)
	content = convertPlainHeaders(content)
	content = convertEmphasis(content)
	content = convertLinks(content)
	content = convertRules(content)
	return content
}

// bindAnchoredHeaders converts headers carrying a {#anchor} annotation to
// level-matching tags with the anchor as element id.
func bindAnchoredHeaders(content string) string {
	return anchoredHeaderPattern.ReplaceAllStringFunc(content, func(line string) string {
		m := anchoredHeaderPattern.FindStringSubmatch(line)
		hashes, title := m[1], m[2]

		ref := anchorRefPattern.FindStringSubmatch(title)
		if ref == nil {
			return line
		}
		level := len(hashes)
		return fmt.Sprintf(`<h%d id="%s">%s</h%d>`,
			level, ref[1], stripAnchorAnnotations(title), level)
	})
}

// convertPlainHeaders converts remaining # headers to tags, all six levels.
func convertPlainHeaders(content string) string {
	for _, h := range plainHeaderPatterns {
		content = h.re.ReplaceAllString(content,
			fmt.Sprintf("<h%d>$1</h%d>", h.level, h.level))
	}
	return content
}

// convertEmphasis applies bold+italic, bold, then guarded italic.
func convertEmphasis(content string) string {
	content = boldItalicPattern.ReplaceAllString(content, "<strong><em>$1</em></strong>")
	content = boldPattern.ReplaceAllString(content, "<strong>$1</strong>")

	if replaced, err := italicPattern.Replace(content, "<em>$1</em>", -1, -1); err == nil {
		content = replaced
	}
	return content
}

// convertLinks converts [text](url) to anchors. No nested bracket support.
func convertLinks(content string) string {
	return linkPattern.ReplaceAllString(content, `<a href="$2">$1</a>`)
}

// convertRules converts lines of three or more hyphens to horizontal rules.
func convertRules(content string) string {
	return rulePattern.ReplaceAllString(content, "<hr/>")
}
