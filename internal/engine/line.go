package engine

import (
	"regexp"
	"strings"
)

// lineKind classifies a single physical line for the block-structure builder.
type lineKind int

// The block builder branches on blockquote, table-row and list-item kinds;
// the image substituter consumes the column-group kind. Header, rule and
// single-image lines are tagged for completeness but reach their stages
// through the regex passes, so their consumers treat them as plain.
const (
	linePlain lineKind = iota
	lineHeader
	lineRule
	lineBlockquote
	lineTableRow
	lineUnorderedItem
	lineOrderedItem
	lineSingleImage
	lineColumnGroup
)

// Precompiled line-shape patterns.
var (
	// ![alt](path) image reference; alt may be empty
	imagePattern = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)

	headerLinePattern  = regexp.MustCompile(`^#{1,6}\s`)
	ruleLinePattern    = regexp.MustCompile(`^---+$`)
	orderedItemPattern = regexp.MustCompile(`^\d+\.\s`)
)

// classifyLine tags one line with its structural kind. Lines carrying two or
// more image references classify as column groups regardless of other shape,
// matching the substitution order of the pipeline.
func classifyLine(line string) lineKind {
	stripped := strings.TrimSpace(line)

	switch n := len(imagePattern.FindAllString(stripped, -1)); {
	case n >= 2:
		return lineColumnGroup
	case n == 1 && imagePattern.FindString(stripped) == stripped:
		return lineSingleImage
	}

	switch {
	case strings.HasPrefix(stripped, "> "):
		return lineBlockquote
	case isTableRow(stripped):
		return lineTableRow
	case headerLinePattern.MatchString(stripped):
		return lineHeader
	case ruleLinePattern.MatchString(stripped):
		return lineRule
	case strings.HasPrefix(stripped, "- ") || strings.HasPrefix(stripped, "* "):
		return lineUnorderedItem
	case orderedItemPattern.MatchString(stripped):
		return lineOrderedItem
	default:
		return linePlain
	}
}

// isTableRow reports whether a stripped line is pipe-framed on both ends.
// This also covers alignment separator rows such as |---|---|.
func isTableRow(stripped string) bool {
	return len(stripped) >= 2 &&
		strings.HasPrefix(stripped, "|") &&
		strings.HasSuffix(stripped, "|")
}
