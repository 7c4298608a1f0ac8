package engine

import (
	"strings"
)

// buildBlocks converts contiguous runs of blockquote, table-row and
// list-item lines into grouped structural fragments. Three independent
// passes in fixed order; each is a two-state machine that enters on the
// first matching line, accumulates, and flushes on the first non-matching
// line or end of input.
func buildBlocks(content string) string {
	content = groupBlockquotes(content)
	content = groupTables(content)
	content = groupLists(content)
	return content
}

// groupBlockquotes joins each maximal run of "> " lines into a single
// blockquote with internal line breaks, not one quote per line.
func groupBlockquotes(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	var quoted []string

	flush := func() {
		if len(quoted) == 0 {
			return
		}
		out = append(out, "<blockquote>"+strings.Join(quoted, "<br/>")+"</blockquote>")
		quoted = nil
	}

	for _, line := range lines {
		if classifyLine(line) == lineBlockquote {
			quoted = append(quoted, strings.TrimSpace(line)[2:])
			continue
		}
		flush()
		out = append(out, line)
	}
	flush()

	return strings.Join(out, "\n")
}

// groupTables converts each maximal run of pipe-framed lines into a table.
// Runs shorter than two lines (header + separator) pass through as plain
// text. Row 0 holds header cells; row 1 is discarded unconditionally as the
// alignment separator; remaining rows become body rows, each split
// independently so ragged rows are tolerated.
func groupTables(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	var buffer []string

	flush := func() {
		if len(buffer) == 0 {
			return
		}
		out = append(out, convertTable(buffer))
		buffer = nil
	}

	for _, line := range lines {
		if classifyLine(line) == lineTableRow {
			buffer = append(buffer, strings.TrimSpace(line))
			continue
		}
		flush()
		out = append(out, line)
	}
	flush()

	return strings.Join(out, "\n")
}

// convertTable renders accumulated table rows to HTML, or returns them
// joined unmodified when the run is too short to be a table.
func convertTable(rows []string) string {
	if len(rows) < 2 {
		return strings.Join(rows, "\n")
	}

	parts := []string{"<table>", "<thead><tr>"}
	for _, cell := range splitTableRow(rows[0]) {
		parts = append(parts, "<th>"+cell+"</th>")
	}
	parts = append(parts, "</tr></thead>", "<tbody>")

	// rows[1] is the separator, dropped without validation
	for _, row := range rows[2:] {
		cells := splitTableRow(row)
		if len(cells) == 0 {
			continue
		}
		parts = append(parts, "<tr>")
		for _, cell := range cells {
			parts = append(parts, "<td>"+cell+"</td>")
		}
		parts = append(parts, "</tr>")
	}
	parts = append(parts, "</tbody></table>")

	return strings.Join(parts, "\n")
}

// splitTableRow splits a row on the pipe delimiter. The leading and
// trailing empty tokens of a properly framed row are dropped; if that drop
// yields nothing, fall back to keeping every non-empty token, which
// tolerates rows not framed on both ends.
func splitTableRow(row string) []string {
	tokens := strings.Split(row, "|")

	var cells []string
	if len(tokens) > 2 {
		for _, t := range tokens[1 : len(tokens)-1] {
			cells = append(cells, strings.TrimSpace(t))
		}
	}
	if len(cells) == 0 {
		for _, t := range tokens {
			if trimmed := strings.TrimSpace(t); trimmed != "" {
				cells = append(cells, trimmed)
			}
		}
	}
	return cells
}

// groupLists converts contiguous list-item lines into list containers.
// Unordered and ordered markers are mutually exclusive within one run:
// switching kinds closes the open container and opens the other, rather
// than mixing items inside one list.
func groupLists(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	inUnordered, inOrdered := false, false

	closeOpen := func() {
		if inUnordered {
			out = append(out, "</ul>")
			inUnordered = false
		}
		if inOrdered {
			out = append(out, "</ol>")
			inOrdered = false
		}
	}

	for _, line := range lines {
		stripped := strings.TrimSpace(line)

		switch classifyLine(line) {
		case lineUnorderedItem:
			if inOrdered {
				out = append(out, "</ol>")
				inOrdered = false
			}
			if !inUnordered {
				out = append(out, "<ul>")
				inUnordered = true
			}
			out = append(out, "<li>"+stripped[2:]+"</li>")

		case lineOrderedItem:
			if inUnordered {
				out = append(out, "</ul>")
				inUnordered = false
			}
			if !inOrdered {
				out = append(out, "<ol>")
				inOrdered = true
			}
			out = append(out, "<li>"+orderedItemPattern.ReplaceAllString(stripped, "")+"</li>")

		default:
			closeOpen()
			out = append(out, line)
		}
	}
	closeOpen()

	return strings.Join(out, "\n")
}
