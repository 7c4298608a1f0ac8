package engine

import "testing"

func TestWrapParagraphs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "plain block becomes a paragraph",
			content: "some prose",
			want:    "<p>some prose</p>",
		},
		{
			name:    "blocks split on blank lines",
			content: "first\n\nsecond",
			want:    "<p>first</p>\n<p>second</p>",
		},
		{
			name:    "internal newline stays inside one paragraph",
			content: "line one\nline two",
			want:    "<p>line one\nline two</p>",
		},
		{
			name:    "structural block passes through",
			content: "<h2>Heading</h2>",
			want:    "<h2>Heading</h2>",
		},
		{
			name:    "table passes through",
			content: "<table>\n<tr><td>x</td></tr>\n</table>",
			want:    "<table>\n<tr><td>x</td></tr>\n</table>",
		},
		{
			name:    "unknown tag passes through",
			content: "<nav>toc</nav>",
			want:    "<nav>toc</nav>",
		},
		{
			name:    "empty blocks are dropped",
			content: "a\n\n\n\nb",
			want:    "<p>a</p>\n<p>b</p>",
		},
		{
			name:    "surrounding whitespace is trimmed",
			content: "  padded  ",
			want:    "<p>padded</p>",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := wrapParagraphs(tt.content); got != tt.want {
				t.Errorf("wrapParagraphs(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}
