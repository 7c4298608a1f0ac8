package engine

import (
	"strings"
	"testing"
)

func TestGroupBlockquotes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "single quote line",
			content: "> one line",
			want:    "<blockquote>one line</blockquote>",
		},
		{
			name:    "consecutive lines merge into one quote",
			content: "> first\n> second",
			want:    "<blockquote>first<br/>second</blockquote>",
		},
		{
			name:    "separated runs stay separate quotes",
			content: "> a\n\n> b",
			want:    "<blockquote>a</blockquote>\n\n<blockquote>b</blockquote>",
		},
		{
			name:    "plain text untouched",
			content: "no quotes here",
			want:    "no quotes here",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := groupBlockquotes(tt.content); got != tt.want {
				t.Errorf("groupBlockquotes(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestGroupTables(t *testing.T) {
	t.Parallel()

	t.Run("header separator and body rows", func(t *testing.T) {
		t.Parallel()

		content := "| Name | Value |\n|------|-------|\n| A | 1 |\n| B | 2 |"
		got := groupTables(content)

		for _, want := range []string{
			"<table>", "<thead><tr>", "<th>Name</th>", "<th>Value</th>",
			"<tbody>", "<td>A</td>", "<td>1</td>", "<td>B</td>", "</tbody></table>",
		} {
			if !strings.Contains(got, want) {
				t.Errorf("missing %q in:\n%s", want, got)
			}
		}
		if strings.Contains(got, "------") {
			t.Errorf("separator row leaked into output:\n%s", got)
		}
	})

	t.Run("lone pipe line is not a table", func(t *testing.T) {
		t.Parallel()

		content := "| just one |"
		if got := groupTables(content); got != content {
			t.Errorf("single row must pass through, got:\n%s", got)
		}
	})

	t.Run("header and separator alone form a table with no body rows", func(t *testing.T) {
		t.Parallel()

		content := "| A | B |\n|---|---|"
		got := groupTables(content)

		if !strings.Contains(got, "<th>A</th>") || !strings.Contains(got, "<th>B</th>") {
			t.Errorf("header cells missing:\n%s", got)
		}
		if strings.Contains(got, "<td>") {
			t.Errorf("unexpected body cells:\n%s", got)
		}
	})

	t.Run("second row is discarded even if not a separator", func(t *testing.T) {
		t.Parallel()

		content := "| H |\n| not-a-separator |\n| body |"
		got := groupTables(content)

		if strings.Contains(got, "not-a-separator") {
			t.Errorf("row 1 must be dropped unconditionally:\n%s", got)
		}
		if !strings.Contains(got, "<td>body</td>") {
			t.Errorf("body row missing:\n%s", got)
		}
	})

	t.Run("ragged rows are tolerated", func(t *testing.T) {
		t.Parallel()

		content := "| A | B | C |\n|---|---|---|\n| only | two |"
		got := groupTables(content)

		if n := strings.Count(got, "<td>"); n != 2 {
			t.Errorf("want 2 body cells, got %d:\n%s", n, got)
		}
	})
}

func TestSplitTableRow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		row  string
		want []string
	}{
		{"framed row", "| a | b |", []string{"a", "b"}},
		{"unframed row falls back to non-empty tokens", "a | b", []string{"a", "b"}},
		{"empty inner cells survive", "| a |  | c |", []string{"a", "", "c"}},
		{"single framed cell", "| only |", []string{"only"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := splitTableRow(tt.row)
			if len(got) != len(tt.want) {
				t.Fatalf("splitTableRow(%q) = %v, want %v", tt.row, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("splitTableRow(%q)[%d] = %q, want %q", tt.row, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestGroupLists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "unordered run",
			content: "- a\n- b",
			want:    "<ul>\n<li>a</li>\n<li>b</li>\n</ul>",
		},
		{
			name:    "star items join dash items",
			content: "- a\n* b",
			want:    "<ul>\n<li>a</li>\n<li>b</li>\n</ul>",
		},
		{
			name:    "ordered run drops numbering",
			content: "1. first\n2. second",
			want:    "<ol>\n<li>first</li>\n<li>second</li>\n</ol>",
		},
		{
			name:    "switching kinds closes and reopens",
			content: "- a\n1. b\n- c",
			want:    "<ul>\n<li>a</li>\n</ul>\n<ol>\n<li>b</li>\n</ol>\n<ul>\n<li>c</li>\n</ul>",
		},
		{
			name:    "plain line terminates the list",
			content: "- a\ntext",
			want:    "<ul>\n<li>a</li>\n</ul>\ntext",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := groupLists(tt.content); got != tt.want {
				t.Errorf("groupLists(%q) =\n%q\nwant\n%q", tt.content, got, tt.want)
			}
		})
	}
}
