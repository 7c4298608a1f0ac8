package engine

import (
	"context"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func TestRenderEndToEnd(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"## Overview",
		"",
		"This report covers **growth** and *risk*.",
		"",
		"### Findings",
		"",
		"> key insight",
		"> second line",
		"",
		"| Metric | Value |",
		"|--------|-------|",
		"| Growth | 12%   |",
		"",
		"- point one",
		"- point two",
		"",
		"1. step one",
		"2. step two",
		"",
		"---",
		"",
		"Closing paragraph with a [link](https://example.com).",
	}, "\n")

	p := New(Options{TOC: true, Resolver: mapResolver{}})
	got := p.Render(context.Background(), content)

	for _, want := range []string{
		`<nav class="toc">`,
		"<h2>目次</h2>",
		`<a href="#overview">Overview</a>`,
		`<a href="#findings">Findings</a>`,
		`<h2 id="overview">Overview</h2>`,
		`<h3 id="findings">Findings</h3>`,
		"<strong>growth</strong>",
		"<em>risk</em>",
		"<blockquote>key insight<br/>second line</blockquote>",
		"<th>Metric</th>",
		"<td>Growth</td>",
		"<li>point one</li>",
		"<ol>",
		"<li>step one</li>",
		"<hr/>",
		`<a href="https://example.com">link</a>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered output missing %q", want)
		}
	}

	if strings.Contains(got, "{#") {
		t.Errorf("anchor annotations leaked into output:\n%s", got)
	}

	// The fragment must parse cleanly.
	if _, err := html.Parse(strings.NewReader(got)); err != nil {
		t.Errorf("output does not parse as HTML: %v", err)
	}
}

func TestRenderTOCDisabled(t *testing.T) {
	t.Parallel()

	p := New(Options{TOC: false, Resolver: mapResolver{}})
	got := p.Render(context.Background(), "## Section\n\ntext")

	if strings.Contains(got, `<nav class="toc">`) {
		t.Errorf("TOC rendered although disabled:\n%s", got)
	}
	if !strings.Contains(got, "<h2>Section</h2>") {
		t.Errorf("header missing without TOC:\n%s", got)
	}
	if strings.Contains(got, "{#") {
		t.Errorf("anchor annotations leaked:\n%s", got)
	}
}

func TestRenderCustomTOCTitle(t *testing.T) {
	t.Parallel()

	p := New(Options{TOC: true, TOCTitle: "Contents", Resolver: mapResolver{}})
	got := p.Render(context.Background(), "## Only\n\ntext")

	if !strings.Contains(got, "<h2>Contents</h2>") {
		t.Errorf("custom TOC title missing:\n%s", got)
	}
}

func TestRenderNoHeadersNoTOC(t *testing.T) {
	t.Parallel()

	p := New(Options{TOC: true, Resolver: mapResolver{}})
	got := p.Render(context.Background(), "just a paragraph")

	if strings.Contains(got, "<nav") {
		t.Errorf("TOC rendered for headerless document:\n%s", got)
	}
	if got != "<p>just a paragraph</p>" {
		t.Errorf("got %q", got)
	}
}

func TestRenderCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(Options{TOC: true, Resolver: mapResolver{}})
	if got := p.Render(ctx, "## Section\n\ntext"); got != "" {
		t.Errorf("canceled render must return empty output, got %q", got)
	}
}
