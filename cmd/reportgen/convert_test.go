package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/KosukeOnishi/reportgen/internal/config"
)

func writeMarkdown(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolveTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		flagTitle string
		content   string
		inputPath string
		want      string
	}{
		{
			name:      "flag wins",
			flagTitle: "Explicit",
			content:   "# Heading",
			inputPath: "report.md",
			want:      "Explicit",
		},
		{
			name:      "first heading",
			content:   "intro\n\n## Market Analysis\n\ntext",
			inputPath: "report.md",
			want:      "Market Analysis",
		},
		{
			name:      "file stem fallback",
			content:   "no headings here",
			inputPath: "quarterly-report.md",
			want:      "quarterly-report",
		},
		{
			name:    "literal content with no headings",
			content: "no headings here",
			want:    "Report",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := resolveTitle(tt.flagTitle, tt.content, tt.inputPath)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	if err := validateWorkers(0); err != nil {
		t.Errorf("0 must be valid (auto): %v", err)
	}
	if err := validateWorkers(8); err != nil {
		t.Errorf("8 must be valid: %v", err)
	}
	if err := validateWorkers(-1); !errors.Is(err, ErrInvalidWorkerCount) {
		t.Errorf("got %v, want ErrInvalidWorkerCount", err)
	}
	if err := validateWorkers(maxWorkers + 1); !errors.Is(err, ErrInvalidWorkerCount) {
		t.Errorf("got %v, want ErrInvalidWorkerCount", err)
	}
}

func TestValidateMarkdownExtension(t *testing.T) {
	t.Parallel()

	if err := validateMarkdownExtension("a.md"); err != nil {
		t.Errorf(".md rejected: %v", err)
	}
	if err := validateMarkdownExtension("a.MARKDOWN"); err != nil {
		t.Errorf(".markdown rejected: %v", err)
	}
	if err := validateMarkdownExtension("a.txt"); !errors.Is(err, ErrInvalidExtension) {
		t.Errorf("got %v, want ErrInvalidExtension", err)
	}
}

func TestResolveFiles(t *testing.T) {
	t.Parallel()

	t.Run("no input", func(t *testing.T) {
		t.Parallel()

		_, err := resolveFiles(nil, "", "", config.DefaultConfig())
		if !errors.Is(err, ErrNoInput) {
			t.Errorf("got %v, want ErrNoInput", err)
		}
	})

	t.Run("explicit output file for single input", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeMarkdown(t, dir, "r.md", "x")

		files, err := resolveFiles([]string{input}, "", filepath.Join(dir, "out", "final.pdf"), config.DefaultConfig())
		if err != nil {
			t.Fatalf("resolveFiles: %v", err)
		}
		if len(files) != 1 {
			t.Fatalf("len = %d", len(files))
		}
		if want := filepath.Join(dir, "out", "final"); files[0].OutputPath != want {
			t.Errorf("OutputPath = %q, want %q", files[0].OutputPath, want)
		}
	})

	t.Run("directory output for multiple inputs", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		a := writeMarkdown(t, dir, "a.md", "x")
		b := writeMarkdown(t, dir, "b.md", "x")

		files, err := resolveFiles([]string{a, b}, "", "outdir", config.DefaultConfig())
		if err != nil {
			t.Fatalf("resolveFiles: %v", err)
		}
		if files[0].OutputPath != filepath.Join("outdir", "a") {
			t.Errorf("OutputPath = %q", files[0].OutputPath)
		}
		if files[1].OutputPath != filepath.Join("outdir", "b") {
			t.Errorf("OutputPath = %q", files[1].OutputPath)
		}
	})

	t.Run("config default dir applies", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeMarkdown(t, dir, "r.md", "x")

		cfg := config.DefaultConfig()
		cfg.Output.DefaultDir = "reports"

		files, err := resolveFiles([]string{input}, "", "", cfg)
		if err != nil {
			t.Fatalf("resolveFiles: %v", err)
		}
		if files[0].OutputPath != filepath.Join("reports", "r") {
			t.Errorf("OutputPath = %q", files[0].OutputPath)
		}
	})

	t.Run("missing input file", func(t *testing.T) {
		t.Parallel()

		_, err := resolveFiles([]string{filepath.Join(t.TempDir(), "nope.md")}, "", "", config.DefaultConfig())
		if !errors.Is(err, ErrReadContent) {
			t.Errorf("got %v, want ErrReadContent", err)
		}
	})

	t.Run("literal content", func(t *testing.T) {
		t.Parallel()

		files, err := resolveFiles(nil, "## Results\n\nGrowth continued.", "", config.DefaultConfig())
		if err != nil {
			t.Fatalf("resolveFiles: %v", err)
		}
		if len(files) != 1 {
			t.Fatalf("len = %d", len(files))
		}
		if files[0].Literal == "" || files[0].InputPath != "" {
			t.Errorf("literal entry = %+v", files[0])
		}
		if files[0].OutputPath != filepath.Join(".", "report") {
			t.Errorf("OutputPath = %q", files[0].OutputPath)
		}
	})

	t.Run("content flag pointing at existing file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeMarkdown(t, dir, "notes.md", "x")

		files, err := resolveFiles(nil, input, "", config.DefaultConfig())
		if err != nil {
			t.Fatalf("resolveFiles: %v", err)
		}
		if files[0].InputPath != input || files[0].Literal != "" {
			t.Errorf("file entry = %+v", files[0])
		}
	})

	t.Run("wrong extension", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "r.txt")
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}

		_, err := resolveFiles([]string{path}, "", "", config.DefaultConfig())
		if !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("got %v, want ErrInvalidExtension", err)
		}
	})
}

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Report.Author = "Config Author"
	cfg.TOC.Title = "Config TOC"

	flags := &convertFlags{}
	flags.report.author = "Flag Author"
	flags.toc.disabled = true

	mergeFlags(flags, cfg)

	if cfg.Report.Author != "Flag Author" {
		t.Errorf("author = %q, CLI must win", cfg.Report.Author)
	}
	if cfg.TOC.Title != "Config TOC" {
		t.Errorf("unset flag must keep config value, got %q", cfg.TOC.Title)
	}
	if !cfg.TOC.Disabled {
		t.Error("no-toc flag not merged")
	}
}
