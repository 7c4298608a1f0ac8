package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		asset   string
		wantErr bool
	}{
		{"simple name", "report", false},
		{"hyphenated name", "report-dark", false},
		{"empty", "", true},
		{"dot", "report.css", true},
		{"slash", "dir/report", true},
		{"backslash", `dir\report`, true},
		{"traversal", "..", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.asset)
			if tt.wantErr && !errors.Is(err, ErrInvalidAssetName) {
				t.Errorf("got %v, want ErrInvalidAssetName", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestEmbeddedLoader(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	t.Run("default style loads", func(t *testing.T) {
		t.Parallel()

		css, err := loader.LoadStyle(DefaultStyleName)
		if err != nil {
			t.Fatalf("LoadStyle: %v", err)
		}
		if !strings.Contains(css, "@page") {
			t.Error("default style missing @page print rule")
		}
		if !strings.Contains(css, ".toc") {
			t.Error("default style missing TOC rules")
		}
	})

	t.Run("unknown style", func(t *testing.T) {
		t.Parallel()

		if _, err := loader.LoadStyle("nope"); !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("got %v, want ErrStyleNotFound", err)
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()

		if _, err := loader.LoadStyle("../etc/passwd"); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("got %v, want ErrInvalidAssetName", err)
		}
	})
}

func TestAvailableStyles(t *testing.T) {
	t.Parallel()

	names := AvailableStyles()
	found := false
	for _, n := range names {
		if n == DefaultStyleName {
			found = true
		}
	}
	if !found {
		t.Errorf("AvailableStyles() = %v, missing %q", names, DefaultStyleName)
	}
}

func TestFilesystemLoader(t *testing.T) {
	t.Parallel()

	t.Run("loads from directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		stylesDir := filepath.Join(dir, "styles")
		if err := os.MkdirAll(stylesDir, 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(stylesDir, "custom.css"), []byte("body{}"), 0o644); err != nil {
			t.Fatal(err)
		}

		loader, err := NewFilesystemLoader(dir)
		if err != nil {
			t.Fatalf("NewFilesystemLoader: %v", err)
		}

		css, err := loader.LoadStyle("custom")
		if err != nil {
			t.Fatalf("LoadStyle: %v", err)
		}
		if css != "body{}" {
			t.Errorf("css = %q", css)
		}
	})

	t.Run("falls back to embedded", func(t *testing.T) {
		t.Parallel()

		loader, err := NewFilesystemLoader(t.TempDir())
		if err != nil {
			t.Fatalf("NewFilesystemLoader: %v", err)
		}

		css, err := loader.LoadStyle(DefaultStyleName)
		if err != nil {
			t.Fatalf("LoadStyle fallback: %v", err)
		}
		if css == "" {
			t.Error("fallback returned empty style")
		}
	})

	t.Run("rejects missing directory", func(t *testing.T) {
		t.Parallel()

		_, err := NewFilesystemLoader(filepath.Join(t.TempDir(), "nope"))
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("got %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("rejects empty path", func(t *testing.T) {
		t.Parallel()

		if _, err := NewFilesystemLoader(""); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("got %v, want ErrInvalidBasePath", err)
		}
	})
}
