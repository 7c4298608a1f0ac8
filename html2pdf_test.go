package reportgen

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/KosukeOnishi/reportgen/internal/fileutil"
)

// mockRenderer implements pdfRenderer for testing without a browser.
type mockRenderer struct {
	result      []byte
	err         error
	calledWith  string
	fileContent string
}

func (m *mockRenderer) RenderFromFile(_ context.Context, filePath string) ([]byte, error) {
	m.calledWith = filePath
	if data, err := os.ReadFile(filePath); err == nil {
		m.fileContent = string(data)
	}
	return m.result, m.err
}

// testableRodConverter mirrors rodConverter.ToPDF's temp-file plumbing with
// a mock renderer in place of headless Chrome.
type testableRodConverter struct {
	mock *mockRenderer
}

func (c *testableRodConverter) ToPDF(ctx context.Context, htmlContent string) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.mock.RenderFromFile(ctx, tmpPath)
}

func TestRodConverterToPDF(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		html    string
		mock    *mockRenderer
		wantErr bool
	}{
		{
			name: "successful render returns PDF bytes",
			html: "<html><body>Test</body></html>",
			mock: &mockRenderer{result: []byte("%PDF-1.4 fake pdf content")},
		},
		{
			name:    "renderer error propagates",
			html:    "<html></html>",
			mock:    &mockRenderer{err: errors.New("browser crashed")},
			wantErr: true,
		},
		{
			name: "unicode content survives the temp file round trip",
			html: "<html><body>市場分析レポート</body></html>",
			mock: &mockRenderer{result: []byte("%PDF-1.4")},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			converter := &testableRodConverter{mock: tt.mock}
			result, err := converter.ToPDF(context.Background(), tt.html)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ToPDF: %v", err)
			}
			if string(result) != string(tt.mock.result) {
				t.Errorf("result = %q, want %q", result, tt.mock.result)
			}

			if !strings.Contains(tt.mock.calledWith, "reportgen-") ||
				!strings.HasSuffix(tt.mock.calledWith, ".html") {
				t.Errorf("renderer called with %q, want reportgen-*.html temp path", tt.mock.calledWith)
			}
			if tt.mock.fileContent != tt.html {
				t.Errorf("temp file content = %q, want %q", tt.mock.fileContent, tt.html)
			}
			if _, statErr := os.Stat(tt.mock.calledWith); !os.IsNotExist(statErr) {
				t.Errorf("temp file %q not cleaned up", tt.mock.calledWith)
			}
		})
	}
}

func TestRodRendererCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	renderer := newRodRenderer(defaultTimeout)
	if _, err := renderer.RenderFromFile(ctx, "ignored.html"); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled before any browser launch", err)
	}
}

func TestNewRodConverter(t *testing.T) {
	t.Parallel()

	converter := newRodConverter(defaultTimeout)
	if converter.renderer == nil {
		t.Fatal("expected non-nil renderer")
	}
	if converter.renderer.timeout != defaultTimeout {
		t.Errorf("timeout = %v, want %v", converter.renderer.timeout, defaultTimeout)
	}
	if err := converter.Close(); err != nil {
		t.Errorf("Close without launched browser: %v", err)
	}
}

func TestBuildPDFOptions(t *testing.T) {
	t.Parallel()

	opts := buildPDFOptions()

	if *opts.PaperWidth != paperWidthInches || *opts.PaperHeight != paperHeightInches {
		t.Errorf("paper size = %vx%v in, want %vx%v",
			*opts.PaperWidth, *opts.PaperHeight, paperWidthInches, paperHeightInches)
	}
	for name, m := range map[string]*float64{
		"top":    opts.MarginTop,
		"bottom": opts.MarginBottom,
		"left":   opts.MarginLeft,
		"right":  opts.MarginRight,
	} {
		if *m != 0 {
			t.Errorf("margin %s = %v, want 0 (the stylesheet's @page rule governs)", name, *m)
		}
	}
	if !opts.PrintBackground {
		t.Error("PrintBackground must be set")
	}
	if !opts.PreferCSSPageSize {
		t.Error("PreferCSSPageSize must be set")
	}
}
