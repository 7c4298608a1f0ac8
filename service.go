package reportgen

import (
	"context"
	"fmt"
	"time"

	"github.com/KosukeOnishi/reportgen/internal/assets"
	"github.com/KosukeOnishi/reportgen/internal/engine"
)

// Service orchestrates the markdown-to-report pipeline.
type Service struct {
	cfg          serviceConfig
	assetLoader  assets.AssetLoader
	pdfConverter pdfConverter
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithStyle).
func New(opts ...Option) (*Service, error) {
	s := &Service{
		cfg: serviceConfig{
			timeout: defaultTimeout,
			style:   assets.DefaultStyleName,
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.assetLoader == nil {
		if s.cfg.assetPath != "" {
			loader, err := assets.NewFilesystemLoader(s.cfg.assetPath)
			if err != nil {
				return nil, err
			}
			s.assetLoader = loader
		} else {
			s.assetLoader = assets.NewEmbeddedLoader()
		}
	}

	// Create PDF converter if not injected (e.g., by tests)
	if s.pdfConverter == nil {
		s.pdfConverter = newRodConverter(s.cfg.timeout)
	}

	return s, nil
}

// Convert runs the full pipeline and returns the rendered document.
// The context is used for cancellation and timeout.
func (s *Service) Convert(ctx context.Context, input Input) (*Result, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	css, err := s.assetLoader.LoadStyle(s.cfg.style)
	if err != nil {
		return nil, err
	}
	if input.CSS != "" {
		css = css + "\n" + input.CSS
	}

	pipe := engine.New(engine.Options{
		BaseDir:  input.SourceDir,
		TOC:      !input.DisableTOC,
		TOCTitle: input.TOCTitle,
	})

	body := pipe.Render(ctx, input.Content)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	htmlContent := pipe.Assemble(engine.Document{
		Title:    input.Title,
		Author:   resolveAuthor(input.Author),
		Date:     resolveDate(input.Date),
		Body:     body,
		CSS:      css,
		Diagrams: toFigures(input.Diagrams),
		Figures:  toFigures(input.Figures),
	})

	if input.SourceDir != "" {
		htmlContent, err = engine.RewriteRelativeLinks(htmlContent, input.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("rewriting links: %w", err)
		}
	}

	result := &Result{HTML: htmlContent}
	if input.HTMLOnly {
		return result, nil
	}

	pdfBytes, err := s.pdfConverter.ToPDF(ctx, htmlContent)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	result.PDF = pdfBytes

	return result, nil
}

// Close releases resources (headless Chrome browser).
func (s *Service) Close() error {
	if s.pdfConverter != nil {
		return s.pdfConverter.Close()
	}
	return nil
}

// validateInput checks that required fields are present and that every
// descriptor names a file.
func (s *Service) validateInput(input Input) error {
	if input.Title == "" {
		return ErrEmptyTitle
	}
	if input.Content == "" {
		return ErrEmptyContent
	}
	if err := validateDescriptors("diagram", input.Diagrams); err != nil {
		return err
	}
	return validateDescriptors("figure", input.Figures)
}

// validateDescriptors rejects descriptors without a path. A missing file
// merely skips the entry later, but an empty path is a caller contract
// violation.
func validateDescriptors(kind string, descs []Descriptor) error {
	for i, d := range descs {
		if d.Path == "" {
			return fmt.Errorf("%w: %s %d has no path", ErrInvalidDescriptor, kind, i)
		}
	}
	return nil
}

func resolveAuthor(author string) string {
	if author == "" {
		return DefaultAuthor
	}
	return author
}

func resolveDate(date string) string {
	if date == "" {
		return time.Now().Format("2006-01-02")
	}
	return date
}

// toFigures converts public descriptors to the engine's internal type.
func toFigures(descs []Descriptor) []engine.Figure {
	if len(descs) == 0 {
		return nil
	}
	figures := make([]engine.Figure, len(descs))
	for i, d := range descs {
		figures[i] = engine.Figure{Path: d.Path, Caption: d.Caption}
	}
	return figures
}
