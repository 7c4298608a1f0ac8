package reportgen

import (
	"time"

	"github.com/KosukeOnishi/reportgen/internal/assets"
)

// Descriptor names one image file to embed in a side section of the
// document, with its caption. Captions may be empty.
type Descriptor struct {
	Path    string `json:"path" yaml:"path"`
	Caption string `json:"caption" yaml:"caption"`
}

// Input holds everything needed to generate one report.
type Input struct {
	// Title becomes the document's <title> and top-level heading.
	// Required.
	Title string

	// Content is the extended-markdown body. Required.
	Content string

	// SourceDir resolves relative image references and relative links in
	// Content. Empty means references are taken as-is.
	SourceDir string

	// Author appears in the metadata line. Defaults to DefaultAuthor.
	Author string

	// Date appears in the metadata line. Defaults to today in ISO form.
	Date string

	// Diagrams and Figures populate the document's trailing sections, in
	// that order. Entries whose files cannot be read are skipped without
	// disturbing the numbering of later entries.
	Diagrams []Descriptor
	Figures  []Descriptor

	// DisableTOC suppresses table-of-contents extraction.
	DisableTOC bool

	// TOCTitle overrides the default TOC heading.
	TOCTitle string

	// CSS is appended after the selected stylesheet.
	CSS string

	// HTMLOnly skips PDF rendering; Result.PDF will be nil.
	HTMLOnly bool
}

// Result holds the generated document. HTML is always populated; PDF is
// nil when Input.HTMLOnly was set.
type Result struct {
	HTML string
	PDF  []byte
}

// DefaultAuthor is used when Input.Author is empty.
const DefaultAuthor = "Research Report Generator"

// Option configures a Service during creation.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout   time.Duration
	style     string
	assetPath string
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the browser operation timeout.
// Panics if d is not positive; a zero timeout would hang forever.
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("reportgen: timeout must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithStyle selects a named stylesheet instead of assets.DefaultStyleName.
func WithStyle(name string) Option {
	return func(s *Service) {
		s.cfg.style = name
	}
}

// WithAssetPath loads stylesheets from dir, falling back to the embedded
// assets for styles absent from it. Service creation fails if dir is not
// a readable directory.
func WithAssetPath(dir string) Option {
	return func(s *Service) {
		s.cfg.assetPath = dir
	}
}

// WithAssetLoader injects a custom asset loader, overriding both the
// embedded default and WithAssetPath.
func WithAssetLoader(loader assets.AssetLoader) Option {
	return func(s *Service) {
		s.assetLoader = loader
	}
}
