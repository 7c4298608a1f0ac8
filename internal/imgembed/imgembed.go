// Package imgembed turns local image files into inline-embeddable payloads.
//
// The transformation engine never references images by path in its output:
// every resolvable image becomes a base64 data URI so the final HTML document
// is fully self-contained. Unsupported formats and missing files resolve to
// "not found", which callers degrade to placeholders rather than errors.
package imgembed

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
)

// MIME types for the supported embeddable image formats.
const (
	KindSVG  = "image/svg+xml"
	KindPNG  = "image/png"
	KindJPEG = "image/jpeg"
	KindGIF  = "image/gif"
	KindWebP = "image/webp"
)

// Payload is an image ready for inline embedding.
type Payload struct {
	Kind string // MIME type, one of the Kind constants
	Data []byte // raw file contents
}

// DataURI renders the payload as a base64 data URI.
func (p Payload) DataURI() string {
	return "data:" + p.Kind + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}

// Resolver locates an image reference and returns an embeddable payload.
// The second return value is false when the reference cannot be resolved;
// resolution failure is never an error at this level.
type Resolver interface {
	Resolve(ref, baseDir string) (Payload, bool)
}

// FileResolver resolves references against the local filesystem.
// Relative references are joined with baseDir when one is given.
type FileResolver struct{}

// Compile-time interface check.
var _ Resolver = FileResolver{}

// Resolve reads the referenced file and returns its payload.
// Returns false for missing files and for unsupported extensions.
func (FileResolver) Resolve(ref, baseDir string) (Payload, bool) {
	path := ref
	if baseDir != "" && !filepath.IsAbs(ref) {
		path = filepath.Join(baseDir, ref)
	}

	kind := KindForPath(path)
	if kind == "" {
		return Payload{}, false
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from author-controlled document content
	if err != nil {
		return Payload{}, false
	}

	return Payload{Kind: kind, Data: data}, true
}

// KindForPath maps a file extension to its MIME type.
// Returns "" for extensions that cannot be embedded.
func KindForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return KindSVG
	case ".png":
		return KindPNG
	case ".jpg", ".jpeg":
		return KindJPEG
	case ".gif":
		return KindGIF
	case ".webp":
		return KindWebP
	default:
		return ""
	}
}
