// Package imgopt shrinks downloaded images before they are embedded.
//
// Embedded data URIs inflate the document by 4/3 of the raw bytes, so
// oversized photos are resized to a print-friendly width and recompressed.
// PNG is kept only for transparent images; everything else re-encodes as
// JPEG.
package imgopt

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	_ "image/gif" // decoder registration
	_ "golang.org/x/image/webp"
)

// Sentinel errors for optimization.
var (
	// ErrTooSmall marks icons and logos that are not worth optimizing.
	ErrTooSmall = errors.New("image too small to optimize")

	ErrDecode = errors.New("failed to decode image")
	ErrEncode = errors.New("failed to encode image")
)

// Defaults matching the print layout: body images render at most ~800px.
const (
	DefaultMaxWidth = 800
	DefaultQuality  = 85

	minWidth  = 200
	minHeight = 100

	filePermissions = 0o644
)

// Optimized describes the result of one optimization.
type Optimized struct {
	Path         string `json:"path"`
	OriginalSize int64  `json:"original_size"`
	Size         int64  `json:"size"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
}

// Optimize resizes and recompresses the image at inputPath into outputDir.
// Images below the minimum dimensions return ErrTooSmall so callers can
// skip them. Raster formats only; SVG files should be embedded as-is.
func Optimize(inputPath, outputDir string, maxWidth, quality int) (*Optimized, error) {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	originalSize := info.Size()

	f, err := os.Open(inputPath) // #nosec G304 -- caller-provided local path
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width < minWidth || height < minHeight {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooSmall, width, height)
	}

	transparent := hasTransparency(img)

	if width > maxWidth {
		newHeight := height * maxWidth / width
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newHeight))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		width, height = maxWidth, newHeight
	}

	ext := ".jpg"
	if transparent {
		ext = ".png"
	}

	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	outputPath := filepath.Join(outputDir, stem+"_optimized"+ext)

	out, err := os.Create(outputPath) // #nosec G304 -- derived from caller-provided dir
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}

	if transparent {
		err = png.Encode(out, img)
	} else {
		err = jpeg.Encode(out, img, &jpeg.Options{Quality: quality})
	}
	if err != nil {
		_ = out.Close()
		_ = os.Remove(outputPath)
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("closing output: %w", err)
	}

	outInfo, err := os.Stat(outputPath)
	if err != nil {
		return nil, fmt.Errorf("reading output: %w", err)
	}
	if err := os.Chmod(outputPath, filePermissions); err != nil {
		return nil, fmt.Errorf("setting permissions: %w", err)
	}

	return &Optimized{
		Path:         outputPath,
		OriginalSize: originalSize,
		Size:         outInfo.Size(),
		Width:        width,
		Height:       height,
	}, nil
}

// hasTransparency reports whether any pixel has a non-opaque alpha.
// Uses the image's own Opaque method when available.
func hasTransparency(img image.Image) bool {
	type opaquer interface{ Opaque() bool }
	if o, ok := img.(opaquer); ok {
		return !o.Opaque()
	}

	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return true
			}
		}
	}
	return false
}
