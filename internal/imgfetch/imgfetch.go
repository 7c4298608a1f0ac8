// Package imgfetch downloads report images from URLs.
//
// This is the upstream collaborator of the transformation engine: retry
// logic lives here, never inside the engine, which only ever performs a
// single bounded filesystem read per image.
package imgfetch

import (
	"context"
	"crypto/md5" // #nosec G501 -- used for filename derivation, not security
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

// Sentinel errors for download operations.
var (
	ErrNotImage = errors.New("URL did not return an image")
	ErrDownload = errors.New("image download failed")
)

const (
	defaultTimeout = 30 * time.Second
	maxAttempts    = 3

	// maxImageSize bounds a single download (20MB).
	maxImageSize = 20 << 20

	// some image hosts refuse requests without a browser user agent
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	filePermissions = 0o644
	dirPermissions  = 0o750
)

// Downloaded describes one fetched image on disk.
type Downloaded struct {
	Path   string `json:"path"`
	URL    string `json:"url"`
	Size   int64  `json:"size"`
	Format string `json:"format"`
}

// Client downloads images over HTTP with bounded retries.
type Client struct {
	http *http.Client
}

// NewClient creates a Client with the default timeout.
func NewClient() *Client {
	return &Client{http: &http.Client{Timeout: defaultTimeout}}
}

// Download fetches rawURL into outputDir. The filename derives from a hash
// of the URL so repeated fetches of the same image overwrite rather than
// accumulate. Transient failures retry up to three times; a non-image
// response fails immediately.
func (c *Client) Download(ctx context.Context, rawURL, outputDir string) (*Downloaded, error) {
	if err := os.MkdirAll(outputDir, dirPermissions); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	var result *Downloaded
	err := retry.Do(
		func() error {
			var fetchErr error
			result, fetchErr = c.fetch(ctx, rawURL, outputDir)
			return fetchErr
		},
		retry.Attempts(maxAttempts),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		// a non-image content type will not improve on retry
		retry.RetryIf(func(err error) bool { return !errors.Is(err, ErrNotImage) }),
	)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// fetch performs one download attempt.
func (c *Client) fetch(ctx context.Context, rawURL, outputDir string) (*Downloaded, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownload, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownload, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %s", ErrDownload, rawURL, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "image") {
		return nil, fmt.Errorf("%w: %s served %q", ErrNotImage, rawURL, contentType)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrDownload, err)
	}

	ext := extensionFor(contentType)
	outputPath := filepath.Join(outputDir, filenameFor(rawURL)+ext)
	if err := os.WriteFile(outputPath, data, filePermissions); err != nil {
		return nil, fmt.Errorf("%w: writing %s: %v", ErrDownload, outputPath, err)
	}

	return &Downloaded{
		Path:   outputPath,
		URL:    rawURL,
		Size:   int64(len(data)),
		Format: ext,
	}, nil
}

// filenameFor derives a stable safe filename from the URL hash.
func filenameFor(rawURL string) string {
	sum := md5.Sum([]byte(rawURL)) // #nosec G401 -- filename derivation only
	return fmt.Sprintf("%x", sum)[:12]
}

// extensionFor maps a content type to a file extension, defaulting to .jpg.
func extensionFor(contentType string) string {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "png"):
		return ".png"
	case strings.Contains(ct, "gif"):
		return ".gif"
	case strings.Contains(ct, "webp"):
		return ".webp"
	case strings.Contains(ct, "svg"):
		return ".svg"
	default:
		return ".jpg"
	}
}
