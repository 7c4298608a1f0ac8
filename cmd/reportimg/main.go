package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/KosukeOnishi/reportgen/internal/fileutil"
	"github.com/KosukeOnishi/reportgen/internal/imgfetch"
	"github.com/KosukeOnishi/reportgen/internal/imgopt"
)

// Exit codes, matching the reportgen CLI conventions.
const (
	ExitSuccess = 0
	ExitGeneral = 1
	ExitUsage   = 2
	ExitIO      = 3
)

// descriptor is one entry of the emitted list, consumable by
// reportgen --images / --diagrams.
type descriptor struct {
	Path    string `json:"path"`
	Caption string `json:"caption"`
}

type imgFlags struct {
	outputDir   string
	descriptors string
	maxWidth    int
	quality     int
	noOptimize  bool
	quiet       bool
}

func main() {
	os.Exit(realMain(os.Args[1:]))
}

func realMain(args []string) int {
	fs := flag.NewFlagSet("reportimg", flag.ContinueOnError)
	f := &imgFlags{}
	fs.StringVarP(&f.outputDir, "output-dir", "o", "images", "directory for fetched and optimized images")
	fs.StringVar(&f.descriptors, "descriptors", "", "write the descriptor list to this file instead of stdout")
	fs.IntVar(&f.maxWidth, "max-width", imgopt.DefaultMaxWidth, "maximum image width in pixels")
	fs.IntVar(&f.quality, "quality", imgopt.DefaultQuality, "JPEG quality (1-100)")
	fs.BoolVar(&f.noOptimize, "no-optimize", false, "keep images at original size")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	inputs := fs.Args()
	if len(inputs) == 0 {
		printUsage(os.Stderr)
		return ExitUsage
	}

	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, f, inputs); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, imgfetch.ErrNotImage) || errors.Is(err, imgopt.ErrDecode) {
			return ExitUsage
		}
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, imgfetch.ErrDownload) {
			return ExitIO
		}
		return ExitGeneral
	}
	return ExitSuccess
}

// run fetches or copies each input, optimizes rasters, and emits the
// descriptor list. Inputs may be HTTP(S) URLs or local file paths.
func run(ctx context.Context, f *imgFlags, inputs []string) error {
	client := imgfetch.NewClient()
	descs := make([]descriptor, 0, len(inputs))

	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}

		localPath := input
		if fileutil.IsURL(input) {
			fetched, err := client.Download(ctx, input, f.outputDir)
			if err != nil {
				return fmt.Errorf("fetching %s: %w", input, err)
			}
			localPath = fetched.Path
		} else if !fileutil.FileExists(input) {
			return fmt.Errorf("reading %s: %w", input, os.ErrNotExist)
		}

		finalPath, err := optimizeIfRaster(localPath, f)
		if err != nil {
			return fmt.Errorf("optimizing %s: %w", input, err)
		}

		descs = append(descs, descriptor{Path: finalPath, Caption: captionFor(input)})
		if !f.quiet {
			fmt.Fprintf(os.Stderr, "✓ %s → %s\n", input, finalPath)
		}
	}

	return writeDescriptors(descs, f.descriptors)
}

// optimizeIfRaster resizes raster images; SVG files pass through as-is
// since they scale without loss.
func optimizeIfRaster(path string, f *imgFlags) (string, error) {
	if f.noOptimize || strings.EqualFold(filepath.Ext(path), ".svg") {
		return path, nil
	}

	optimized, err := imgopt.Optimize(path, f.outputDir, f.maxWidth, f.quality)
	if err != nil {
		// Too-small images are kept at original size rather than upscaled.
		if errors.Is(err, imgopt.ErrTooSmall) {
			return path, nil
		}
		return "", err
	}
	return optimized.Path, nil
}

// captionFor derives a human-readable caption from the input's file stem.
func captionFor(input string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.ReplaceAll(stem, "_", " ")
	stem = strings.ReplaceAll(stem, "-", " ")
	return strings.TrimSpace(stem)
}

func writeDescriptors(descs []descriptor, outPath string) error {
	data, err := json.MarshalIndent(descs, "", "  ")
	if err != nil {
		return err
	}
	if outPath == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(outPath, append(data, '\n'), 0o644)
}

func printUsage(w *os.File) {
	fmt.Fprintln(w, "Usage: reportimg <url-or-file>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Fetch and optimize report images, emitting a descriptor list for reportgen.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output-dir <dir>    Directory for fetched and optimized images")
	fmt.Fprintln(w, "      --descriptors <file>  Write the JSON descriptor list to a file")
	fmt.Fprintln(w, "      --max-width <n>       Maximum image width in pixels (default 800)")
	fmt.Fprintln(w, "      --quality <n>         JPEG quality 1-100 (default 85)")
	fmt.Fprintln(w, "      --no-optimize         Keep images at original size")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
}
