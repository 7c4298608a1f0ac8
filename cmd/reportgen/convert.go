package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	reportgen "github.com/KosukeOnishi/reportgen"
	"github.com/KosukeOnishi/reportgen/internal/config"
	"github.com/KosukeOnishi/reportgen/internal/dateutil"
	"github.com/KosukeOnishi/reportgen/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadContent        = errors.New("failed to read markdown file")
	ErrReadCSS            = errors.New("failed to read CSS file")
	ErrWriteOutput        = errors.New("failed to write output file")
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// maxWorkers bounds the --workers flag; anything higher would only pile
// up idle Chrome instances.
const maxWorkers = 32

// FileToConvert represents a single report to process. Exactly one of
// InputPath and Literal is set.
type FileToConvert struct {
	InputPath  string
	Literal    string // literal markdown passed via --content
	OutputPath string // without extension; .pdf/.html appended per mode
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// conversionParams groups settings shared across the batch.
type conversionParams struct {
	title    string
	author   string
	date     string
	tocTitle string
	noTOC    bool
	css      string
	figures  []reportgen.Descriptor
	diagrams []reportgen.Descriptor
	html     bool
	htmlOnly bool
}

// run orchestrates the conversion of all positional inputs.
func run(ctx context.Context, flags *convertFlags, positional []string, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg := env.Config
	if flags.common.config != "" {
		loaded, err := config.LoadConfig(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	mergeFlags(flags, cfg)

	// Resolve "auto" date once for the entire batch
	date, err := dateutil.ResolveDate(cfg.Report.Date, env.Now())
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}

	figures, err := parseDescriptors(flags.images.figures)
	if err != nil {
		return err
	}
	diagrams, err := parseDescriptors(flags.images.diagrams)
	if err != nil {
		return err
	}

	extraCSS, err := readCSSFile(flags.assets.cssFile)
	if err != nil {
		return err
	}

	files, err := resolveFiles(positional, flags.content, flags.outputMode.output, cfg)
	if err != nil {
		return err
	}

	opts, err := serviceOptions(flags, cfg)
	if err != nil {
		return err
	}

	poolSize := reportgen.ResolvePoolSize(flags.workers)
	if poolSize > len(files) {
		poolSize = len(files)
	}
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}
	pool := reportgen.NewServicePool(poolSize, opts...)
	defer pool.Close()

	params := &conversionParams{
		title:    flags.report.title,
		author:   cfg.Report.Author,
		date:     date,
		tocTitle: cfg.TOC.Title,
		noTOC:    cfg.TOC.Disabled,
		css:      extraCSS,
		figures:  figures,
		diagrams: diagrams,
		html:     flags.outputMode.html,
		htmlOnly: flags.outputMode.htmlOnly || cfg.Output.HTMLOnly,
	}

	results := convertBatch(ctx, pool, files, params)
	return printResults(results, flags.common.quiet, flags.common.verbose, env)
}

// mergeFlags merges CLI flags into the config. CLI wins.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.report.author != "" {
		cfg.Report.Author = flags.report.author
	}
	if flags.report.date != "" {
		cfg.Report.Date = flags.report.date
	}
	if flags.toc.title != "" {
		cfg.TOC.Title = flags.toc.title
	}
	if flags.toc.disabled {
		cfg.TOC.Disabled = true
	}
	if flags.assets.style != "" {
		cfg.Style.Name = flags.assets.style
	}
	if flags.assets.assetPath != "" {
		cfg.Style.AssetPath = flags.assets.assetPath
	}
}

// serviceOptions translates resolved config into service options.
func serviceOptions(flags *convertFlags, cfg *config.Config) ([]reportgen.Option, error) {
	var opts []reportgen.Option
	if cfg.Style.Name != "" {
		opts = append(opts, reportgen.WithStyle(cfg.Style.Name))
	}
	if cfg.Style.AssetPath != "" {
		opts = append(opts, reportgen.WithAssetPath(cfg.Style.AssetPath))
	}
	if flags.timeout != "" {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTimeout, flags.timeout)
		}
		opts = append(opts, reportgen.WithTimeout(d))
	}
	return opts, nil
}

func validateWorkers(n int) error {
	if n < 0 || n > maxWorkers {
		return fmt.Errorf("%w: %d (must be 0-%d, 0 = auto)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}

func validateMarkdownExtension(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".md" && ext != ".markdown" {
		return fmt.Errorf("%w: %s", ErrInvalidExtension, path)
	}
	return nil
}

// resolveFiles maps inputs to output paths. Inputs come from positional
// arguments plus --content, whose value is either a markdown file path or
// literal markdown. A single input with an extensioned --output writes
// exactly there; otherwise --output (or the config default, or the current
// directory) is treated as a directory.
func resolveFiles(positional []string, content, flagOutput string, cfg *config.Config) ([]FileToConvert, error) {
	inputs := positional
	var literal string
	if content != "" {
		// File existence decides: an existing path is read, anything
		// else is literal markdown.
		if fileutil.FileExists(content) {
			inputs = append(append([]string{}, positional...), content)
		} else {
			literal = content
		}
	}

	total := len(inputs)
	if literal != "" {
		total++
	}
	if total == 0 {
		return nil, ErrNoInput
	}

	outputDir := flagOutput
	explicitFile := total == 1 && flagOutput != "" && filepath.Ext(flagOutput) != ""
	if outputDir == "" {
		outputDir = cfg.Output.DefaultDir
	}
	if outputDir == "" {
		outputDir = "."
	}

	files := make([]FileToConvert, 0, total)
	for _, input := range inputs {
		if err := validateMarkdownExtension(input); err != nil {
			return nil, err
		}
		if _, err := os.Stat(input); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadContent, err)
		}

		var outPath string
		if explicitFile {
			outPath = strings.TrimSuffix(flagOutput, filepath.Ext(flagOutput))
		} else {
			stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
			outPath = filepath.Join(outputDir, stem)
		}
		files = append(files, FileToConvert{InputPath: input, OutputPath: outPath})
	}

	if literal != "" {
		outPath := filepath.Join(outputDir, "report")
		if explicitFile {
			outPath = strings.TrimSuffix(flagOutput, filepath.Ext(flagOutput))
		}
		files = append(files, FileToConvert{Literal: literal, OutputPath: outPath})
	}
	return files, nil
}

func readCSSFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	content, err := os.ReadFile(path) // #nosec G304 -- user-supplied CLI path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
	}
	return string(content), nil
}

// headingPattern extracts the first Markdown heading for title fallback.
var headingPattern = regexp.MustCompile(`(?m)^#{1,6}\s+(.+)$`)

// resolveTitle picks the report title: explicit flag, then the first
// heading in the content, then the file stem.
func resolveTitle(flagTitle, content, inputPath string) string {
	if flagTitle != "" {
		return flagTitle
	}
	if m := headingPattern.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	if stem == "" || stem == "." {
		return "Report"
	}
	return stem
}

// convertBatch processes files in parallel using the service pool.
func convertBatch(ctx context.Context, pool *reportgen.ServicePool, files []FileToConvert, params *conversionParams) []ConversionResult {
	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup

	for i, f := range files {
		wg.Add(1)
		go func(i int, f FileToConvert) {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				results[i] = ConversionResult{InputPath: f.InputPath, Err: err}
				return
			}

			svc, err := pool.Acquire()
			if err != nil {
				results[i] = ConversionResult{InputPath: f.InputPath, Err: err}
				return
			}
			defer pool.Release(svc)

			results[i] = convertFile(ctx, svc, f, params)
		}(i, f)
	}

	wg.Wait()
	return results
}

// convertFile converts one report and writes its outputs.
func convertFile(ctx context.Context, svc *reportgen.Service, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	name := f.InputPath
	if name == "" {
		name = "(inline content)"
	}
	result := ConversionResult{InputPath: name}

	content := f.Literal
	sourceDir := "."
	if f.InputPath != "" {
		raw, err := os.ReadFile(f.InputPath) // #nosec G304 -- user-supplied CLI path
		if err != nil {
			result.Err = fmt.Errorf("%w: %v", ErrReadContent, err)
			return result
		}
		content = string(raw)
		sourceDir = filepath.Dir(f.InputPath)
	}
	if abs, err := filepath.Abs(sourceDir); err == nil {
		sourceDir = abs
	}

	input := reportgen.Input{
		Title:      resolveTitle(params.title, content, f.InputPath),
		Content:    content,
		SourceDir:  sourceDir,
		Author:     params.author,
		Date:       params.date,
		Diagrams:   params.diagrams,
		Figures:    params.figures,
		DisableTOC: params.noTOC,
		TOCTitle:   params.tocTitle,
		CSS:        params.css,
		HTMLOnly:   params.htmlOnly,
	}

	converted, err := svc.Convert(ctx, input)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	result.Err = writeOutputs(f.OutputPath, converted, params)
	if result.Err == nil {
		result.OutputPath = outputName(f.OutputPath, params)
	}
	result.Duration = time.Since(start)
	return result
}

// writeOutputs writes the PDF and/or HTML next to the resolved output stem.
func writeOutputs(stem string, converted *reportgen.Result, params *conversionParams) error {
	if dir := filepath.Dir(stem); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}

	if params.htmlOnly || params.html {
		if err := os.WriteFile(stem+".html", []byte(converted.HTML), filePermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}
	if !params.htmlOnly {
		if err := os.WriteFile(stem+".pdf", converted.PDF, filePermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}
	return nil
}

func outputName(stem string, params *conversionParams) string {
	if params.htmlOnly {
		return stem + ".html"
	}
	return stem + ".pdf"
}

// printResults reports per-file outcomes and returns the first error.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) error {
	var firstErr error
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "✗ %s: %v\n", r.InputPath, r.Err)
			if firstErr == nil {
				firstErr = r.Err
			}
			continue
		}
		if quiet {
			continue
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "✓ %s → %s (%s)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "✓ %s\n", r.OutputPath)
		}
	}
	return firstErr
}
