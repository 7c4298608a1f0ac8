package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across concerns.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	version bool
}

// reportFlags holds report metadata flags.
type reportFlags struct {
	title  string
	author string
	date   string
}

// tocFlags holds table of contents flags.
type tocFlags struct {
	title    string
	disabled bool
}

// imageFlags holds figure and diagram descriptor flags. Each value is an
// inline JSON array or a path to a .json/.yaml descriptor file.
type imageFlags struct {
	figures  string
	diagrams string
}

// assetFlags holds stylesheet flags.
type assetFlags struct {
	style     string // embedded style name
	assetPath string // directory overriding embedded styles
	cssFile   string // extra CSS appended after the stylesheet
}

// outputFlags holds output destination and mode flags.
type outputFlags struct {
	output   string
	html     bool // write HTML alongside the PDF
	htmlOnly bool // write HTML only, skip PDF
}

// convertFlags holds all CLI flags.
type convertFlags struct {
	common     commonFlags
	report     reportFlags
	toc        tocFlags
	images     imageFlags
	assets     assetFlags
	outputMode outputFlags
	content    string // markdown file path or literal markdown
	workers    int
	timeout    string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVar(&f.config, "config", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
}

// addReportFlags adds report metadata flags to a FlagSet.
func addReportFlags(fs *flag.FlagSet, f *reportFlags) {
	fs.StringVarP(&f.title, "title", "t", "", "report title (\"\" = from first heading)")
	fs.StringVar(&f.author, "author", "", "report author")
	fs.StringVar(&f.date, "date", "", "report date (\"auto\" = today)")
}

// addTOCFlags adds TOC flags to a FlagSet.
func addTOCFlags(fs *flag.FlagSet, f *tocFlags) {
	fs.StringVar(&f.title, "toc-title", "", "table of contents heading")
	fs.BoolVar(&f.disabled, "no-toc", false, "disable table of contents")
}

// addImageFlags adds descriptor flags to a FlagSet.
func addImageFlags(fs *flag.FlagSet, f *imageFlags) {
	fs.StringVarP(&f.figures, "images", "i", "", "figure descriptors (JSON array or file)")
	fs.StringVarP(&f.diagrams, "diagrams", "d", "", "diagram descriptors (JSON array or file)")
}

// addAssetFlags adds stylesheet flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "embedded style name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVar(&f.cssFile, "css", "", "extra CSS file appended to the style")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.BoolVar(&f.html, "html", false, "write HTML alongside the PDF")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "write HTML only, skip PDF")
}

// parseFlags parses CLI flags and returns positional args (input files).
func parseFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("reportgen", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.content, "content", "c", "", "markdown file path or literal markdown")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVar(&f.timeout, "timeout", "", "PDF generation timeout (e.g., 30s, 2m)")

	addCommonFlags(fs, &f.common)
	addReportFlags(fs, &f.report)
	addTOCFlags(fs, &f.toc)
	addImageFlags(fs, &f.images)
	addAssetFlags(fs, &f.assets)
	addOutputFlags(fs, &f.outputMode)

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
