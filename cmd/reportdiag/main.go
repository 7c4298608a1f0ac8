package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/KosukeOnishi/reportgen/internal/diagram"
	"github.com/KosukeOnishi/reportgen/internal/yamlutil"
)

// Exit codes, matching the reportgen CLI conventions.
const (
	ExitSuccess = 0
	ExitGeneral = 1
	ExitUsage   = 2
	ExitIO      = 3
)

// ErrBadData indicates malformed chart data input.
var ErrBadData = errors.New("malformed diagram data")

type diagFlags struct {
	diagramType string
	title       string
	output      string
	color       string
	data        string
	quiet       bool
}

func main() {
	os.Exit(realMain(os.Args[1:]))
}

func realMain(args []string) int {
	fs := flag.NewFlagSet("reportdiag", flag.ContinueOnError)
	f := &diagFlags{}
	fs.StringVarP(&f.diagramType, "type", "t", "bar", "diagram type: bar, pie, flow")
	fs.StringVar(&f.title, "title", "", "diagram title")
	fs.StringVarP(&f.output, "output", "o", "", "output SVG path (default: diagrams/<title>.svg)")
	fs.StringVar(&f.color, "color", "", "bar color (hex, bar charts only)")
	fs.StringVarP(&f.data, "data", "d", "", "inline JSON data instead of a data file")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if err := run(f, fs.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		switch {
		case errors.Is(err, ErrBadData), errors.Is(err, diagram.ErrNoData):
			return ExitUsage
		case errors.Is(err, os.ErrNotExist):
			return ExitIO
		}
		return ExitGeneral
	}
	return ExitSuccess
}

// run generates one diagram and prints its descriptor as JSON so the
// output can feed reportgen --diagrams directly.
func run(f *diagFlags, positional []string) error {
	raw, err := readData(f.data, positional)
	if err != nil {
		return err
	}

	outputPath := f.output
	if outputPath == "" {
		outputPath = filepath.Join("diagrams", slugify(f.title)+".svg")
	}

	var result *diagram.Result
	switch strings.ToLower(f.diagramType) {
	case "bar":
		data, err := parseData(raw)
		if err != nil {
			return err
		}
		result, err = diagram.BarChart(data, f.title, outputPath, f.color)
		if err != nil {
			return err
		}
	case "pie":
		data, err := parseData(raw)
		if err != nil {
			return err
		}
		result, err = diagram.PieChart(data, f.title, outputPath)
		if err != nil {
			return err
		}
	case "flow":
		steps, err := parseSteps(raw)
		if err != nil {
			return err
		}
		result, err = diagram.Flowchart(steps, f.title, outputPath)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown type %q (use bar, pie, or flow)", ErrBadData, f.diagramType)
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))

	if !f.quiet {
		fmt.Fprintf(os.Stderr, "✓ %s\n", result.Path)
	}
	return nil
}

// readData returns the raw data bytes from the inline flag or a data
// file. Files with a .yaml/.yml extension are converted through YAML.
func readData(inline string, positional []string) ([]byte, error) {
	if inline != "" {
		return []byte(inline), nil
	}
	if len(positional) == 0 {
		return nil, fmt.Errorf("%w: no data given (pass a file or --data)", ErrBadData)
	}

	path := positional[0]
	content, err := os.ReadFile(path) // #nosec G304 -- user-supplied CLI path
	if err != nil {
		return nil, fmt.Errorf("reading data: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		var v interface{}
		if err := yamlutil.Unmarshal(content, &v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadData, err)
		}
		return json.Marshal(v)
	}
	return content, nil
}

func parseData(raw []byte) ([]diagram.Datum, error) {
	var data []diagram.Datum
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadData, err)
	}
	return data, nil
}

func parseSteps(raw []byte) ([]string, error) {
	var steps []string
	if err := json.Unmarshal(raw, &steps); err != nil {
		return nil, fmt.Errorf("%w: flow data must be a JSON array of strings: %v", ErrBadData, err)
	}
	return steps, nil
}

// slugify turns a title into a safe file stem.
func slugify(title string) string {
	if title == "" {
		return "diagram"
	}
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.Join(strings.Fields(slug), "-")
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return -1
	}, slug)
	if slug == "" {
		return "diagram"
	}
	return slug
}

func printUsage(w *os.File) {
	fmt.Fprintln(w, "Usage: reportdiag [data-file] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate an SVG chart and print its descriptor for reportgen --diagrams.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Data formats:")
	fmt.Fprintln(w, `  bar/pie  JSON array of {"label": string, "value": number}`)
	fmt.Fprintln(w, "  flow     JSON array of step strings")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -t, --type <s>      Diagram type: bar, pie, flow (default bar)")
	fmt.Fprintln(w, "      --title <s>     Diagram title")
	fmt.Fprintln(w, "  -o, --output <p>    Output SVG path")
	fmt.Fprintln(w, "      --color <hex>   Bar color")
	fmt.Fprintln(w, "  -d, --data <json>   Inline JSON data")
	fmt.Fprintln(w, "  -q, --quiet         Only show errors")
}
