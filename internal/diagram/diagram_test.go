package diagram

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readSVG(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func TestBarChart(t *testing.T) {
	t.Parallel()

	data := []Datum{
		{Label: "Tokyo", Value: 120},
		{Label: "Osaka", Value: 80.5},
	}
	out := filepath.Join(t.TempDir(), "bar.svg")

	result, err := BarChart(data, "Sales by Region", out, "")
	if err != nil {
		t.Fatalf("BarChart: %v", err)
	}

	if result.Type != "bar_chart" {
		t.Errorf("Type = %q", result.Type)
	}
	if result.Caption != "Sales by Region" {
		t.Errorf("Caption = %q", result.Caption)
	}

	svg := readSVG(t, result.Path)
	for _, want := range []string{
		"<svg xmlns=", "Sales by Region", "Tokyo", "Osaka",
		DefaultColor, ">120</text>", ">80.5</text>",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestBarChartCustomColor(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "bar.svg")
	result, err := BarChart([]Datum{{Label: "X", Value: 1}}, "t", out, "#ff0000")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(readSVG(t, result.Path), "#ff0000") {
		t.Error("custom bar color not applied")
	}
}

func TestPieChart(t *testing.T) {
	t.Parallel()

	data := []Datum{
		{Label: "A", Value: 60},
		{Label: "B", Value: 40},
	}
	out := filepath.Join(t.TempDir(), "pie.svg")

	result, err := PieChart(data, "Share", out)
	if err != nil {
		t.Fatalf("PieChart: %v", err)
	}
	if result.Type != "pie_chart" {
		t.Errorf("Type = %q", result.Type)
	}

	svg := readSVG(t, result.Path)
	for _, want := range []string{"Share", "A", "B"} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestFlowchart(t *testing.T) {
	t.Parallel()

	steps := []string{"Collect", "Analyze", "Report"}
	out := filepath.Join(t.TempDir(), "flow.svg")

	result, err := Flowchart(steps, "Process", out)
	if err != nil {
		t.Fatalf("Flowchart: %v", err)
	}
	if result.Type != "flowchart" {
		t.Errorf("Type = %q", result.Type)
	}

	svg := readSVG(t, result.Path)
	for _, step := range steps {
		if !strings.Contains(svg, step) {
			t.Errorf("SVG missing step %q", step)
		}
	}
	// Two arrows connect three boxes.
	if n := strings.Count(svg, `class="arrow"`); n != 2 {
		t.Errorf("arrow count = %d, want 2", n)
	}
}

func TestEmptyDataRejected(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "x.svg")

	if _, err := BarChart(nil, "t", out, ""); !errors.Is(err, ErrNoData) {
		t.Errorf("BarChart: got %v, want ErrNoData", err)
	}
	if _, err := PieChart(nil, "t", out); !errors.Is(err, ErrNoData) {
		t.Errorf("PieChart: got %v, want ErrNoData", err)
	}
	if _, err := Flowchart(nil, "t", out); !errors.Is(err, ErrNoData) {
		t.Errorf("Flowchart: got %v, want ErrNoData", err)
	}
}

func TestWriteSVGCreatesDirectories(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "nested", "dir", "chart.svg")
	if _, err := BarChart([]Datum{{Label: "a", Value: 1}}, "t", out, ""); err != nil {
		t.Fatalf("BarChart into nested dir: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output not created: %v", err)
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	if got := truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncate("abcdefghij", 5); got != "abcde..." {
		t.Errorf("got %q", got)
	}
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	if got := formatValue(42); got != "42" {
		t.Errorf("got %q, want 42", got)
	}
	if got := formatValue(42.5); got != "42.5" {
		t.Errorf("got %q, want 42.5", got)
	}
}
