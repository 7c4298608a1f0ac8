// Package diagram generates SVG charts for report side sections.
//
// Output files are self-contained SVG suitable for data-URI embedding by
// the document assembler. Supported kinds: horizontal bar chart, pie
// chart, vertical flowchart.
package diagram

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoData indicates an empty data set, a caller contract violation.
var ErrNoData = errors.New("diagram data cannot be empty")

// DefaultColor is the primary chart color.
const DefaultColor = "#2563eb"

const (
	filePermissions = 0o644
	dirPermissions  = 0o750
)

// Datum is one labeled value in a bar or pie chart.
type Datum struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
}

// Result describes one generated diagram, shaped to double as a figure
// descriptor for report assembly.
type Result struct {
	Path    string `json:"path"`
	Caption string `json:"caption"`
	Type    string `json:"type"`
}

// pieColors cycles across pie slices.
var pieColors = []string{
	"#2563eb", "#10b981", "#f59e0b", "#ef4444",
	"#8b5cf6", "#06b6d4", "#ec4899", "#84cc16",
}

// BarChart writes a horizontal bar chart SVG to outputPath.
func BarChart(data []Datum, title, outputPath, barColor string) (*Result, error) {
	if len(data) == 0 {
		return nil, ErrNoData
	}
	if barColor == "" {
		barColor = DefaultColor
	}

	const (
		padding    = 40
		labelWidth = 200
		barHeight  = 35
		barGap     = 15
		chartWidth = 400
	)

	width := padding*2 + labelWidth + chartWidth + 60
	height := padding*2 + len(data)*(barHeight+barGap) + 40

	maxValue := 0.0
	for _, d := range data {
		maxValue = math.Max(maxValue, d.Value)
	}
	if maxValue == 0 {
		maxValue = 100
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n", width, height, width, height)
	b.WriteString(`<style>
  .title { font-family: Inter, Arial, sans-serif; font-size: 18px; font-weight: 600; fill: #1a1a1a; }
  .label { font-family: Inter, Arial, sans-serif; font-size: 13px; fill: #374151; }
  .value { font-family: Inter, Arial, sans-serif; font-size: 12px; font-weight: 600; fill: #1f2937; }
  .bar { rx: 4; }
</style>
`)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="#ffffff"/>`+"\n", width, height)
	fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" class="title">%s</text>`+"\n", width/2, padding-10, title)

	yStart := padding + 20
	for i, d := range data {
		y := yStart + i*(barHeight+barGap)
		xBar := padding + labelWidth

		fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="end" class="label">%s</text>`+"\n",
			padding+labelWidth-10, y+barHeight/2+5, truncate(d.Label, 28))
		fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" fill="#f3f4f6" class="bar"/>`+"\n",
			xBar, y, chartWidth, barHeight)

		barWidth := int(d.Value / maxValue * chartWidth)
		if barWidth > 0 {
			fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s" class="bar"/>`+"\n",
				xBar, y, barWidth, barHeight, barColor)
		}
		fmt.Fprintf(&b, `<text x="%d" y="%d" class="value">%s</text>`+"\n",
			xBar+barWidth+8, y+barHeight/2+5, formatValue(d.Value))
	}
	b.WriteString("</svg>\n")

	if err := writeSVG(outputPath, b.String()); err != nil {
		return nil, err
	}
	return &Result{Path: outputPath, Caption: title, Type: "bar_chart"}, nil
}

// PieChart writes a pie chart SVG with a side legend to outputPath.
func PieChart(data []Datum, title, outputPath string) (*Result, error) {
	if len(data) == 0 {
		return nil, ErrNoData
	}

	const (
		width  = 500
		height = 350
		cx     = 180.0
		cy     = 175.0
		radius = 120.0
	)

	total := 0.0
	for _, d := range data {
		total += d.Value
	}
	if total == 0 {
		total = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n", width, height, width, height)
	b.WriteString(`<style>
  .title { font-family: Inter, Arial, sans-serif; font-size: 18px; font-weight: 600; fill: #1a1a1a; }
  .legend-label { font-family: Inter, Arial, sans-serif; font-size: 12px; fill: #374151; }
  .legend-value { font-family: Inter, Arial, sans-serif; font-size: 12px; font-weight: 600; fill: #1f2937; }
</style>
`)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="#ffffff"/>`+"\n", width, height)
	fmt.Fprintf(&b, `<text x="%d" y="30" text-anchor="middle" class="title">%s</text>`+"\n", width/2, title)

	// slices start at twelve o'clock
	startAngle := -90.0
	for i, d := range data {
		angle := d.Value / total * 360
		endAngle := startAngle + angle
		color := pieColors[i%len(pieColors)]

		x1 := cx + radius*math.Cos(radians(startAngle))
		y1 := cy + radius*math.Sin(radians(startAngle))
		x2 := cx + radius*math.Cos(radians(endAngle))
		y2 := cy + radius*math.Sin(radians(endAngle))

		largeArc := 0
		if angle > 180 {
			largeArc = 1
		}

		var path string
		if angle < 360 {
			path = fmt.Sprintf("M %.2f,%.2f L %.2f,%.2f A %.0f,%.0f 0 %d,1 %.2f,%.2f Z",
				cx, cy, x1, y1, radius, radius, largeArc, x2, y2)
		} else {
			// full circle needs two arcs
			path = fmt.Sprintf("M %.2f,%.2f A %.0f,%.0f 0 1,1 %.2f,%.2f A %.0f,%.0f 0 1,1 %.2f,%.2f Z",
				cx, cy-radius, radius, radius, cx, cy+radius, radius, radius, cx, cy-radius)
		}
		fmt.Fprintf(&b, `<path d="%s" fill="%s" stroke="#ffffff" stroke-width="2"/>`+"\n", path, color)

		startAngle = endAngle
	}

	const legendX, legendY = 330, 70
	for i, d := range data {
		y := legendY + i*32
		color := pieColors[i%len(pieColors)]
		percentage := d.Value / total * 100

		fmt.Fprintf(&b, `<rect x="%d" y="%d" width="16" height="16" fill="%s" rx="2"/>`+"\n", legendX, y, color)
		fmt.Fprintf(&b, `<text x="%d" y="%d" class="legend-label">%s</text>`+"\n", legendX+24, y+12, truncate(d.Label, 15))
		fmt.Fprintf(&b, `<text x="%d" y="%d" class="legend-value">%.1f%%</text>`+"\n", legendX+24, y+26, percentage)
	}
	b.WriteString("</svg>\n")

	if err := writeSVG(outputPath, b.String()); err != nil {
		return nil, err
	}
	return &Result{Path: outputPath, Caption: title, Type: "pie_chart"}, nil
}

// Flowchart writes a vertical step flowchart SVG to outputPath.
func Flowchart(steps []string, title, outputPath string) (*Result, error) {
	if len(steps) == 0 {
		return nil, ErrNoData
	}

	const (
		boxWidth  = 200
		boxHeight = 50
		gap       = 30
		padding   = 40
	)

	width := boxWidth + padding*2
	height := len(steps)*(boxHeight+gap) + padding*2

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n", width, height, width, height)
	b.WriteString(`<style>
  .box { fill: #3498db; stroke: #2980b9; stroke-width: 2; rx: 8; }
  .text { font-family: Arial, sans-serif; font-size: 12px; fill: white; text-anchor: middle; }
  .arrow { stroke: #7f8c8d; stroke-width: 2; fill: none; marker-end: url(#arrowhead); }
</style>
<defs>
  <marker id="arrowhead" markerWidth="10" markerHeight="7" refX="9" refY="3.5" orient="auto">
    <polygon points="0 0, 10 3.5, 0 7" fill="#7f8c8d"/>
  </marker>
</defs>
`)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="#fff"/>`+"\n", width, height)

	for i, step := range steps {
		y := padding + i*(boxHeight+gap)

		fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" class="box"/>`+"\n",
			padding, y, boxWidth, boxHeight)
		fmt.Fprintf(&b, `<text x="%d" y="%d" class="text">%s</text>`+"\n",
			padding+boxWidth/2, y+boxHeight/2+5, truncate(step, 25))

		if i < len(steps)-1 {
			arrowY := y + boxHeight
			fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" class="arrow"/>`+"\n",
				padding+boxWidth/2, arrowY, padding+boxWidth/2, arrowY+gap-5)
		}
	}
	b.WriteString("</svg>\n")

	if err := writeSVG(outputPath, b.String()); err != nil {
		return nil, err
	}
	return &Result{Path: outputPath, Caption: title, Type: "flowchart"}, nil
}

// writeSVG writes content to path, creating parent directories.
func writeSVG(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), filePermissions); err != nil {
		return fmt.Errorf("writing diagram: %w", err)
	}
	return nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// formatValue renders a value without a trailing .0 for whole numbers.
func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
