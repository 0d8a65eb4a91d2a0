// Package render draws the survey figures as PNG files.
//
// Each figure is built as a go-chart value, rendered to PNG in memory and
// either written out directly or composed with other panels into a grid.
// Nothing here feeds back into the analysis.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned when a figure has nothing to plot.
var ErrNoData = errors.New("no data to plot")

// Panel dimensions in pixels.
const (
	PanelWidth  = 640
	PanelHeight = 480
)

var (
	colorPrimary = drawing.ColorFromHex("1f77b4")
	colorFit     = drawing.ColorRed
	colorMedian  = drawing.ColorFromHex("ff7f0e")
	colorMuted   = drawing.ColorFromHex("7f7f7f")

	// pie slices after the first two
	slicePalette = []drawing.Color{
		drawing.ColorFromHex("2ca02c"),
		drawing.ColorFromHex("9467bd"),
		drawing.ColorFromHex("8c564b"),
		drawing.ColorFromHex("e377c2"),
		drawing.ColorFromHex("bcbd22"),
		drawing.ColorFromHex("17becf"),
	}
)

type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func renderPNG(c renderable) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}

func padding() chart.Style {
	return chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 12}}
}

// paddedRange returns an axis range around values with a 5% margin. A
// constant series gets a unit-wide range so the axis is never empty.
func paddedRange(values ...[]float64) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, vs := range values {
		for _, v := range vs {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return &chart.ContinuousRange{Min: 0, Max: 1}
	}
	if hi == lo {
		return &chart.ContinuousRange{Min: lo - 0.5, Max: hi + 0.5}
	}
	margin := (hi - lo) * 0.05
	return &chart.ContinuousRange{Min: lo - margin, Max: hi + margin}
}

func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{StrokeWidth: chart.Disabled, DotWidth: 4, DotColor: col.WithAlpha(200)}
}

func lineStyle(col drawing.Color, width float64) chart.Style {
	return chart.Style{StrokeWidth: width, StrokeColor: col}
}

// correlationLabel formats r to two decimals, or "n/a" when undefined.
func correlationLabel(r *float64) string {
	if r == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *r)
}
