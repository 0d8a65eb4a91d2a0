package render

import (
	"github.com/wcharczuk/go-chart/v2"

	"github.com/blackwell-systems/surveystat/internal/stats"
)

const boxHalfWidth = 0.25

// BoxGroup is one box on a box plot.
type BoxGroup struct {
	Label  string
	Values []float64
}

// BoxPlot draws one box per group along the x axis. go-chart has no box
// series, so each box is assembled from line segments and a dot series for
// the outliers.
type BoxPlot struct {
	Title  string
	YName  string
	Groups []BoxGroup
}

// Chart builds the chart. Empty groups keep their tick but draw no box.
//
// go-chart takes the x range from the ticks when any are set, so unlabelled
// ticks pin both ends of the range. Without them a single group leaves the
// axis with zero width.
func (p BoxPlot) Chart() (*chart.Chart, error) {
	xMax := float64(len(p.Groups)) + 0.5
	var (
		series []chart.Series
		all    [][]float64
		ticks  = make([]chart.Tick, 0, len(p.Groups)+2)
	)
	ticks = append(ticks, chart.Tick{Value: 0.5})
	for i, g := range p.Groups {
		x := float64(i + 1)
		ticks = append(ticks, chart.Tick{Value: x, Label: g.Label})

		b, err := stats.Box(g.Values)
		if err != nil {
			continue
		}
		all = append(all, g.Values)
		series = append(series, boxSeries(x, b)...)
	}
	if len(series) == 0 {
		return nil, ErrNoData
	}
	ticks = append(ticks, chart.Tick{Value: xMax})

	return &chart.Chart{
		Title:      p.Title,
		Width:      PanelWidth,
		Height:     PanelHeight,
		Background: padding(),
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: 0.5, Max: xMax},
			Ticks: ticks,
		},
		YAxis:  chart.YAxis{Name: p.YName, Range: paddedRange(all...)},
		Series: series,
	}, nil
}

// PNG renders the chart.
func (p BoxPlot) PNG() ([]byte, error) {
	c, err := p.Chart()
	if err != nil {
		return nil, err
	}
	return renderPNG(c)
}

func boxSeries(x float64, b stats.BoxSummary) []chart.Series {
	left, right := x-boxHalfWidth, x+boxHalfWidth
	capL, capR := x-boxHalfWidth/2, x+boxHalfWidth/2

	segment := func(xs, ys []float64, style chart.Style) chart.Series {
		return chart.ContinuousSeries{XValues: xs, YValues: ys, Style: style}
	}
	edge := lineStyle(colorPrimary, 1.5)

	out := []chart.Series{
		segment(
			[]float64{left, right, right, left, left},
			[]float64{b.Q1, b.Q1, b.Q3, b.Q3, b.Q1},
			edge,
		),
		segment([]float64{left, right}, []float64{b.Median, b.Median}, lineStyle(colorMedian, 2)),
		segment([]float64{x, x}, []float64{b.Q3, b.HighWhisker}, edge),
		segment([]float64{x, x}, []float64{b.Q1, b.LowWhisker}, edge),
		segment([]float64{capL, capR}, []float64{b.HighWhisker, b.HighWhisker}, edge),
		segment([]float64{capL, capR}, []float64{b.LowWhisker, b.LowWhisker}, edge),
	}
	if len(b.Outliers) > 0 {
		xs := make([]float64, len(b.Outliers))
		for i := range xs {
			xs[i] = x
		}
		out = append(out, segment(xs, b.Outliers, pointStyle(colorMuted)))
	}
	return out
}
