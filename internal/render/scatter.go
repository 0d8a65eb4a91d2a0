package render

import (
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/blackwell-systems/surveystat/internal/stats"
	"github.com/blackwell-systems/surveystat/internal/survey"
)

// Scatter plots Passion Score against CGPA with a least-squares line.
type Scatter struct {
	Title  string
	CGPA   []float64
	Scores []float64
	Width  int
	Height int
}

// Chart builds the chart. The fit line is left out when the points do not
// determine one.
func (s Scatter) Chart() (*chart.Chart, error) {
	if len(s.CGPA) == 0 {
		return nil, ErrNoData
	}
	if len(s.CGPA) != len(s.Scores) {
		return nil, fmt.Errorf("scatter: %d x values, %d y values", len(s.CGPA), len(s.Scores))
	}

	xr := paddedRange(s.CGPA)
	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "respondents",
			XValues: s.CGPA,
			YValues: s.Scores,
			Style:   pointStyle(colorPrimary),
		},
	}
	if a, b, err := stats.LinearFit(s.CGPA, s.Scores); err == nil {
		series = append(series, chart.ContinuousSeries{
			Name:    "fit",
			XValues: []float64{xr.Min, xr.Max},
			YValues: []float64{a + b*xr.Min, a + b*xr.Max},
			Style:   lineStyle(colorFit, 2),
		})
	}

	width, height := s.Width, s.Height
	if width == 0 {
		width, height = PanelWidth, PanelHeight
	}
	return &chart.Chart{
		Title:      s.Title,
		Width:      width,
		Height:     height,
		Background: padding(),
		XAxis:      chart.XAxis{Name: "CGPA", Range: xr},
		YAxis: chart.YAxis{
			Name:  "Passion Score",
			Range: &chart.ContinuousRange{Min: survey.MinPassionScore - 0.5, Max: survey.MaxPassionScore + 0.5},
			Ticks: scoreTicks(),
		},
		Series: series,
	}, nil
}

// PNG renders the chart.
func (s Scatter) PNG() ([]byte, error) {
	c, err := s.Chart()
	if err != nil {
		return nil, err
	}
	return renderPNG(c)
}

func scoreTicks() []chart.Tick {
	ticks := make([]chart.Tick, 0, survey.MaxPassionScore-survey.MinPassionScore+1)
	for v := survey.MinPassionScore; v <= survey.MaxPassionScore; v++ {
		ticks = append(ticks, chart.Tick{Value: float64(v), Label: fmt.Sprintf("%d", v)})
	}
	return ticks
}
