package render

import (
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/blackwell-systems/surveystat/internal/analyzer"
)

// Pie draws the answers to one question. Slice labels carry the answer and
// its share, e.g. "Yes (62.5%)".
type Pie struct {
	Responses analyzer.ResponseCounts
	Width     int
	Height    int
}

// Chart builds the chart. A question with no answers gets a single grey
// "No responses" slice.
func (p Pie) Chart() *chart.PieChart {
	total := p.Responses.Total()
	values := make([]chart.Value, 0, len(p.Responses.Counts))
	for i, c := range p.Responses.Counts {
		if c.Count == 0 {
			continue
		}
		share := 100 * float64(c.Count) / float64(total)
		values = append(values, chart.Value{
			Value: float64(c.Count),
			Label: fmt.Sprintf("%s (%.1f%%)", c.Label, share),
			Style: chart.Style{FillColor: sliceColor(i), StrokeColor: drawing.ColorWhite},
		})
	}
	if len(values) == 0 {
		values = append(values, chart.Value{
			Value: 1,
			Label: "No responses",
			Style: chart.Style{FillColor: colorMuted},
		})
	}

	width, height := p.Width, p.Height
	if width == 0 {
		width, height = PanelWidth, PanelHeight
	}
	return &chart.PieChart{
		Title:      p.Responses.Title,
		Width:      width,
		Height:     height,
		Background: padding(),
		Values:     values,
	}
}

// PNG renders the chart.
func (p Pie) PNG() ([]byte, error) {
	return renderPNG(p.Chart())
}

func sliceColor(i int) drawing.Color {
	switch i {
	case 0:
		return colorPrimary
	case 1:
		return colorFit
	default:
		return slicePalette[(i-2)%len(slicePalette)]
	}
}
