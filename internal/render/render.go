package render

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/blackwell-systems/surveystat/internal/analyzer"
	"github.com/blackwell-systems/surveystat/internal/stats"
	"github.com/blackwell-systems/surveystat/internal/survey"
)

// Figure file names, in the order Render writes them.
const (
	FileScatter    = "cgpa_vs_passion.png"
	FileCGPABox    = "cgpa_box.png"
	FilePassionBox = "passion_box.png"
	FileEngagement = "engagement_box.png"
	FileResponses  = "responses.png"
	FileMajors     = "majors.png"
)

// Figures is the number of files Render attempts.
const Figures = 6

const (
	facetColumns = 3
	facetWidth   = 420
	facetHeight  = 340
	pieWidth     = 520
	pieHeight    = 420
)

type figure struct {
	name  string
	build func() ([]byte, error)
}

// Render writes the figures for records and rep into dir, creating it if
// needed. Figures with nothing to plot are skipped with a warning. A figure
// that fails is logged and the rest are still attempted; the failures come
// back joined. done, if non-nil, is called once per figure attempted. Render
// returns the paths written.
func Render(dir string, records []survey.Record, rep *analyzer.Report, done func(name string)) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create plot directory: %w", err)
	}

	figures := []figure{
		{FileScatter, func() ([]byte, error) { return scatterFigure(records, rep) }},
		{FileCGPABox, func() ([]byte, error) {
			return BoxPlot{Title: "CGPA", YName: "CGPA", Groups: []BoxGroup{
				{Label: "CGPA", Values: stats.Complete(analyzer.CGPAValues(records))},
			}}.PNG()
		}},
		{FilePassionBox, func() ([]byte, error) {
			return BoxPlot{Title: "Passion Score", YName: "Passion Score", Groups: []BoxGroup{
				{Label: "Passion Score", Values: stats.Complete(analyzer.ScoreValues(records))},
			}}.PNG()
		}},
		{FileEngagement, func() ([]byte, error) { return engagementFigure(rep) }},
		{FileResponses, func() ([]byte, error) { return responsesFigure(rep) }},
		{FileMajors, func() ([]byte, error) { return majorsFigure(records, rep) }},
	}

	var (
		written []string
		failed  []error
	)
	for _, f := range figures {
		data, err := f.build()
		switch {
		case errors.Is(err, ErrNoData):
			log.Warn().Str("figure", f.name).Msg("nothing to plot, skipping")
		case err != nil:
			log.Error().Err(err).Str("figure", f.name).Msg("figure failed")
			failed = append(failed, fmt.Errorf("%s: %w", f.name, err))
		default:
			path := filepath.Join(dir, f.name)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				log.Error().Err(err).Str("path", path).Msg("figure not written")
				failed = append(failed, fmt.Errorf("write %s: %w", f.name, err))
				break
			}
			log.Debug().Str("path", path).Int("bytes", len(data)).Msg("figure written")
			written = append(written, path)
		}
		if done != nil {
			done(f.name)
		}
	}
	return written, errors.Join(failed...)
}

func scatterFigure(records []survey.Record, rep *analyzer.Report) ([]byte, error) {
	xs, ys := analyzer.Points(records)
	return Scatter{
		Title:  fmt.Sprintf("CGPA vs. Passion Score (correlation:%s)", correlationLabel(rep.Overall.R)),
		CGPA:   xs,
		Scores: ys,
	}.PNG()
}

func engagementFigure(rep *analyzer.Report) ([]byte, error) {
	groups := make([]BoxGroup, len(rep.Engagement))
	for i, g := range rep.Engagement {
		groups[i] = BoxGroup{Label: g.Level, Values: g.CGPA}
	}
	return BoxPlot{Title: "CGPA by engagement in major-related activities", YName: "CGPA", Groups: groups}.PNG()
}

func responsesFigure(rep *analyzer.Report) ([]byte, error) {
	panels := make([]image.Image, 0, len(rep.Responses))
	for _, r := range rep.Responses {
		data, err := Pie{Responses: r, Width: pieWidth, Height: pieHeight}.PNG()
		if err != nil {
			return nil, err
		}
		img, err := decodePanel(data)
		if err != nil {
			return nil, err
		}
		panels = append(panels, img)
	}
	return Grid{Columns: 2, Panels: panels}.PNG()
}

func majorsFigure(records []survey.Record, rep *analyzer.Report) ([]byte, error) {
	corr := make(map[string]*float64, len(rep.ByMajor))
	for _, g := range rep.ByMajor {
		corr[g.Major] = g.R
	}

	groups := analyzer.GroupByMajor(records)
	panels := make([]image.Image, 0, len(groups))
	for _, g := range groups {
		label := g.Major
		if label == "" {
			label = "(blank)"
		}
		title := fmt.Sprintf("%s (r=%s)", label, correlationLabel(corr[g.Major]))

		xs, ys := analyzer.Points(g.Records)
		data, err := Scatter{Title: title, CGPA: xs, Scores: ys, Width: facetWidth, Height: facetHeight}.PNG()
		if errors.Is(err, ErrNoData) {
			panels = append(panels, placeholder(facetWidth, facetHeight, title, "no complete responses"))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("major %q: %w", g.Major, err)
		}
		img, err := decodePanel(data)
		if err != nil {
			return nil, err
		}
		panels = append(panels, img)
	}
	return Grid{Caption: "CGPA vs. Passion Score by major", Columns: facetColumns, Panels: panels}.PNG()
}
