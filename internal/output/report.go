package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/surveystat/internal/analyzer"
	"github.com/blackwell-systems/surveystat/internal/stats"
)

// Format selects how a report is written.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format %q (must be text, json or yaml)", s)
	}
}

// SummaryView is the serialized form of a stats.Summary. Undefined values
// are null.
type SummaryView struct {
	Count  int      `json:"count" yaml:"count"`
	Mean   *float64 `json:"mean" yaml:"mean"`
	Median *float64 `json:"median" yaml:"median"`
	Mode   *float64 `json:"mode" yaml:"mode"`
}

// CorrelationView is the serialized form of a correlation. Note carries the
// reason when R is null.
type CorrelationView struct {
	Pairs int      `json:"pairs" yaml:"pairs"`
	R     *float64 `json:"r" yaml:"r"`
	Note  string   `json:"note,omitempty" yaml:"note,omitempty"`
}

// MajorView is the correlation for one major, flattened alongside its name
// and group size.
type MajorView struct {
	Major           string `json:"major" yaml:"major"`
	Size            int    `json:"size" yaml:"size"`
	CorrelationView `yaml:",inline"`
}

// ResponseView counts the answers given to one categorical question.
type ResponseView struct {
	Question string         `json:"question" yaml:"question"`
	Answers  map[string]int `json:"answers" yaml:"answers"`
}

// ReportView is the machine-readable form of an analysis report.
type ReportView struct {
	Rows        int             `json:"rows" yaml:"rows"`
	Scored      int             `json:"scored" yaml:"scored"`
	CGPA        SummaryView     `json:"cgpa" yaml:"cgpa"`
	Passion     SummaryView     `json:"passion_score" yaml:"passion_score"`
	Correlation CorrelationView `json:"correlation" yaml:"correlation"`
	Majors      []MajorView     `json:"majors" yaml:"majors"`
	Responses   []ResponseView  `json:"responses" yaml:"responses"`
}

// NewReportView converts rep for serialization.
func NewReportView(rep *analyzer.Report) ReportView {
	v := ReportView{
		Rows:        rep.Rows,
		Scored:      rep.Scored,
		CGPA:        summaryView(rep.CGPA),
		Passion:     summaryView(rep.Passion),
		Correlation: correlationView(rep.Overall),
		Majors:      make([]MajorView, 0, len(rep.ByMajor)),
		Responses:   make([]ResponseView, 0, len(rep.Responses)),
	}
	for _, g := range rep.ByMajor {
		v.Majors = append(v.Majors, MajorView{Major: g.Major, Size: g.Size, CorrelationView: correlationView(g.Correlation)})
	}
	for _, r := range rep.Responses {
		answers := make(map[string]int, len(r.Counts))
		for _, c := range r.Counts {
			answers[c.Label] = c.Count
		}
		v.Responses = append(v.Responses, ResponseView{Question: r.Title, Answers: answers})
	}
	return v
}

func summaryView(s stats.Summary) SummaryView {
	v := SummaryView{Count: s.Count}
	if s.Err != nil {
		return v
	}
	mean, median := s.Mean, s.Median
	v.Mean, v.Median, v.Mode = &mean, &median, s.Mode
	return v
}

func correlationView(c analyzer.Correlation) CorrelationView {
	v := CorrelationView{Pairs: c.Pairs, R: c.R}
	if c.Err != nil {
		v.Note = c.Err.Error()
	}
	return v
}

// WriteReport writes rep to w in the given format. Text is the summary lines
// followed by the per-major table.
func WriteReport(w io.Writer, rep *analyzer.Report, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewReportView(rep))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewReportView(rep)); err != nil {
			return err
		}
		return enc.Close()
	default:
		if _, err := io.WriteString(w, RenderSummary(rep)); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "\n%s", RenderMajorTable(rep.ByMajor))
		return err
	}
}
