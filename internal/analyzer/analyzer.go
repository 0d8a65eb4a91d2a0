// Package analyzer runs the survey analysis pipeline:
//
//	load -> derive -> summarize -> correlate
//
// Loading and score derivation live in the survey package; this package holds
// the remaining stages. Each stage is a pure function over the record slice so
// it can be called and tested on its own. Run chains them into a Report.
package analyzer

import (
	"github.com/rs/zerolog/log"

	"github.com/blackwell-systems/surveystat/internal/stats"
	"github.com/blackwell-systems/surveystat/internal/survey"
)

// Run summarizes and correlates records. Scores must already be derived.
func Run(records []survey.Record) *Report {
	rep := &Report{
		Rows:   len(records),
		Scored: survey.CountScored(records),
	}

	rep.CGPA, rep.Passion = Summarize(records)
	rep.Overall = Correlate(records)
	rep.ByMajor = CorrelateByMajor(records)
	rep.Engagement = EngagementGroups(records)
	rep.Responses = Responses(records)

	log.Debug().
		Int("rows", rep.Rows).
		Int("scored", rep.Scored).
		Int("majors", len(rep.ByMajor)).
		Msg("analysis complete")

	return rep
}

// CGPAValues returns the CGPA column; missing cells are nil.
func CGPAValues(records []survey.Record) []*float64 {
	out := make([]*float64, len(records))
	for i, r := range records {
		out[i] = r.CGPA
	}
	return out
}

// ScoreValues returns the Passion Score column as floats; undefined scores are nil.
func ScoreValues(records []survey.Record) []*float64 {
	out := make([]*float64, len(records))
	for i, r := range records {
		if r.PassionScore != nil {
			v := float64(*r.PassionScore)
			out[i] = &v
		}
	}
	return out
}

// Summarize returns the descriptive statistics for CGPA and Passion Score.
// Missing values are dropped per column.
func Summarize(records []survey.Record) (cgpa, passion stats.Summary) {
	return stats.Summarize(CGPAValues(records)), stats.Summarize(ScoreValues(records))
}

// Points returns the pairwise-complete (CGPA, Passion Score) observations.
func Points(records []survey.Record) (xs, ys []float64) {
	return stats.Pairs(CGPAValues(records), ScoreValues(records))
}

// Correlate computes the Pearson correlation between CGPA and Passion Score.
// An undefined coefficient is reported on the result, not returned as an error.
func Correlate(records []survey.Record) Correlation {
	xs, ys := Points(records)
	c := Correlation{Pairs: len(xs)}

	r, err := stats.Pearson(xs, ys)
	if err != nil {
		c.Err = err
		return c
	}
	c.R = &r
	return c
}
