package analyzer

import "github.com/blackwell-systems/surveystat/internal/stats"

// Correlation is the Pearson correlation between CGPA and Passion Score over
// the pairwise-complete observations of a set of records.
type Correlation struct {
	Pairs int      // complete (CGPA, score) pairs used
	R     *float64 // nil when undefined
	Err   error    // stats.ErrInsufficientData or stats.ErrZeroVariance when R is nil
}

// Defined reports whether the coefficient could be computed.
func (c Correlation) Defined() bool {
	return c.R != nil
}

// GroupCorrelation is the correlation within one major.
type GroupCorrelation struct {
	Major string
	Size  int // records in the group, complete or not
	Correlation
}

// CategoryCount is one slice of a pie chart.
type CategoryCount struct {
	Label string
	Count int
}

// ResponseCounts tallies the answers to one categorical question.
type ResponseCounts struct {
	Title  string
	Counts []CategoryCount // by count desc, then label
}

// Total returns the number of answers counted.
func (r ResponseCounts) Total() int {
	n := 0
	for _, c := range r.Counts {
		n += c.Count
	}
	return n
}

// EngagementGroup holds the CGPA values of respondents at one engagement level.
type EngagementGroup struct {
	Level string
	CGPA  []float64
}

// Report is the full result of one analysis run.
type Report struct {
	Rows       int // records loaded
	Scored     int // records with a Passion Score
	CGPA       stats.Summary
	Passion    stats.Summary
	Overall    Correlation
	ByMajor    []GroupCorrelation // in order of first appearance
	Engagement []EngagementGroup  // Never, Rarely, Occasionally, Frequently
	Responses  []ResponseCounts
}
