package store

import "time"

// Run is the saved summary of one analysis.
type Run struct {
	ID        string    `json:"id" yaml:"id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Source    string    `json:"source" yaml:"source"` // input file path
	Rows      int       `json:"rows" yaml:"rows"`
	Scored    int       `json:"scored" yaml:"scored"`

	CGPAMean      *float64 `json:"cgpa_mean" yaml:"cgpa_mean"`
	CGPAMedian    *float64 `json:"cgpa_median" yaml:"cgpa_median"`
	CGPAMode      *float64 `json:"cgpa_mode" yaml:"cgpa_mode"`
	PassionMean   *float64 `json:"passion_mean" yaml:"passion_mean"`
	PassionMedian *float64 `json:"passion_median" yaml:"passion_median"`
	PassionMode   *float64 `json:"passion_mode" yaml:"passion_mode"`

	Pairs           int      `json:"pairs" yaml:"pairs"`
	Correlation     *float64 `json:"correlation" yaml:"correlation"`
	CorrelationNote string   `json:"correlation_note,omitempty" yaml:"correlation_note,omitempty"` // why Correlation is nil

	Majors []RunMajor `json:"majors" yaml:"majors"`
}

// RunMajor is the saved per-major correlation of a run.
type RunMajor struct {
	Major           string   `json:"major" yaml:"major"`
	Size            int      `json:"size" yaml:"size"`
	Pairs           int      `json:"pairs" yaml:"pairs"`
	Correlation     *float64 `json:"correlation" yaml:"correlation"`
	CorrelationNote string   `json:"correlation_note,omitempty" yaml:"correlation_note,omitempty"`
}
