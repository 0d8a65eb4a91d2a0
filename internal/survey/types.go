package survey

import "strings"

// Column identifies one of the survey questions the analysis depends on.
// The value is the canonical header text as exported by the survey form.
type Column string

const (
	ColMajorDesire     Column = "Did you want to pursue that major?"
	ColMastersIntent   Column = "Do you consider pursuing a master's degree?"
	ColAlignmentBelief Column = "Do you believe your chosen major aligns with your interests and career goals?"
	ColEngagement      Column = "How much do you engage in activities related to your major outside of your coursework?"
	ColCGPA            Column = "What is your CGPA?"
	ColMajor           Column = "What is your major?"
	ColNoReason        Column = "If your answer was no, why did you choose it?"
)

// RequiredColumns lists every column Load expects in the header row.
var RequiredColumns = []Column{
	ColMajorDesire,
	ColMastersIntent,
	ColAlignmentBelief,
	ColEngagement,
	ColCGPA,
	ColMajor,
	ColNoReason,
}

// ColumnKeys gives each required column a short name for use in config files.
var ColumnKeys = map[string]Column{
	"desire":     ColMajorDesire,
	"masters":    ColMastersIntent,
	"alignment":  ColAlignmentBelief,
	"engagement": ColEngagement,
	"cgpa":       ColCGPA,
	"major":      ColMajor,
	"reason":     ColNoReason,
}

// LookupColumn resolves a short key or a canonical header text to a column.
func LookupColumn(name string) (Column, bool) {
	if c, ok := ColumnKeys[strings.ToLower(name)]; ok {
		return c, true
	}
	for _, c := range RequiredColumns {
		if string(c) == name {
			return c, true
		}
	}
	return "", false
}

// AnsweredYes is the placeholder respondents give to the "why did you choose it"
// question when they did want their major.
const AnsweredYes = "My answer was yes"

// Answer values for the yes/no questions.
const (
	Yes = "Yes"
	No  = "No"
)

// Engagement levels, in ascending order of involvement.
const (
	Never        = "Never"
	Rarely       = "Rarely"
	Occasionally = "Occasionally"
	Frequently   = "Frequently"
)

// EngagementLevels is the canonical presentation order for engagement levels.
var EngagementLevels = []string{Never, Rarely, Occasionally, Frequently}

// Record is one respondent's row.
type Record struct {
	Row             int // 1-based data row number, header excluded
	MajorDesire     string
	MastersIntent   string
	AlignmentBelief string
	Engagement      string
	CGPA            *float64 // nil when the cell was blank
	Major           string
	NoReason        string
	PassionScore    *int // nil until derived, or when any component is unmapped
}

// HasCGPA reports whether the record carries a CGPA value.
func (r Record) HasCGPA() bool {
	return r.CGPA != nil
}

// HasScore reports whether a Passion Score was derived for the record.
func (r Record) HasScore() bool {
	return r.PassionScore != nil
}
