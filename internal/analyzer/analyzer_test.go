package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/surveystat/internal/stats"
	"github.com/blackwell-systems/surveystat/internal/survey"
)

// respondent builds a record; cgpa <= 0 means the cell was blank.
func respondent(major string, cgpa float64, desire, masters, align, engage string) survey.Record {
	r := survey.Record{
		Major:           major,
		MajorDesire:     desire,
		MastersIntent:   masters,
		AlignmentBelief: align,
		Engagement:      engage,
		NoReason:        survey.AnsweredYes,
	}
	if cgpa > 0 {
		r.CGPA = &cgpa
	}
	return r
}

func sampleRecords() []survey.Record {
	records := []survey.Record{
		respondent("CS", 3.9, survey.Yes, survey.Yes, survey.Yes, survey.Frequently),  // 8
		respondent("CS", 3.1, survey.No, survey.No, survey.Yes, survey.Rarely),        // 2
		respondent("Art", 2.7, survey.No, survey.No, survey.No, survey.Never),         // -1
		respondent("CS", 3.5, survey.Yes, survey.No, survey.Yes, survey.Occasionally), // 5
		respondent("Law", 3.0, survey.Yes, survey.Yes, survey.No, survey.Frequently),  // 6
		respondent("Art", 0, survey.Yes, survey.Yes, survey.Yes, survey.Occasionally), // 7, no CGPA
		respondent("Law", 3.3, survey.Yes, "", survey.Yes, survey.Rarely),             // unscored
	}
	for i := range records {
		records[i].Row = i + 1
	}
	records[1].NoReason = "Job market"
	records[2].NoReason = "Family pressure"
	return survey.DeriveScores(records)
}

func TestSummarize_ListwiseMissing(t *testing.T) {
	cgpa, passion := Summarize(sampleRecords())

	require.NoError(t, cgpa.Err)
	assert.Equal(t, 6, cgpa.Count)
	assert.InDelta(t, (3.9+3.1+2.7+3.5+3.0+3.3)/6, cgpa.Mean, 1e-12)
	assert.InDelta(t, (3.1+3.3)/2, cgpa.Median, 1e-12)
	assert.False(t, cgpa.HasMode())

	require.NoError(t, passion.Err)
	assert.Equal(t, 6, passion.Count)
	assert.InDelta(t, (8+2-1+5+6+7)/6.0, passion.Mean, 1e-12)
	assert.InDelta(t, 5.5, passion.Median, 1e-12)
	assert.False(t, passion.HasMode())
}

func TestCorrelate_PairwiseComplete(t *testing.T) {
	records := sampleRecords()
	c := Correlate(records)

	require.True(t, c.Defined())
	assert.Equal(t, 5, c.Pairs)

	xs := []float64{3.9, 3.1, 2.7, 3.5, 3.0}
	ys := []float64{8, 2, -1, 5, 6}
	want, err := stats.Pearson(xs, ys)
	require.NoError(t, err)
	assert.InDelta(t, want, *c.R, 1e-12)
}

func TestCorrelateByMajor_IsolatesUndefinedGroups(t *testing.T) {
	got := CorrelateByMajor(sampleRecords())
	require.Len(t, got, 3)

	assert.Equal(t, "CS", got[0].Major)
	assert.Equal(t, 3, got[0].Size)
	assert.Equal(t, 3, got[0].Pairs)
	assert.True(t, got[0].Defined())
	assert.NoError(t, got[0].Err)

	assert.Equal(t, "Art", got[1].Major)
	assert.Equal(t, 1, got[1].Pairs)
	assert.False(t, got[1].Defined())
	assert.ErrorIs(t, got[1].Err, stats.ErrInsufficientData)

	assert.Equal(t, "Law", got[2].Major)
	assert.Equal(t, 1, got[2].Pairs)
	assert.ErrorIs(t, got[2].Err, stats.ErrInsufficientData)
}

func TestCorrelateByMajor_ZeroVariance(t *testing.T) {
	records := survey.DeriveScores([]survey.Record{
		respondent("Math", 3.5, survey.Yes, survey.Yes, survey.Yes, survey.Frequently),
		respondent("Math", 3.5, survey.No, survey.Yes, survey.Yes, survey.Rarely),
		respondent("Bio", 3.0, survey.Yes, survey.No, survey.Yes, survey.Frequently),
		respondent("Bio", 3.6, survey.Yes, survey.Yes, survey.Yes, survey.Frequently),
	})

	got := CorrelateByMajor(records)
	require.Len(t, got, 2)
	assert.ErrorIs(t, got[0].Err, stats.ErrZeroVariance)
	require.True(t, got[1].Defined())
	assert.InDelta(t, 1.0, *got[1].R, 1e-9)
}

func TestGroupByMajor_FirstOccurrenceOrder(t *testing.T) {
	groups := GroupByMajor(sampleRecords())
	require.Len(t, groups, 3)
	assert.Equal(t, []string{"CS", "Art", "Law"}, []string{groups[0].Major, groups[1].Major, groups[2].Major})
	assert.Equal(t, []int{1, 2, 4}, []int{groups[0].Records[0].Row, groups[0].Records[1].Row, groups[0].Records[2].Row})
}

func TestEngagementGroups(t *testing.T) {
	groups := EngagementGroups(sampleRecords())
	require.Len(t, groups, 4)

	assert.Equal(t, survey.Never, groups[0].Level)
	assert.Equal(t, []float64{2.7}, groups[0].CGPA)
	assert.Equal(t, survey.Rarely, groups[1].Level)
	assert.Equal(t, []float64{3.1, 3.3}, groups[1].CGPA)
	assert.Equal(t, survey.Occasionally, groups[2].Level)
	assert.Equal(t, []float64{3.5}, groups[2].CGPA)
	assert.Equal(t, survey.Frequently, groups[3].Level)
	assert.Equal(t, []float64{3.9, 3.0}, groups[3].CGPA)
}

func TestResponses(t *testing.T) {
	resp := Responses(sampleRecords())
	require.Len(t, resp, 4)

	assert.Equal(t, TitleMajorDesire, resp[0].Title)
	assert.Equal(t, []CategoryCount{{survey.Yes, 5}, {survey.No, 2}}, resp[0].Counts)

	assert.Equal(t, TitleNoReason, resp[1].Title)
	assert.Equal(t, []CategoryCount{{"Family pressure", 1}, {"Job market", 1}}, resp[1].Counts)
	assert.Equal(t, 2, resp[1].Total())

	assert.Equal(t, []CategoryCount{{survey.No, 3}, {survey.Yes, 3}}, resp[2].Counts)
}

func TestRun(t *testing.T) {
	rep := Run(sampleRecords())

	assert.Equal(t, 7, rep.Rows)
	assert.Equal(t, 6, rep.Scored)
	assert.Equal(t, 6, rep.CGPA.Count)
	assert.True(t, rep.Overall.Defined())
	assert.Len(t, rep.ByMajor, 3)
	assert.Len(t, rep.Engagement, 4)
	assert.Len(t, rep.Responses, 4)
}

func TestRun_Empty(t *testing.T) {
	rep := Run(nil)

	assert.Zero(t, rep.Rows)
	assert.ErrorIs(t, rep.CGPA.Err, stats.ErrEmptyInput)
	assert.ErrorIs(t, rep.Passion.Err, stats.ErrEmptyInput)
	assert.ErrorIs(t, rep.Overall.Err, stats.ErrInsufficientData)
	assert.Empty(t, rep.ByMajor)
}
