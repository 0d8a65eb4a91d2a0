package analyzer

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/blackwell-systems/surveystat/internal/survey"
)

// MajorGroup is the subset of records sharing one major.
type MajorGroup struct {
	Major   string
	Records []survey.Record
}

// GroupByMajor partitions records by exact major string. Groups appear in the
// order their major is first seen; records keep their input order.
func GroupByMajor(records []survey.Record) []MajorGroup {
	index := make(map[string]int)
	var groups []MajorGroup
	for _, r := range records {
		i, ok := index[r.Major]
		if !ok {
			i = len(groups)
			index[r.Major] = i
			groups = append(groups, MajorGroup{Major: r.Major})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}

// CorrelateByMajor correlates CGPA and Passion Score separately within each
// major. A group whose correlation is undefined carries the reason and does
// not affect the others.
func CorrelateByMajor(records []survey.Record) []GroupCorrelation {
	groups := GroupByMajor(records)
	out := make([]GroupCorrelation, 0, len(groups))
	for _, g := range groups {
		gc := GroupCorrelation{
			Major:       g.Major,
			Size:        len(g.Records),
			Correlation: Correlate(g.Records),
		}
		if gc.Err != nil {
			log.Warn().Str("major", g.Major).Int("pairs", gc.Pairs).Err(gc.Err).Msg("correlation undefined")
		}
		out = append(out, gc)
	}
	return out
}

// EngagementGroups collects CGPA values per engagement level in canonical
// order. Records with no CGPA or an unrecognized level are left out.
func EngagementGroups(records []survey.Record) []EngagementGroup {
	groups := make([]EngagementGroup, len(survey.EngagementLevels))
	index := make(map[string]int, len(groups))
	for i, level := range survey.EngagementLevels {
		groups[i] = EngagementGroup{Level: level}
		index[level] = i
	}

	for _, r := range records {
		i, ok := index[r.Engagement]
		if !ok || r.CGPA == nil {
			continue
		}
		groups[i].CGPA = append(groups[i].CGPA, *r.CGPA)
	}
	return groups
}

// Pie chart titles, in grid order.
const (
	TitleMajorDesire   = "Did you want to pursue that major?"
	TitleNoReason      = "If no why did you choose it?"
	TitleMastersIntent = "Do you consider pursuing a master's degree?"
	TitleAlignment     = "Do you believe your major aligns with your interests/goals?"
)

// Responses tallies the four pie-chart questions. The "why did you choose it"
// answers exclude respondents who did want their major.
func Responses(records []survey.Record) []ResponseCounts {
	pick := func(title string, value func(survey.Record) string) ResponseCounts {
		answers := make([]string, 0, len(records))
		for _, r := range records {
			answers = append(answers, value(r))
		}
		return ResponseCounts{Title: title, Counts: CountValues(answers)}
	}

	return []ResponseCounts{
		pick(TitleMajorDesire, func(r survey.Record) string { return r.MajorDesire }),
		pick(TitleNoReason, func(r survey.Record) string {
			if r.NoReason == survey.AnsweredYes {
				return ""
			}
			return r.NoReason
		}),
		pick(TitleMastersIntent, func(r survey.Record) string { return r.MastersIntent }),
		pick(TitleAlignment, func(r survey.Record) string { return r.AlignmentBelief }),
	}
}

// CountValues counts the non-blank values, most frequent first. Ties are
// ordered by label so the result is deterministic.
func CountValues(values []string) []CategoryCount {
	counts := make(map[string]int)
	for _, v := range values {
		if v == "" {
			continue
		}
		counts[v]++
	}

	out := make([]CategoryCount, 0, len(counts))
	for label, n := range counts {
		out = append(out, CategoryCount{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}
