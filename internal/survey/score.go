package survey

// Passion Score component tables. A value absent from its table is unmapped
// and makes the whole score undefined for that record.
var (
	yesNoPoints = map[string]int{
		Yes: 2,
		No:  0,
	}

	engagementPoints = map[string]int{
		Frequently:   2,
		Occasionally: 1,
		Rarely:       0,
		Never:        -1,
	}
)

// Score bounds for fully mapped responses.
const (
	MinPassionScore = -1
	MaxPassionScore = 8
)

// YesNoPoints returns the points for a yes/no answer and whether it is mapped.
func YesNoPoints(answer string) (int, bool) {
	p, ok := yesNoPoints[answer]
	return p, ok
}

// EngagementPoints returns the points for an engagement level and whether it is mapped.
func EngagementPoints(level string) (int, bool) {
	p, ok := engagementPoints[level]
	return p, ok
}

// PassionScore computes the composite score for a record:
//
//	majorDesire + mastersIntent + alignmentBelief + engagement
//
// where Yes=2, No=0 and Frequently=2, Occasionally=1, Rarely=0, Never=-1.
// The second return value is false if any of the four answers is unmapped.
func PassionScore(r Record) (int, bool) {
	total := 0
	for _, answer := range []string{r.MajorDesire, r.MastersIntent, r.AlignmentBelief} {
		p, ok := YesNoPoints(answer)
		if !ok {
			return 0, false
		}
		total += p
	}

	p, ok := EngagementPoints(r.Engagement)
	if !ok {
		return 0, false
	}
	return total + p, true
}

// DeriveScores attaches a Passion Score to every record and returns the same
// slice. Records with an unmapped answer keep a nil score.
func DeriveScores(records []Record) []Record {
	for i := range records {
		score, ok := PassionScore(records[i])
		if !ok {
			records[i].PassionScore = nil
			continue
		}
		records[i].PassionScore = &score
	}
	return records
}

// CountScored returns how many records carry a derived score.
func CountScored(records []Record) int {
	n := 0
	for _, r := range records {
		if r.HasScore() {
			n++
		}
	}
	return n
}
