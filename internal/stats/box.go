package stats

import (
	"math"
	"sort"
)

// WhiskerIQR is the whisker reach in multiples of the interquartile range.
const WhiskerIQR = 1.5

// BoxSummary is the five-number summary drawn by a box plot.
type BoxSummary struct {
	Q1, Median, Q3          float64
	LowWhisker, HighWhisker float64 // most extreme values within the whisker reach
	Outliers                []float64
}

// Quantile returns the p-quantile of sorted using linear interpolation
// between closest ranks. sorted must be in ascending order and non-empty.
func Quantile(sorted []float64, p float64) float64 {
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// Box computes the box plot summary of values.
func Box(values []float64) (BoxSummary, error) {
	if len(values) == 0 {
		return BoxSummary{}, ErrEmptyInput
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	b := BoxSummary{
		Q1:     Quantile(sorted, 0.25),
		Median: Quantile(sorted, 0.5),
		Q3:     Quantile(sorted, 0.75),
	}
	reach := WhiskerIQR * (b.Q3 - b.Q1)
	lo, hi := b.Q1-reach, b.Q3+reach

	b.LowWhisker, b.HighWhisker = b.Q1, b.Q3
	for _, v := range sorted {
		if v >= lo {
			b.LowWhisker = math.Min(v, b.Q1)
			break
		}
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] <= hi {
			b.HighWhisker = math.Max(sorted[i], b.Q3)
			break
		}
	}
	for _, v := range sorted {
		if v < lo || v > hi {
			b.Outliers = append(b.Outliers, v)
		}
	}
	return b, nil
}
