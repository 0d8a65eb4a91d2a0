// Package stats implements the descriptive statistics and correlation
// measures used by the survey analysis.
//
// All functions are pure. Callers are responsible for removing missing
// observations first: Summarize and the slices built by Complete and Pairs
// do that for the listwise and pairwise policies respectively.
package stats

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmptyInput is returned by statistics computed over no values.
	ErrEmptyInput = errors.New("empty input")

	// ErrInsufficientData is returned when fewer than two complete pairs are
	// available for a correlation or fit.
	ErrInsufficientData = errors.New("insufficient data: need at least 2 complete pairs")

	// ErrZeroVariance is returned when one of the series is constant and the
	// correlation is undefined.
	ErrZeroVariance = errors.New("zero variance: correlation undefined")
)

// Mean returns the arithmetic mean of values.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyInput
	}
	return stat.Mean(values, nil), nil
}

// Median returns the middle value of values, or the average of the two middle
// values when the length is even.
func Median(values []float64) (float64, error) {
	n := len(values)
	if n == 0 {
		return 0, ErrEmptyInput
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	if n%2 == 1 {
		return sorted[n/2], nil
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2, nil
}

// Mode returns the most frequent value. ok is false when no single value is
// more frequent than all others, which includes inputs where every value is
// distinct. That outcome is not an error.
func Mode(values []float64) (mode float64, ok bool, err error) {
	if len(values) == 0 {
		return 0, false, ErrEmptyInput
	}

	counts := make(map[float64]int, len(values))
	for _, v := range values {
		counts[v]++
	}

	best, bestCount, tied := 0.0, 0, false
	for v, c := range counts {
		switch {
		case c > bestCount:
			best, bestCount, tied = v, c, false
		case c == bestCount:
			tied = true
		}
	}
	if tied {
		return 0, false, nil
	}
	return best, true, nil
}

// Pearson returns the product-moment correlation coefficient of xs and ys.
// Both slices must hold complete observations of equal length; use Pairs to
// build them from optional values.
func Pearson(xs, ys []float64) (float64, error) {
	if err := checkPairs(xs, ys); err != nil {
		return 0, err
	}

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return 0, ErrZeroVariance
	}
	// Rounding can push |r| marginally past 1.
	return math.Max(-1, math.Min(1, r)), nil
}

// LinearFit returns the least-squares intercept and slope of ys on xs.
func LinearFit(xs, ys []float64) (intercept, slope float64, err error) {
	if err := checkPairs(xs, ys); err != nil {
		return 0, 0, err
	}
	intercept, slope = stat.LinearRegression(xs, ys, nil, false)
	return intercept, slope, nil
}

func checkPairs(xs, ys []float64) error {
	if len(xs) != len(ys) {
		panic("stats: slice length mismatch")
	}
	if len(xs) < 2 {
		return ErrInsufficientData
	}
	if constant(xs) || constant(ys) {
		return ErrZeroVariance
	}
	return nil
}

func constant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
