package stats

// Summary holds the descriptive statistics of one column.
type Summary struct {
	Count  int
	Mean   float64
	Median float64
	Mode   *float64 // nil when there is no unique most-frequent value
	Err    error    // ErrEmptyInput when Count is zero
}

// HasMode reports whether the column has a unique mode.
func (s Summary) HasMode() bool {
	return s.Mode != nil
}

// Summarize computes mean, median and mode over the non-missing values.
func Summarize(values []*float64) Summary {
	complete := Complete(values)
	s := Summary{Count: len(complete)}

	mean, err := Mean(complete)
	if err != nil {
		s.Err = err
		return s
	}
	s.Mean = mean

	// Mean succeeded, so neither of these can report ErrEmptyInput.
	s.Median, _ = Median(complete)
	if mode, ok, _ := Mode(complete); ok {
		s.Mode = &mode
	}
	return s
}

// Complete drops missing values, keeping order (listwise policy).
func Complete(values []*float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}

// Pairs keeps the positions where both xs and ys are present (pairwise policy).
func Pairs(xs, ys []*float64) ([]float64, []float64) {
	n := min(len(xs), len(ys))
	outX := make([]float64, 0, n)
	outY := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if xs[i] == nil || ys[i] == nil {
			continue
		}
		outX = append(outX, *xs[i])
		outY = append(outY, *ys[i])
	}
	return outX, outY
}
