package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestMean(t *testing.T) {
	got, err := Mean([]float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.InDelta(t, 2.5, got, 1e-12)

	_, err = Mean(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"odd", []float64{1, 2, 3}, 2},
		{"even", []float64{1, 2, 3, 4}, 2.5},
		{"unsorted", []float64{9, 1, 5}, 5},
		{"single", []float64{3.7}, 3.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Median(tt.values)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}

	_, err := Median([]float64{})
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestMedian_DoesNotReorderInput(t *testing.T) {
	in := []float64{3, 1, 2}
	_, err := Median(in)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, in)
}

func TestMode(t *testing.T) {
	got, ok, err := Mode([]float64{1, 1, 2})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1.0, got)

	_, ok, err = Mode([]float64{1, 2, 3})
	require.NoError(t, err)
	assert.False(t, ok, "all distinct values have no unique mode")

	_, ok, err = Mode([]float64{4, 4, 5, 5})
	require.NoError(t, err)
	assert.False(t, ok, "equal frequencies have no unique mode")

	_, ok, err = Mode([]float64{1, 1, 2, 2, 3})
	require.NoError(t, err)
	assert.False(t, ok, "a tie at the top has no unique mode")

	got, ok, err = Mode([]float64{7})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 7.0, got)

	_, _, err = Mode(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestPearson_Identity(t *testing.T) {
	xs := []float64{2.1, 3.4, 3.9, 2.8, 3.3}
	r, err := Pearson(xs, xs)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r, 1e-9)

	neg := make([]float64, len(xs))
	for i, v := range xs {
		neg[i] = -v
	}
	r, err = Pearson(xs, neg)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, r, 1e-9)
}

func TestPearson_KnownValue(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	ys := []float64{2, 4, 5, 4, 5}
	r, err := Pearson(xs, ys)
	require.NoError(t, err)
	// cov = 6/4, sx = sqrt(10/4), sy = sqrt(6/4)
	assert.InDelta(t, 6/math.Sqrt(60), r, 1e-12)
}

func TestPearson_Errors(t *testing.T) {
	_, err := Pearson([]float64{3.5, 3.5, 3.5}, []float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrZeroVariance)

	_, err = Pearson([]float64{1, 2, 3}, []float64{4, 4, 4})
	assert.ErrorIs(t, err, ErrZeroVariance)

	_, err = Pearson([]float64{1}, []float64{2})
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = Pearson(nil, nil)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestLinearFit(t *testing.T) {
	xs := []float64{0, 1, 2, 3}
	ys := []float64{1, 3, 5, 7}
	a, b, err := LinearFit(xs, ys)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, a, 1e-9)
	assert.InDelta(t, 2.0, b, 1e-9)

	_, _, err = LinearFit([]float64{2, 2}, []float64{1, 3})
	assert.ErrorIs(t, err, ErrZeroVariance)
}

func TestSummarize(t *testing.T) {
	s := Summarize([]*float64{ptr(3), nil, ptr(1), ptr(3), nil, ptr(2)})
	require.NoError(t, s.Err)
	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 2.25, s.Mean, 1e-12)
	assert.InDelta(t, 2.5, s.Median, 1e-12)
	require.True(t, s.HasMode())
	assert.Equal(t, 3.0, *s.Mode)

	s = Summarize([]*float64{ptr(1), ptr(2)})
	assert.False(t, s.HasMode())

	s = Summarize([]*float64{nil, nil})
	assert.ErrorIs(t, s.Err, ErrEmptyInput)
	assert.Zero(t, s.Count)
}

func TestPairs(t *testing.T) {
	xs := []*float64{ptr(1), nil, ptr(3), ptr(4)}
	ys := []*float64{ptr(10), ptr(20), nil, ptr(40)}

	px, py := Pairs(xs, ys)
	assert.Equal(t, []float64{1, 4}, px)
	assert.Equal(t, []float64{10, 40}, py)
}

func TestBox(t *testing.T) {
	b, err := Box([]float64{1, 2, 3, 4, 5, 6, 7, 8, 100})
	require.NoError(t, err)
	assert.InDelta(t, 3.0, b.Q1, 1e-12)
	assert.InDelta(t, 5.0, b.Median, 1e-12)
	assert.InDelta(t, 7.0, b.Q3, 1e-12)
	assert.InDelta(t, 1.0, b.LowWhisker, 1e-12)
	assert.InDelta(t, 8.0, b.HighWhisker, 1e-12)
	assert.Equal(t, []float64{100}, b.Outliers)

	_, err = Box(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestQuantile_Interpolates(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	assert.InDelta(t, 1.75, Quantile(sorted, 0.25), 1e-12)
	assert.InDelta(t, 2.5, Quantile(sorted, 0.5), 1e-12)
	assert.InDelta(t, 3.25, Quantile(sorted, 0.75), 1e-12)
}
