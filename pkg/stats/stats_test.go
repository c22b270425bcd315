package stats

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name     string
		sample   []float64
		p        float64
		expected float64
	}{
		{
			name:     "Median of odd-length sample",
			sample:   []float64{3, 1, 2},
			p:        50,
			expected: 2,
		},
		{
			name:     "Median of even-length sample interpolates",
			sample:   []float64{1, 2, 3, 4},
			p:        50,
			expected: 2.5,
		},
		{
			name:     "Tenth percentile interpolates",
			sample:   []float64{10, 20, 30, 40, 50},
			p:        10,
			expected: 14, // rank 0.4 between 10 and 20
		},
		{
			name:     "Ninetieth percentile interpolates",
			sample:   []float64{10, 20, 30, 40, 50},
			p:        90,
			expected: 46,
		},
		{
			name:     "Zeroth percentile is minimum",
			sample:   []float64{5, -2, 7},
			p:        0,
			expected: -2,
		},
		{
			name:     "Hundredth percentile is maximum",
			sample:   []float64{5, -2, 7},
			p:        100,
			expected: 7,
		},
		{
			name:     "Single element",
			sample:   []float64{42},
			p:        90,
			expected: 42,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Percentile(tt.sample, tt.p)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("Percentile(%v, %v) = %v, expected %v", tt.sample, tt.p, result, tt.expected)
			}
		})
	}
}

func TestPercentileEmptySample(t *testing.T) {
	if !math.IsNaN(Percentile(nil, 50)) {
		t.Error("expected NaN for empty sample")
	}
	if !math.IsNaN(Percentile([]float64{1, 2}, 101)) {
		t.Error("expected NaN for out-of-range percentile")
	}
}

func TestPercentileDoesNotMutateInput(t *testing.T) {
	sample := []float64{3, 1, 2}
	Percentile(sample, 50)
	if sample[0] != 3 || sample[1] != 1 || sample[2] != 2 {
		t.Errorf("input sample was mutated: %v", sample)
	}
}

func TestPercentileOrdering(t *testing.T) {
	sample := []float64{-5, 12, 3.5, 0, 99, -17, 42, 8}
	p10 := Percentile(sample, 10)
	p50 := Percentile(sample, 50)
	p90 := Percentile(sample, 90)

	if p10 > p50 || p50 > p90 {
		t.Errorf("expected p10 <= p50 <= p90, got %v, %v, %v", p10, p50, p90)
	}
}

func TestMedian(t *testing.T) {
	if got := Median([]float64{9, 1, 5}); got != 5 {
		t.Errorf("Median() = %v, expected 5", got)
	}
}

func TestMean(t *testing.T) {
	if got := Mean([]float64{1, 2, 3, 4}); math.Abs(got-2.5) > 1e-9 {
		t.Errorf("Mean() = %v, expected 2.5", got)
	}
	if !math.IsNaN(Mean(nil)) {
		t.Error("expected NaN for empty sample")
	}
}
