package simulation

import (
	"math"
	"testing"
)

func TestPresentValue(t *testing.T) {
	tests := []struct {
		name         string
		cashFlows    []float64
		discountRate float64
		expected     []float64
	}{
		{
			name:         "Year zero is undiscounted",
			cashFlows:    []float64{100},
			discountRate: 0.1,
			expected:     []float64{100},
		},
		{
			name:         "Growth at the discount rate flattens",
			cashFlows:    []float64{100, 110, 121},
			discountRate: 0.1,
			expected:     []float64{100, 100, 100},
		},
		{
			name:         "Zero rate is identity",
			cashFlows:    []float64{5, -3, 8},
			discountRate: 0,
			expected:     []float64{5, -3, 8},
		},
		{
			name:         "Negative rate inflates later years",
			cashFlows:    []float64{100, 100},
			discountRate: -0.5,
			expected:     []float64{100, 200},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PresentValue(tt.cashFlows, tt.discountRate)

			if len(result) != len(tt.expected) {
				t.Fatalf("expected %d entries, got %d", len(tt.expected), len(result))
			}
			for year := range tt.expected {
				if math.Abs(result[year]-tt.expected[year]) > 1e-9 {
					t.Errorf("year %d: PresentValue = %v, expected %v", year, result[year], tt.expected[year])
				}
			}
		})
	}
}

func TestPresentValueMonotonicDecay(t *testing.T) {
	flows := make([]float64, 30)
	for year := range flows {
		flows[year] = 1000
	}

	discounted := PresentValue(flows, 0.1)
	for year := 1; year < len(discounted); year++ {
		if discounted[year] >= discounted[year-1] {
			t.Fatalf("year %d: expected strictly decreasing present value, got %v after %v",
				year, discounted[year], discounted[year-1])
		}
	}
}
