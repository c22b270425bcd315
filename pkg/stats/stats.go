// Package stats provides summary statistics over float samples.
package stats

import (
	"math"
	"sort"
)

// Percentile returns the pth percentile (0-100) of the sample using linear
// interpolation between the closest order statistics. The input slice is not
// modified. An empty sample or an out-of-range p returns NaN.
func Percentile(sample []float64, p float64) float64 {
	if len(sample) == 0 || p < 0 || p > 100 {
		return math.NaN()
	}

	sorted := make([]float64, len(sample))
	copy(sorted, sample)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	if lower >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[lower+1]-sorted[lower])
}

// Median returns the 50th percentile of the sample.
func Median(sample []float64) float64 {
	return Percentile(sample, 50)
}

// Mean returns the arithmetic mean of the sample, or NaN for an empty sample.
func Mean(sample []float64) float64 {
	if len(sample) == 0 {
		return math.NaN()
	}

	total := 0.0
	for _, v := range sample {
		total += v
	}
	return total / float64(len(sample))
}
