package simulation

import "math"

// PresentValue discounts each year's cash flow to present value at the given
// rate: entry y is cashFlows[y] / (1+rate)^y, so year 0 is undiscounted.
// Defined for any rate greater than -1.
func PresentValue(cashFlows []float64, discountRate float64) []float64 {
	discounted := make([]float64, len(cashFlows))
	for year, flow := range cashFlows {
		discounted[year] = flow / math.Pow(1+discountRate, float64(year))
	}
	return discounted
}
