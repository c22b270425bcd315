package simulation

// DepreciationForYear returns the depreciation deduction for the given
// 0-based year under a fixed-duration accelerated schedule: within the rate
// table's length the deduction is the year's rate applied to the capital
// cost, and every later year deducts nothing. There is no residual deduction
// once the table is exhausted.
func DepreciationForYear(yearIndex int, capitalCost float64, rates []float64) float64 {
	if yearIndex < 0 || yearIndex >= len(rates) {
		return 0
	}
	return capitalCost * rates[yearIndex]
}
