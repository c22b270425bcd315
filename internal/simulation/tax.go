package simulation

import (
	"fmt"
)

// TaxedCashFlows converts a pre-tax cash-flow series and its matching
// depreciation series into after-tax cash flows under a flat tax rate.
//
// Taxable income carries a negative balance forward one step: when the prior
// year's taxable income was zero or negative it is added to this year's
// depreciated income, but a positive year discards any accumulated loss.
// This single-step carry-forward is the financing model's documented
// behavior and is reproduced as-is rather than replaced with a standard
// multi-year loss carry-forward.
func TaxedCashFlows(preTax, depreciation []float64, taxRate float64) ([]float64, error) {
	if len(preTax) != len(depreciation) {
		return nil, fmt.Errorf("cash-flow series length %d does not match depreciation series length %d",
			len(preTax), len(depreciation))
	}
	if len(preTax) == 0 {
		return nil, nil
	}

	depreciatedIncome := make([]float64, len(preTax))
	for year := range preTax {
		depreciatedIncome[year] = preTax[year] - depreciation[year]
	}

	taxableIncome := make([]float64, len(preTax))
	taxableIncome[0] = depreciatedIncome[0]
	for year := 1; year < len(preTax); year++ {
		if taxableIncome[year-1] <= 0 {
			taxableIncome[year] = depreciatedIncome[year] + taxableIncome[year-1]
		} else {
			taxableIncome[year] = depreciatedIncome[year]
		}
	}

	taxed := make([]float64, len(preTax))
	for year := range preTax {
		if taxableIncome[year] < 0 {
			taxed[year] = preTax[year]
		} else {
			taxed[year] = preTax[year] - taxableIncome[year]*taxRate
		}
	}

	return taxed, nil
}
