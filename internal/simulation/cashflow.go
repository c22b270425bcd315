package simulation

import (
	"math/rand"

	"github.com/iwvelando/storage-npv/internal/config"
	"github.com/iwvelando/storage-npv/pkg/constants"
	"github.com/iwvelando/storage-npv/pkg/loans"
)

// AnnualCashFlow simulates one year's pre-tax cash flow: 365 independent
// daily arbitrage draws, net of the fixed labor cost and, while the loan is
// outstanding, twelve monthly loan payments. yearIndex is 0-based; the loan
// payment applies through yearIndex == LoanTermYears inclusive, matching the
// financing model this engine reproduces.
func AnnualCashFlow(rng *rand.Rand, yearIndex int, conf *config.Configuration) float64 {
	operatingProfit := 0.0
	for day := 0; day < constants.DaysPerYear; day++ {
		operatingProfit += DailyProfit(rng, conf.Storage)
	}

	// Recomputed each year rather than cached; loan terms are fixed for the
	// run and the annuity formula is cheap next to 365 market draws.
	monthlyPayment := 0.0
	if yearIndex <= conf.Financing.LoanTermYears {
		monthlyPayment = loans.CalculateAmortizedPayment(
			conf.CapitalCost(),
			conf.Financing.LoanRate,
			conf.Financing.LoanTermYears,
			conf.PaymentsPerYear(),
		)
	}

	return operatingProfit - conf.LaborCost() - float64(conf.PaymentsPerYear())*monthlyPayment
}
