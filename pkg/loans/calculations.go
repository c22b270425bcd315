// Package loans provides common loan amortization utilities.
package loans

import (
	"fmt"
	"math"

	"github.com/iwvelando/storage-npv/pkg/mathutil"
	"go.uber.org/zap"
)

// Payment holds the values for a given payment period.
type Payment struct {
	Payment            float64
	Principal          float64
	Interest           float64
	RemainingPrincipal float64
}

// Summary aggregates a full amortization schedule.
type Summary struct {
	PeriodicPayment float64
	TotalPaid       float64
	TotalInterest   float64
	Schedule        []Payment
}

// CalculateAmortizedPayment calculates the fixed periodic payment that fully
// repays principal over termYears at the given annual rate (as a fraction,
// e.g. 0.08) with paymentsPerYear compounding periods.
func CalculateAmortizedPayment(principal, annualRate float64, termYears, paymentsPerYear int) float64 {
	periods := termYears * paymentsPerYear
	if periods == 0 {
		return 0
	}

	if annualRate == 0 {
		// For zero interest, simply divide the principal by the period count
		return principal / float64(periods)
	}

	periodicRate := annualRate / float64(paymentsPerYear)
	power := math.Pow(1.00+periodicRate, float64(periods))
	return principal * periodicRate * power / (power - 1.00)
}

// CalculateInterestPayment calculates the interest portion of one payment.
func CalculateInterestPayment(remainingPrincipal, annualRate float64, paymentsPerYear int) float64 {
	return remainingPrincipal * annualRate / float64(paymentsPerYear)
}

// ScheduleGenerator produces full amortization schedules.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance.
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// GenerateSummary computes the complete payment schedule for a loan along
// with its aggregate figures. The final payment absorbs rounding drift so
// the remaining principal lands exactly on zero.
func (g *ScheduleGenerator) GenerateSummary(principal, annualRate float64, termYears, paymentsPerYear int) (*Summary, error) {
	if principal < 0 {
		return nil, fmt.Errorf("loan principal must be non-negative, got %.2f", principal)
	}
	if termYears <= 0 || paymentsPerYear <= 0 {
		return nil, fmt.Errorf("loan term and payment frequency must be positive, got %d years at %d payments/year",
			termYears, paymentsPerYear)
	}

	periodicPayment := CalculateAmortizedPayment(principal, annualRate, termYears, paymentsPerYear)
	periods := termYears * paymentsPerYear

	summary := &Summary{
		PeriodicPayment: periodicPayment,
		Schedule:        make([]Payment, 0, periods),
	}

	remaining := principal
	for period := 1; period <= periods; period++ {
		var current Payment
		current.Interest = CalculateInterestPayment(remaining, annualRate, paymentsPerYear)
		current.Principal = periodicPayment - current.Interest
		current.Payment = periodicPayment

		if period == periods || mathutil.Round(remaining-current.Principal) == 0 {
			// We will get machine error otherwise so just set to 0.
			current.Principal = remaining
			current.Payment = current.Principal + current.Interest
			current.RemainingPrincipal = 0.00
		} else {
			current.RemainingPrincipal = remaining - current.Principal
		}

		summary.Schedule = append(summary.Schedule, current)
		summary.TotalPaid += current.Payment
		summary.TotalInterest += current.Interest
		remaining = current.RemainingPrincipal

		if remaining == 0 {
			break
		}
	}

	g.logger.Debug(fmt.Sprintf("amortized %.2f over %d periods at payment %.2f", principal, len(summary.Schedule), periodicPayment),
		zap.String("op", "loans.GenerateSummary"),
	)

	return summary, nil
}
