package simulation

import (
	"math/rand"

	"github.com/iwvelando/storage-npv/internal/config"
	"go.uber.org/zap"
)

// Engine runs unit and fleet simulations against one immutable configuration.
// The configuration is shared read-only by every simulated unit; all per-unit
// state lives in the injected random generator and the returned trajectory.
type Engine struct {
	logger *zap.Logger
	conf   *config.Configuration
}

// NewEngine creates a simulation engine for the given configuration.
func NewEngine(logger *zap.Logger, conf *config.Configuration) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger, conf: conf}
}

// SimulateUnit runs one unit's full multi-year life and returns its
// discounted yearly cash flows. Every call draws fresh randomness from the
// supplied generator, so calls with independent generators are statistically
// independent.
func (e *Engine) SimulateUnit(rng *rand.Rand) ([]float64, error) {
	horizon := e.conf.Simulation.HorizonYears
	capitalCost := e.conf.CapitalCost()

	preTax := make([]float64, horizon)
	depreciation := make([]float64, horizon)
	for year := 0; year < horizon; year++ {
		preTax[year] = AnnualCashFlow(rng, year, e.conf)
		depreciation[year] = DepreciationForYear(year, capitalCost, e.conf.Tax.DepreciationRates)
	}

	taxed, err := TaxedCashFlows(preTax, depreciation, e.conf.Tax.TaxRate)
	if err != nil {
		return nil, err
	}

	return PresentValue(taxed, e.conf.Tax.DiscountRate), nil
}
