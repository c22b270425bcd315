// Package simulation implements the Monte Carlo cash-flow engine: daily
// arbitrage profit, yearly cash-flow assembly, taxation, discounting, and
// cross-unit aggregation into an NPV distribution.
package simulation

import (
	"math/rand"

	"github.com/iwvelando/storage-npv/internal/config"
)

// DailySample is one day's randomly drawn market conditions. Samples are
// consumed immediately by the profit calculation and never persisted.
type DailySample struct {
	PeakPrice    float64 // $/kWh at discharge
	TroughPrice  float64 // $/kWh at charge
	StorageHours float64 // hours the charge is held
}

// DrawDailySample draws peak price, trough price, and storage duration
// independently and uniformly within the configured bounds.
func DrawDailySample(rng *rand.Rand, storage config.StorageConfig) DailySample {
	return DailySample{
		PeakPrice:    uniform(rng, storage.MinPeakPrice, storage.MaxPeakPrice),
		TroughPrice:  uniform(rng, storage.MinTroughPrice, storage.MaxTroughPrice),
		StorageHours: uniform(rng, storage.MinStorageHours, storage.MaxStorageHours),
	}
}

// Profit computes the arbitrage profit of one charge/discharge cycle under
// the sampled conditions: charge the full capacity at the trough price,
// discharge what survives self-discharge at the peak price, and for thermal
// units credit the recycled fraction of conversion losses at the peak price.
func (sample DailySample) Profit(storage config.StorageConfig) float64 {
	storageLoss := sample.StorageHours * storage.HourlyLossRate * storage.Capacity
	chargeCost := sample.TroughPrice * storage.Capacity
	dischargeRevenue := sample.PeakPrice * storage.Efficiency * (storage.Capacity - storageLoss)

	if storage.Thermal {
		heatRecycleRevenue := (1 - storage.Efficiency) * storage.Capacity * storage.HeatRecycling * sample.PeakPrice
		return dischargeRevenue - chargeCost + heatRecycleRevenue
	}
	return dischargeRevenue - chargeCost
}

// DailyProfit draws one day's market sample and returns its arbitrage profit.
func DailyProfit(rng *rand.Rand, storage config.StorageConfig) float64 {
	return DrawDailySample(rng, storage).Profit(storage)
}

// CumulativeDailyProfit sums raw daily profit over an arbitrary day count
// with no financing or tax applied, returning the running total after each
// day. This is a standalone reporting mode, not part of the NPV pipeline.
func CumulativeDailyProfit(rng *rand.Rand, storage config.StorageConfig, days int) []float64 {
	totals := make([]float64, 0, days)
	total := 0.0
	for day := 0; day < days; day++ {
		total += DailyProfit(rng, storage)
		totals = append(totals, total)
	}
	return totals
}

func uniform(rng *rand.Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}
