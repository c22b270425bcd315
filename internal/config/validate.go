package config

import (
	"fmt"
	"strings"

	"github.com/iwvelando/storage-npv/pkg/constants"
)

// Validate checks every configuration invariant that must hold before a
// simulation may start. All violations are collected so a bad config is
// reported in one pass.
func (conf *Configuration) Validate() error {
	var problems []string

	storage := conf.Storage
	if storage.Capacity <= 0 {
		problems = append(problems, fmt.Sprintf("storage capacity must be positive, got %v", storage.Capacity))
	}
	if storage.Efficiency < 0 || storage.Efficiency > 1 {
		problems = append(problems, fmt.Sprintf("efficiency must be within [0, 1], got %v", storage.Efficiency))
	}
	if storage.HourlyLossRate < 0 {
		problems = append(problems, fmt.Sprintf("hourly loss rate must be non-negative, got %v", storage.HourlyLossRate))
	}
	if storage.HeatRecycling < 0 || storage.HeatRecycling > 1 {
		problems = append(problems, fmt.Sprintf("heat recycling fraction must be within [0, 1], got %v", storage.HeatRecycling))
	}
	if storage.MinPeakPrice > storage.MaxPeakPrice {
		problems = append(problems, fmt.Sprintf("min peak price %v exceeds max peak price %v", storage.MinPeakPrice, storage.MaxPeakPrice))
	}
	if storage.MinTroughPrice > storage.MaxTroughPrice {
		problems = append(problems, fmt.Sprintf("min trough price %v exceeds max trough price %v", storage.MinTroughPrice, storage.MaxTroughPrice))
	}
	if storage.MinStorageHours > storage.MaxStorageHours {
		problems = append(problems, fmt.Sprintf("min storage hours %v exceeds max storage hours %v", storage.MinStorageHours, storage.MaxStorageHours))
	}

	financing := conf.Financing
	if financing.StorageUnitCost < 0 {
		problems = append(problems, fmt.Sprintf("storage unit cost must be non-negative, got %v", financing.StorageUnitCost))
	}
	if financing.DirectCostFactor < 0 {
		problems = append(problems, fmt.Sprintf("direct cost factor must be non-negative, got %v", financing.DirectCostFactor))
	}
	if financing.IndirectCostFactor < 0 {
		problems = append(problems, fmt.Sprintf("indirect cost factor must be non-negative, got %v", financing.IndirectCostFactor))
	}
	if financing.LoanTermYears < 0 {
		problems = append(problems, fmt.Sprintf("loan term must be non-negative, got %d years", financing.LoanTermYears))
	}
	if financing.LoanRate < 0 {
		problems = append(problems, fmt.Sprintf("loan rate must be non-negative, got %v", financing.LoanRate))
	}
	if financing.AnnualLaborCost < 0 {
		problems = append(problems, fmt.Sprintf("annual labor cost must be non-negative, got %v", financing.AnnualLaborCost))
	}
	if financing.MaintenanceRate < 0 {
		problems = append(problems, fmt.Sprintf("maintenance rate must be non-negative, got %v", financing.MaintenanceRate))
	}
	if financing.Labor != nil {
		if financing.Labor.Overhead < 0 {
			problems = append(problems, fmt.Sprintf("labor overhead must be non-negative, got %v", financing.Labor.Overhead))
		}
		for _, position := range financing.Labor.Positions {
			if position.Count < 0 {
				problems = append(problems, fmt.Sprintf("labor position %q has negative count %d", position.Name, position.Count))
			}
			if position.Salary < 0 {
				problems = append(problems, fmt.Sprintf("labor position %q has negative salary %v", position.Name, position.Salary))
			}
		}
	}

	tax := conf.Tax
	if tax.TaxRate < 0 || tax.TaxRate > 1 {
		problems = append(problems, fmt.Sprintf("tax rate must be within [0, 1], got %v", tax.TaxRate))
	}
	if tax.DiscountRate <= -1 {
		problems = append(problems, fmt.Sprintf("discount rate must be greater than -1, got %v", tax.DiscountRate))
	}
	if len(tax.DepreciationRates) == 0 {
		problems = append(problems, "depreciation rate table must not be empty")
	}
	rateSum := 0.0
	for i, rate := range tax.DepreciationRates {
		if rate < 0 {
			problems = append(problems, fmt.Sprintf("depreciation rate %d must be non-negative, got %v", i, rate))
		}
		rateSum += rate
	}
	if rateSum > 1+constants.RateSumTolerance {
		problems = append(problems, fmt.Sprintf("depreciation rates must sum to at most 1, got %v", rateSum))
	}

	simulation := conf.Simulation
	if simulation.HorizonYears <= 0 {
		problems = append(problems, fmt.Sprintf("simulation horizon must be positive, got %d years", simulation.HorizonYears))
	}
	if simulation.Units <= 0 {
		problems = append(problems, fmt.Sprintf("simulated unit count must be positive, got %d", simulation.Units))
	}
	if simulation.Workers < 0 {
		problems = append(problems, fmt.Sprintf("worker count must be non-negative, got %d", simulation.Workers))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Warnings reports advisory conditions that do not block a simulation run.
func (conf *Configuration) Warnings() []string {
	var warnings []string

	if conf.Financing.MaintenanceRate > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"maintenanceRate %v is configured but the current cash-flow model does not apply it",
			conf.Financing.MaintenanceRate))
	}

	if !conf.Storage.Thermal && conf.Storage.HeatRecycling > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"heatRecycling %v has no effect because thermal mode is disabled",
			conf.Storage.HeatRecycling))
	}

	rateSum := 0.0
	for _, rate := range conf.Tax.DepreciationRates {
		rateSum += rate
	}
	if len(conf.Tax.DepreciationRates) > 0 && rateSum < 1-constants.RateSumTolerance {
		warnings = append(warnings, fmt.Sprintf(
			"depreciation rates sum to %v; the capital basis will not be fully recovered", rateSum))
	}

	if conf.Financing.LoanTermYears >= conf.Simulation.HorizonYears {
		warnings = append(warnings, fmt.Sprintf(
			"loan term of %d years runs through the entire %d-year horizon",
			conf.Financing.LoanTermYears, conf.Simulation.HorizonYears))
	}

	return warnings
}
