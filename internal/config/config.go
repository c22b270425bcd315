// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/storage-npv/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for storage-npv.
type Configuration struct {
	Storage    StorageConfig
	Financing  FinancingConfig
	Tax        TaxConfig
	Simulation SimulationConfig
	Logging    LoggingConfig `yaml:"logging,omitempty"`
	Output     OutputConfig  `yaml:"output,omitempty"`
}

// StorageConfig holds the physical and market parameters of the storage unit.
type StorageConfig struct {
	Capacity        float64 // kWh
	Efficiency      float64 // round-trip conversion efficiency, 0-1
	HourlyLossRate  float64 // fraction of capacity lost per hour stored
	Thermal         bool
	HeatRecycling   float64 // thermal only, fraction of lost heat recycled, 0-1
	MinPeakPrice    float64 // $/kWh
	MaxPeakPrice    float64
	MinTroughPrice  float64
	MaxTroughPrice  float64
	MinStorageHours float64
	MaxStorageHours float64
}

// FinancingConfig holds the capital cost and loan parameters.
type FinancingConfig struct {
	StorageUnitCost    float64 // $/kWh installed
	DirectCostFactor   float64 // land, buildings, site development, auxiliaries
	IndirectCostFactor float64 // prorated expenses, construction and field fees, contingency
	LoanTermYears      int
	LoanRate           float64 // annual fraction, e.g. 0.08
	AnnualLaborCost    float64
	Labor              *LaborConfig // optional roster; overrides AnnualLaborCost
	MaintenanceRate    float64      // fraction of capital cost; accepted but not applied
}

// LaborConfig derives the annual labor cost from a worker roster.
type LaborConfig struct {
	Overhead  float64 // overhead and benefits as a fraction of salaries
	Positions []Position
}

// Position is one staffed role in the labor roster.
type Position struct {
	Name   string
	Count  int
	Salary float64
}

// TaxConfig holds the tax and discounting parameters.
type TaxConfig struct {
	TaxRate           float64   // flat corporate rate, 0-1
	DiscountRate      float64   // internal rate of return used for present value
	DepreciationRates []float64 // accelerated schedule, fraction of capital cost per year
}

// SimulationConfig holds the Monte Carlo run parameters.
type SimulationConfig struct {
	HorizonYears int
	Units        int
	Seed         int64 // 0 means derive from current time
	Workers      int   // 0 means runtime.NumCPU()
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from an
// arbitrary reader; used by the HTTP upload path.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// CapitalCost returns the fixed capital investment for the configured unit.
// The total installed cost is marked up by the direct (land, buildings, site
// development, auxiliaries) and indirect (prorated expenses, construction
// fees, contingency) cost factors; the directly-marked-up cost is counted
// once more as the working capital contribution.
func (conf *Configuration) CapitalCost() float64 {
	installed := conf.Financing.StorageUnitCost * conf.Storage.Capacity
	direct := installed * (1 + conf.Financing.DirectCostFactor)
	return direct*(1+conf.Financing.IndirectCostFactor) + direct
}

// LaborCost returns the fixed annual labor cost: the roster-derived figure
// when a roster is configured, otherwise the flat annual amount.
func (conf *Configuration) LaborCost() float64 {
	if conf.Financing.Labor == nil {
		return conf.Financing.AnnualLaborCost
	}

	salaries := 0.0
	for _, position := range conf.Financing.Labor.Positions {
		salaries += float64(position.Count) * position.Salary
	}
	return salaries * (1 + conf.Financing.Labor.Overhead)
}

// PaymentsPerYear is fixed at monthly compounding for the modeled loan.
func (conf *Configuration) PaymentsPerYear() int {
	return constants.PaymentsPerYear
}
