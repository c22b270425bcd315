// Package constants provides shared constants for the storage-npv application.
package constants

// Simulation constants
const (
	// DaysPerYear is the number of simulated arbitrage days per year
	DaysPerYear = 365

	// PaymentsPerYear is the number of loan payments made per year
	PaymentsPerYear = 12
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML scenarios (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)

// Numeric tolerance constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// RateSumTolerance is the tolerance applied when checking that a
	// depreciation rate table sums to at most 1
	RateSumTolerance = 1e-9
)

// Reported percentiles
const (
	// MedianPercentile is the percentile reported as the distribution median
	MedianPercentile = 50.0

	// LowPercentile is the pessimistic percentile reported for NPV distributions
	LowPercentile = 10.0

	// HighPercentile is the optimistic percentile reported for NPV distributions
	HighPercentile = 90.0
)
