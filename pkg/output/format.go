// Package output provides utilities for formatting and displaying
// simulation results.
package output

import (
	"fmt"
	"strings"

	"github.com/iwvelando/storage-npv/internal/simulation"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable summary.
func PrettyFormat(result *simulation.FleetResult) {
	p := message.NewPrinter(language.English)
	fmt.Printf("--- NPV distribution over %d units, %d-year horizon ---\n",
		result.Units, result.HorizonYears)
	_, _ = p.Printf("Capital cost (FCI): $%.2f\n", result.CapitalCost)
	_, _ = p.Printf("Median:             $%.2f\n", result.Median)
	_, _ = p.Printf("10th percentile:    $%.2f\n", result.TenthPercentile)
	_, _ = p.Printf("90th percentile:    $%.2f\n", result.NinetiethPercentile)
	fmt.Printf("Seed: %d\n", result.Seed)
}

// CsvFormat outputs in comma-separated value format, one row per unit.
func CsvFormat(result *simulation.FleetResult) {
	fmt.Print(CsvString(result))
}

// CsvString renders the per-unit NPV distribution as CSV.
func CsvString(result *simulation.FleetResult) string {
	var builder strings.Builder
	builder.WriteString(`"unit","npv"` + "\n")
	for unit, npv := range result.NPVs {
		builder.WriteString(fmt.Sprintf(`"%d","%.2f"`+"\n", unit, npv))
	}
	return builder.String()
}
