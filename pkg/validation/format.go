// Package validation provides input validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/storage-npv/pkg/constants"
)

// ValidateOutputFormat checks that the requested output format is supported.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q; expected %q or %q",
			format, constants.OutputFormatPretty, constants.OutputFormatCSV)
	}
}
