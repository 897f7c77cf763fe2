// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/iwvelando/moneywiki/pkg/constants"
)

// OutputFormats lists the formats accepted by ValidateOutputFormat.
var OutputFormats = []string{constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON}

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if !slices.Contains(OutputFormats, format) {
		return fmt.Errorf("expected output format of %s, got %q",
			strings.Join(OutputFormats, ", "), format)
	}
	return nil
}
