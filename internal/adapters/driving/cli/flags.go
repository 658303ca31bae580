package cli

import (
	"fmt"
	"time"

	"github.com/fast10k/fast10k-cli/internal/core/domain"
)

// parseDate parses an optional YYYY-MM-DD flag; empty means unset.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q (expected YYYY-MM-DD)", domain.ErrInvalidInput, s)
	}
	return d, nil
}

// parseOptionalFilingType parses an optional filing-type flag.
func parseOptionalFilingType(s string) domain.FilingType {
	if s == "" {
		return domain.FilingType{}
	}
	return domain.ParseFilingType(s)
}
