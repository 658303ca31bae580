package domain

import "strings"

// FilingType classifies a filing. Known variants cover the common EDGAR
// forms and the EDINET report families; anything else round-trips as an
// Other value carrying the source's own label.
type FilingType struct {
	value string
}

// Known filing types.
var (
	FilingType10K                 = FilingType{"10-K"}
	FilingType10Q                 = FilingType{"10-Q"}
	FilingType8K                  = FilingType{"8-K"}
	FilingTypeAnnualReport        = FilingType{"Annual Securities Report"}
	FilingTypeQuarterlyReport     = FilingType{"Quarterly Securities Report"}
	FilingTypeSemiAnnualReport    = FilingType{"Semi-Annual Securities Report"}
	FilingTypeExtraordinaryReport = FilingType{"Extraordinary Report"}
)

// OtherFilingType wraps a source-specific form label that has no
// dedicated variant, e.g. "10-K/A" or "S-1".
func OtherFilingType(label string) FilingType {
	return FilingType{label}
}

// ParseFilingType maps user input to a FilingType. Amendment forms such
// as "10-K/A" are deliberately not folded into their base type; they
// must be requested explicitly and parse as Other.
func ParseFilingType(s string) FilingType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "10-k", "10k":
		return FilingType10K
	case "10-q", "10q":
		return FilingType10Q
	case "8-k", "8k":
		return FilingType8K
	case "annual", "annual-report", "yuho":
		return FilingTypeAnnualReport
	case "quarterly", "quarterly-report":
		return FilingTypeQuarterlyReport
	case "semi-annual", "semi-annual-report":
		return FilingTypeSemiAnnualReport
	case "extraordinary", "extraordinary-report":
		return FilingTypeExtraordinaryReport
	default:
		return OtherFilingType(strings.ToUpper(strings.TrimSpace(s)))
	}
}

// String returns the display label, which is also the value stored in
// the catalog's filing_type column.
func (t FilingType) String() string {
	return t.value
}

// IsZero reports whether the filing type is unset.
func (t FilingType) IsZero() bool {
	return t.value == ""
}

// Matches reports whether a source form label satisfies this filing
// type. EDGAR form comparison is exact: requesting 10-K never matches
// 10-K/A.
func (t FilingType) Matches(form string) bool {
	return strings.EqualFold(t.value, strings.TrimSpace(form))
}
