package domain

import "time"

// Query filters a catalog search. Every field is optional; an empty
// query matches everything. Relaxing any filter only grows the result
// set.
type Query struct {
	// Ticker matches the document ticker exactly.
	Ticker string

	// CompanyName matches as a substring of company_name.
	CompanyName string

	// FilingType matches the filing_type column exactly.
	FilingType FilingType

	// Source restricts to one feed.
	Source Source

	// DateFrom and DateTo bound filing_date inclusively.
	// A zero time leaves the bound open.
	DateFrom time.Time
	DateTo   time.Time

	// TextQuery matches company_name or content_preview as a
	// substring. Reserved for a future full-text path.
	TextQuery string
}

// DownloadRequest describes one invocation of the download pipeline.
type DownloadRequest struct {
	Source     Source
	Ticker     string
	FilingType FilingType
	DateFrom   time.Time
	DateTo     time.Time
	Limit      int
	Format     Format
	OutputRoot string
}

// FilingFilter restricts a source enumeration in-stream.
type FilingFilter struct {
	FilingType FilingType
	DateFrom   time.Time
	DateTo     time.Time

	// Limit stops the enumeration after this many survivors.
	// Zero means DefaultDownloadLimit.
	Limit int
}

// DefaultDownloadLimit is the number of filings selected when a
// request does not say otherwise.
const DefaultDownloadLimit = 5

// Accepts reports whether a filing with the given form label and date
// passes the filter. Form comparison is exact (see FilingType.Matches).
func (f FilingFilter) Accepts(form string, date time.Time) bool {
	if !f.FilingType.IsZero() && !f.FilingType.Matches(form) {
		return false
	}
	if !f.DateFrom.IsZero() && date.Before(f.DateFrom) {
		return false
	}
	if !f.DateTo.IsZero() && date.After(f.DateTo) {
		return false
	}
	return true
}

// PayloadLocator names the concrete remote artifacts for one
// (document, format) pair, as resolved by a source adapter.
type PayloadLocator struct {
	// URLs are the payload URLs. A single entry for every format
	// except complete, which may enumerate the filing's parts.
	URLs []string

	// Filename is the adapter's suggested on-disk name for the
	// primary artifact.
	Filename string

	// Header carries request headers the fetch must send
	// (e.g. the EDINET subscription key).
	Header map[string]string

	// Bucket is the rate-limit bucket the fetch must pass through.
	Bucket string
}
