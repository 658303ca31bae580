package domain

import "time"

// Document represents one filing's metadata in the catalog.
// It is the canonical representation across all sources.
type Document struct {
	// ID is the stable identifier within the source.
	// For EDGAR it is derived from (CIK, accession number, filename);
	// for EDINET it is the 8-character docID.
	ID string

	// Ticker is the market symbol, normalised per source
	// (EDGAR: uppercase letters; EDINET: 4-digit securities code).
	Ticker string

	// CompanyName is the issuer name as reported by the source.
	CompanyName string

	// CompanyNameEN is the English issuer name, when known.
	CompanyNameEN string

	// FilingType classifies the filing.
	FilingType FilingType

	// Source identifies the regulatory feed that produced this document.
	Source Source

	// FilingDate is the calendar date of submission in the source's
	// jurisdiction. Only the date component is meaningful.
	FilingDate time.Time

	// Format is the serialization the payload was (or will be) fetched in.
	Format Format

	// ContentPath is the filesystem path of the materialised payload.
	// Empty until the document has been downloaded.
	ContentPath string

	// Metadata preserves the source-native record verbatim for
	// forensic reconstruction.
	Metadata map[string]string

	// ContentPreview is a short extracted snippet, when available.
	ContentPreview string
}

// Key returns the catalog primary key (source, id).
func (d *Document) Key() (Source, string) {
	return d.Source, d.ID
}

// DateString renders the filing date in the catalog's wire format.
func (d *Document) DateString() string {
	return d.FilingDate.Format(DateLayout)
}

// DateLayout is the wire format for all calendar dates in the catalog.
const DateLayout = "2006-01-02"

// CatalogStats summarises one source's slice of the catalog.
type CatalogStats struct {
	// Documents is the number of rows for the source.
	Documents int64

	// MinDate and MaxDate bound filing_date; zero when the
	// catalog holds no rows for the source.
	MinDate time.Time
	MaxDate time.Time
}

// Empty reports whether the catalog holds no rows for the source.
func (s *CatalogStats) Empty() bool {
	return s.Documents == 0
}
