package driven

import (
	"context"
	"time"

	"github.com/fast10k/fast10k-cli/internal/core/domain"
)

// SourceAdapter is the contract every regulatory feed implements.
// It is the only polymorphic seam in the system; the set of
// implementations is closed over {EDGAR, EDINET, TDNet}.
type SourceAdapter interface {
	// Source returns the feed this adapter speaks to.
	Source() domain.Source

	// AllowedFormats returns the formats this source can serve.
	AllowedFormats() []domain.Format

	// ResolveIssuer maps a market ticker to the source's canonical
	// issuer identity (CIK for EDGAR, EDINET code for EDINET).
	// Returns domain.ErrUnknownIssuer when the ticker is unknown.
	ResolveIssuer(ctx context.Context, ticker string) (string, error)

	// ListFilings enumerates the issuer's filings lazily, post-filter,
	// newest first, stopping after filter.Limit survivors. The
	// enumeration is finite and non-restartable. Errors arrive on the
	// second channel; both channels close when the enumeration ends.
	ListFilings(ctx context.Context, identity string, filter domain.FilingFilter) (<-chan domain.Document, <-chan error)

	// FetchDocument resolves a (document, format) pair to the concrete
	// remote artifacts. It performs no payload transfer itself.
	FetchDocument(ctx context.Context, doc *domain.Document, format domain.Format) (*domain.PayloadLocator, error)
}

// DayIndexedSource is implemented by feeds that publish a per-day
// manifest of all filings (EDINET). The indexer walks dates through
// this port; per-issuer enumeration does not exist upstream.
type DayIndexedSource interface {
	// FilingsForDate returns every filing submitted on the given
	// calendar date, mapped to catalog documents with the raw manifest
	// record preserved in Metadata.
	FilingsForDate(ctx context.Context, date time.Time) ([]domain.Document, error)
}
