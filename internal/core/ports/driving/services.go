package driving

import (
	"context"
	"time"

	"github.com/fast10k/fast10k-cli/internal/core/domain"
)

// Indexer reconciles the remote day-indexed feed into the catalog.
type Indexer interface {
	// Stats returns row count and date bounds of the indexed slice.
	Stats(ctx context.Context) (*domain.CatalogStats, error)

	// Update catches up from the most recent indexed date to today.
	// Returns the number of documents written.
	Update(ctx context.Context) (int, error)

	// Build indexes the inclusive date range, overwriting on conflict.
	Build(ctx context.Context, from, to time.Time) (int, error)

	// Clear purges the indexed documents. Issuers are untouched.
	Clear(ctx context.Context) error

	// EnsureFresh runs Update when the index is empty or older than
	// the configured staleness threshold. Search paths call this
	// transparently before querying.
	EnsureFresh(ctx context.Context) error
}

// Downloader runs the search-and-download pipeline.
type Downloader interface {
	// Download resolves the request, fetches up to Limit payloads and
	// materialises them under the deterministic layout. Returns the
	// number of artifacts written.
	Download(ctx context.Context, req domain.DownloadRequest) (int, error)
}

// SearchService queries the catalog, self-healing the index first for
// day-indexed sources.
type SearchService interface {
	Search(ctx context.Context, q domain.Query, limit int) ([]domain.Document, error)
}
