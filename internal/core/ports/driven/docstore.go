package driven

import (
	"context"

	"github.com/fast10k/fast10k-cli/internal/core/domain"
)

// DocumentStore is the authoritative catalog of filing metadata.
type DocumentStore interface {
	// UpsertDocument inserts the document, or merges it into the
	// existing (source, id) row: metadata is merged key-wise with the
	// incoming record winning, and a populated content_path or
	// content_preview is never overwritten with an empty one.
	UpsertDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument fetches one row by primary key.
	// Returns domain.ErrNotFound when absent.
	GetDocument(ctx context.Context, source domain.Source, id string) (*domain.Document, error)

	// FindDocuments returns rows matching the query, newest first,
	// truncated to limit.
	FindDocuments(ctx context.Context, q domain.Query, limit int) ([]domain.Document, error)

	// Stats returns row count and filing_date bounds for a source.
	Stats(ctx context.Context, source domain.Source) (*domain.CatalogStats, error)

	// Clear purges the documents table for a source. The issuer
	// directory is untouched.
	Clear(ctx context.Context, source domain.Source) error
}

// IssuerStore is the EDINET issuer directory.
type IssuerStore interface {
	// LoadIssuers replaces the directory in one transaction
	// (truncate + insert). A partial load is never observed.
	LoadIssuers(ctx context.Context, issuers []domain.Issuer) (int, error)

	// LookupIssuer resolves a ticker to at most one issuer, trying the
	// keys from domain.TickerCandidates in order.
	// Returns domain.ErrUnknownIssuer when nothing matches.
	LookupIssuer(ctx context.Context, ticker string) (*domain.Issuer, error)

	// GetIssuer fetches one directory row by EDINET code.
	// Returns domain.ErrNotFound when absent.
	GetIssuer(ctx context.Context, edinetCode string) (*domain.Issuer, error)

	// SearchIssuers matches a free-form query against codes and names.
	SearchIssuers(ctx context.Context, query string, limit int) ([]domain.Issuer, error)

	// CountIssuers returns the directory size.
	CountIssuers(ctx context.Context) (int64, error)
}
