package services

import (
	"context"

	"github.com/fast10k/fast10k-cli/internal/core/domain"
	"github.com/fast10k/fast10k-cli/internal/core/ports/driven"
	"github.com/fast10k/fast10k-cli/internal/core/ports/driving"
)

// Search queries the catalog. Day-indexed sources self-heal first:
// a stale or empty EDINET index is updated before the query runs.
type Search struct {
	store   driven.DocumentStore
	indexer driving.Indexer
}

var _ driving.SearchService = (*Search)(nil)

// NewSearch creates the search service. indexer may be nil; searches
// then run against the catalog as-is.
func NewSearch(store driven.DocumentStore, indexer driving.Indexer) *Search {
	return &Search{store: store, indexer: indexer}
}

// Search returns catalog rows matching the query, newest first.
func (s *Search) Search(ctx context.Context, q domain.Query, limit int) ([]domain.Document, error) {
	if q.Source == domain.SourceEDINET && s.indexer != nil {
		if err := s.indexer.EnsureFresh(ctx); err != nil {
			return nil, err
		}
	}
	if limit <= 0 {
		limit = 10
	}

	// Searches quote tickers in the market form.
	if q.Ticker != "" && q.Source != "" {
		q.Ticker = q.Source.NormalizeTicker(q.Ticker)
	}
	return s.store.FindDocuments(ctx, q, limit)
}
