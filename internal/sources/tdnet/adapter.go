// Package tdnet reserves the adapter seam for the TSE's TDnet service.
// Every operation reports domain.ErrNotImplemented; the package exists
// so source parsing and dispatch stay closed over the full source set.
package tdnet

import (
	"context"

	"github.com/fast10k/fast10k-cli/internal/core/domain"
	"github.com/fast10k/fast10k-cli/internal/core/ports/driven"
)

// Adapter is the reserved TDnet stub.
type Adapter struct{}

var _ driven.SourceAdapter = (*Adapter)(nil)

// New creates the stub adapter.
func New() *Adapter {
	return &Adapter{}
}

// Source identifies the feed.
func (a *Adapter) Source() domain.Source {
	return domain.SourceTDNet
}

// AllowedFormats returns nil; the source serves nothing yet.
func (a *Adapter) AllowedFormats() []domain.Format {
	return nil
}

// ResolveIssuer reports the seam as reserved.
func (a *Adapter) ResolveIssuer(context.Context, string) (string, error) {
	return "", domain.ErrNotImplemented
}

// ListFilings reports the seam as reserved.
func (a *Adapter) ListFilings(context.Context, string, domain.FilingFilter) (<-chan domain.Document, <-chan error) {
	docs := make(chan domain.Document)
	errs := make(chan error, 1)
	errs <- domain.ErrNotImplemented
	close(docs)
	close(errs)
	return docs, errs
}

// FetchDocument reports the seam as reserved.
func (a *Adapter) FetchDocument(context.Context, *domain.Document, domain.Format) (*domain.PayloadLocator, error) {
	return nil, domain.ErrNotImplemented
}
