package edinet

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fast10k/fast10k-cli/internal/adapters/driven/httpx"
	"github.com/fast10k/fast10k-cli/internal/core/domain"
	"github.com/fast10k/fast10k-cli/internal/core/ports/driven"
	"github.com/fast10k/fast10k-cli/internal/logger"
)

// Default EDINET v2 API endpoints.
const (
	defaultBaseURL  = "https://api.edinet-fsa.go.jp/api/v2"
	apiKeyHeader    = "Ocp-Apim-Subscription-Key"
	manifestDocType = "2" // corporate reports with full metadata
)

// Artifact kind selector of the per-docID download endpoint.
const (
	artifactXBRL     = "1"
	artifactPDF      = "2"
	artifactComplete = "5"
)

// Adapter implements driven.SourceAdapter and driven.DayIndexedSource
// for EDINET. Issuer resolution is a pure store lookup against the
// issuer directory; no network fallback exists.
type Adapter struct {
	client  *httpx.Client
	store   driven.DocumentStore
	issuers driven.IssuerStore
	apiKey  string
	baseURL string
}

var (
	_ driven.SourceAdapter    = (*Adapter)(nil)
	_ driven.DayIndexedSource = (*Adapter)(nil)
)

// Option configures an Adapter.
type Option func(*Adapter)

// WithBaseURL overrides the API endpoint (tests).
func WithBaseURL(u string) Option {
	return func(a *Adapter) { a.baseURL = u }
}

// New creates the EDINET adapter. apiKey may be empty: static search
// still works, but index and download paths fail with ErrAuthRequired.
func New(client *httpx.Client, store driven.DocumentStore, issuers driven.IssuerStore, apiKey string, opts ...Option) *Adapter {
	a := &Adapter{
		client:  client,
		store:   store,
		issuers: issuers,
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Source identifies the feed.
func (a *Adapter) Source() domain.Source {
	return domain.SourceEDINET
}

// AllowedFormats returns EDINET's format set (no raw HTML or text).
func (a *Adapter) AllowedFormats() []domain.Format {
	return domain.AllowedFormats(domain.SourceEDINET)
}

// requireKey guards every network path. A missing credential is fatal
// to the operation before any request is made.
func (a *Adapter) requireKey() error {
	if a.apiKey == "" {
		return fmt.Errorf("%w: EDINET_API_KEY is not set", domain.ErrAuthRequired)
	}
	return nil
}

// ResolveIssuer maps a securities code to the issuer's EDINET code via
// the directory. Both the 4-digit market form and EDINET's 5-digit
// spelling resolve.
func (a *Adapter) ResolveIssuer(ctx context.Context, ticker string) (string, error) {
	issuer, err := a.issuers.LookupIssuer(ctx, ticker)
	if err != nil {
		return "", err
	}
	return issuer.EdinetCode, nil
}

// ListFilings enumerates an issuer's filings from the local catalog.
// EDINET has no per-issuer endpoint; the indexer walks the daily
// manifests and this query runs against the indexed result.
func (a *Adapter) ListFilings(ctx context.Context, identity string, filter domain.FilingFilter) (<-chan domain.Document, <-chan error) {
	docs := make(chan domain.Document)
	errs := make(chan error, 1)

	limit := filter.Limit
	if limit <= 0 {
		limit = domain.DefaultDownloadLimit
	}

	go func() {
		defer close(docs)
		defer close(errs)

		// identity may be an EDINET code (from ResolveIssuer) or a
		// ticker; the catalog is keyed by 4-digit ticker.
		ticker := identity
		if issuer, err := a.issuers.GetIssuer(ctx, identity); err == nil {
			ticker = domain.SourceEDINET.NormalizeTicker(issuer.SecuritiesCode)
		} else if issuer, err := a.issuers.LookupIssuer(ctx, identity); err == nil {
			ticker = domain.SourceEDINET.NormalizeTicker(issuer.SecuritiesCode)
		}

		found, err := a.store.FindDocuments(ctx, domain.Query{
			Ticker:     ticker,
			Source:     domain.SourceEDINET,
			FilingType: filter.FilingType,
			DateFrom:   filter.DateFrom,
			DateTo:     filter.DateTo,
		}, limit)
		if err != nil {
			errs <- err
			return
		}

		for i := range found {
			select {
			case docs <- found[i]:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
	}()

	return docs, errs
}

// FilingsForDate fetches the daily manifest and maps every filing onto
// the catalog model. Tickers resolve through the issuer directory from
// the manifest's secCode; filings without a docID are skipped.
func (a *Adapter) FilingsForDate(ctx context.Context, date time.Time) ([]domain.Document, error) {
	if err := a.requireKey(); err != nil {
		return nil, err
	}

	day := date.Format(domain.DateLayout)
	url := fmt.Sprintf("%s/documents.json?date=%s&type=%s", a.baseURL, day, manifestDocType)

	var manifest manifestResponse
	header := map[string]string{apiKeyHeader: a.apiKey}
	if err := a.client.GetJSON(ctx, httpx.BucketEDINET, url, header, &manifest); err != nil {
		if httpx.IsAuthStatus(err) {
			return nil, fmt.Errorf("%w: EDINET rejected the API key", domain.ErrAuthRequired)
		}
		return nil, fmt.Errorf("fetching manifest for %s: %w", day, err)
	}

	docs := make([]domain.Document, 0, len(manifest.Results))
	for i := range manifest.Results {
		entry := &manifest.Results[i]
		if entry.DocID == "" || entry.FilerName == "" {
			continue
		}
		docs = append(docs, a.document(ctx, entry, date))
	}
	logger.Debug("manifest %s: %d filings, %d indexed", day, len(manifest.Results), len(docs))
	return docs, nil
}

// document maps one manifest entry onto the catalog model, preserving
// the raw record in Metadata.
func (a *Adapter) document(ctx context.Context, entry *ManifestEntry, date time.Time) domain.Document {
	ticker, nameEN := a.resolveTicker(ctx, entry.SecCode)
	return domain.Document{
		ID:            entry.DocID,
		Ticker:        ticker,
		CompanyName:   entry.FilerName,
		CompanyNameEN: nameEN,
		FilingType:    FormCodeToFilingType(entry.FormCode),
		Source:        domain.SourceEDINET,
		FilingDate:    date,
		Format:        entryFormat(entry),
		Metadata:      entry.rawMetadata(),
	}
}

// resolveTicker maps a manifest secCode onto the 4-digit market ticker
// via the issuer directory, falling back to stripping the directory's
// trailing "0" when the code is not in the directory.
func (a *Adapter) resolveTicker(ctx context.Context, secCode string) (ticker, nameEN string) {
	if secCode == "" {
		return "", ""
	}
	if issuer, err := a.issuers.LookupIssuer(ctx, secCode); err == nil {
		return domain.SourceEDINET.NormalizeTicker(issuer.SecuritiesCode), issuer.NameEN
	}
	return domain.SourceEDINET.NormalizeTicker(secCode), ""
}

// entryFormat picks the richest format the filing advertises.
func entryFormat(entry *ManifestEntry) domain.Format {
	hasXBRL := entry.XbrlFlag == "1"
	hasPDF := entry.PdfFlag == "1"
	switch {
	case hasXBRL && hasPDF:
		return domain.FormatComplete
	case hasXBRL:
		return domain.FormatXBRL
	case hasPDF:
		return domain.FormatPDF
	default:
		return domain.FormatComplete
	}
}

// FormCodeToFilingType maps an EDINET form code onto a filing type.
// The families: 030xxx annual, 043xxx quarterly, 050xxx semi-annual,
// 120xxx extraordinary.
func FormCodeToFilingType(formCode string) domain.FilingType {
	switch {
	case formCode == "":
		return domain.OtherFilingType("EDINET Form Unknown")
	case strings.HasPrefix(formCode, "030"):
		return domain.FilingTypeAnnualReport
	case strings.HasPrefix(formCode, "043"):
		return domain.FilingTypeQuarterlyReport
	case strings.HasPrefix(formCode, "050"):
		return domain.FilingTypeSemiAnnualReport
	case strings.HasPrefix(formCode, "120"):
		return domain.FilingTypeExtraordinaryReport
	default:
		return domain.OtherFilingType("EDINET Form " + formCode)
	}
}

// FetchDocument resolves a (document, format) pair to the per-docID
// download endpoint. EDINET serves zip (xbrl, complete) and pdf only.
func (a *Adapter) FetchDocument(_ context.Context, doc *domain.Document, format domain.Format) (*domain.PayloadLocator, error) {
	if err := a.requireKey(); err != nil {
		return nil, err
	}

	var kind string
	switch format {
	case domain.FormatXBRL:
		kind = artifactXBRL
	case domain.FormatPDF:
		kind = artifactPDF
	case domain.FormatComplete:
		kind = artifactComplete
	default:
		return nil, fmt.Errorf("%w: EDINET cannot serve %s", domain.ErrUnsupportedFormat, format)
	}

	return &domain.PayloadLocator{
		URLs:     []string{fmt.Sprintf("%s/documents/%s?type=%s", a.baseURL, doc.ID, kind)},
		Filename: doc.ID + "." + format.Ext(),
		Header:   map[string]string{apiKeyHeader: a.apiKey},
		Bucket:   httpx.BucketEDINETDownload,
	}, nil
}
