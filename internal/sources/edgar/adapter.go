package edgar

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/fast10k/fast10k-cli/internal/adapters/driven/httpx"
	"github.com/fast10k/fast10k-cli/internal/core/domain"
	"github.com/fast10k/fast10k-cli/internal/core/ports/driven"
	"github.com/fast10k/fast10k-cli/internal/logger"
)

// Default EDGAR endpoints. The SEC's published access ceiling is
// 10 req/s; the shared rate limiter's default EDGAR spacing of 100 ms
// keeps requests at or below it.
const (
	defaultTickersURL      = "https://www.sec.gov/files/company_tickers.json"
	defaultSubmissionsBase = "https://data.sec.gov/submissions"
	defaultArchivesBase    = "https://www.sec.gov/Archives/edgar/data"
)

// Adapter implements driven.SourceAdapter for EDGAR.
type Adapter struct {
	client          *httpx.Client
	tickers         *tickerDirectory
	submissionsBase string
	archivesBase    string
}

var _ driven.SourceAdapter = (*Adapter)(nil)

// Option configures an Adapter.
type Option func(*Adapter)

// WithTickersURL overrides the registrant mapping endpoint (tests).
func WithTickersURL(u string) Option {
	return func(a *Adapter) { a.tickers = newTickerDirectory(a.client, u) }
}

// WithSubmissionsBase overrides the submissions endpoint (tests).
func WithSubmissionsBase(u string) Option {
	return func(a *Adapter) { a.submissionsBase = u }
}

// WithArchivesBase overrides the archives endpoint (tests).
func WithArchivesBase(u string) Option {
	return func(a *Adapter) { a.archivesBase = u }
}

// New creates the EDGAR adapter on the shared HTTP client.
func New(client *httpx.Client, opts ...Option) *Adapter {
	a := &Adapter{
		client:          client,
		submissionsBase: defaultSubmissionsBase,
		archivesBase:    defaultArchivesBase,
	}
	a.tickers = newTickerDirectory(client, defaultTickersURL)
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Source identifies the feed.
func (a *Adapter) Source() domain.Source {
	return domain.SourceEDGAR
}

// AllowedFormats returns EDGAR's format set (no PDF artifacts).
func (a *Adapter) AllowedFormats() []domain.Format {
	return domain.AllowedFormats(domain.SourceEDGAR)
}

// ResolveIssuer maps a ticker to its zero-padded CIK.
func (a *Adapter) ResolveIssuer(ctx context.Context, ticker string) (string, error) {
	cik, _, err := a.tickers.Resolve(ctx, ticker)
	return cik, err
}

// ListFilings enumerates the issuer's recent filings from the
// submissions feed, newest first. Filters run in-stream and the
// enumeration stops after filter.Limit survivors.
func (a *Adapter) ListFilings(ctx context.Context, cik string, filter domain.FilingFilter) (<-chan domain.Document, <-chan error) {
	docs := make(chan domain.Document)
	errs := make(chan error, 1)

	limit := filter.Limit
	if limit <= 0 {
		limit = domain.DefaultDownloadLimit
	}

	go func() {
		defer close(docs)
		defer close(errs)

		submissionsURL := fmt.Sprintf("%s/CIK%s.json", a.submissionsBase, cik)
		var submissions companySubmissions
		if err := a.client.GetJSON(ctx, httpx.BucketEDGAR, submissionsURL, nil, &submissions); err != nil {
			errs <- fmt.Errorf("fetching submissions for CIK %s: %w", cik, err)
			return
		}

		recent := &submissions.Filings.Recent
		logger.Debug("CIK %s: %d recent filings", cik, recent.len())

		ticker := ""
		if len(submissions.Tickers) > 0 {
			ticker = strings.ToUpper(submissions.Tickers[0])
		}

		survivors := 0
		for i := 0; i < recent.len() && survivors < limit; i++ {
			entry := recent.entry(i)
			filingDate, err := time.Parse(domain.DateLayout, entry.FilingDate)
			if err != nil {
				logger.Warn("CIK %s: skipping filing %s with bad date %q", cik, entry.AccessionNumber, entry.FilingDate)
				continue
			}
			if !filter.Accepts(entry.Form, filingDate) {
				continue
			}

			doc := a.document(cik, ticker, submissions.Name, entry, filingDate)
			select {
			case docs <- doc:
				survivors++
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
	}()

	return docs, errs
}

// document maps one submissions entry onto the catalog model. The id
// is derived from (CIK, accession number, filename) so re-enumeration
// is stable.
func (a *Adapter) document(cik, ticker, company string, entry filingEntry, filingDate time.Time) domain.Document {
	accNoDashes := strings.ReplaceAll(entry.AccessionNumber, "-", "")
	return domain.Document{
		ID:          fmt.Sprintf("%s-%s-%s", cik, accNoDashes, entry.PrimaryDocument),
		Ticker:      ticker,
		CompanyName: company,
		FilingType:  formToFilingType(entry.Form),
		Source:      domain.SourceEDGAR,
		FilingDate:  filingDate,
		Metadata: map[string]string{
			"cik":                     cik,
			"accession_number":        entry.AccessionNumber,
			"form":                    entry.Form,
			"report_date":             entry.ReportDate,
			"primary_document":        entry.PrimaryDocument,
			"primary_doc_description": entry.PrimaryDocDescription,
		},
	}
}

// formToFilingType maps an EDGAR form label onto a filing type.
// Amendments and everything else stay as their own labels.
func formToFilingType(form string) domain.FilingType {
	switch form {
	case "10-K":
		return domain.FilingType10K
	case "10-Q":
		return domain.FilingType10Q
	case "8-K":
		return domain.FilingType8K
	default:
		return domain.OtherFilingType(form)
	}
}

// FetchDocument resolves a (document, format) pair to archive URLs.
// Archive paths use the numeric CIK without leading zeros and the
// accession number without dashes.
func (a *Adapter) FetchDocument(ctx context.Context, doc *domain.Document, format domain.Format) (*domain.PayloadLocator, error) {
	if !format.AllowedIn(domain.SourceEDGAR) {
		return nil, fmt.Errorf("%w: EDGAR cannot serve %s", domain.ErrUnsupportedFormat, format)
	}

	accession := doc.Metadata["accession_number"]
	primaryDoc := doc.Metadata["primary_document"]
	cik := strings.TrimLeft(doc.Metadata["cik"], "0")
	if accession == "" || cik == "" {
		return nil, fmt.Errorf("%w: document %s lacks accession metadata", domain.ErrInvalidInput, doc.ID)
	}

	base := fmt.Sprintf("%s/%s/%s", a.archivesBase, cik, strings.ReplaceAll(accession, "-", ""))

	switch format {
	case domain.FormatTxt:
		// The full-submission text file is the accession number's
		// dashed sibling.
		return &domain.PayloadLocator{
			URLs:     []string{fmt.Sprintf("%s/%s.txt", base, accession)},
			Filename: accession + ".txt",
			Bucket:   httpx.BucketEDGAR,
		}, nil

	case domain.FormatHTML, domain.FormatIXBRL:
		if primaryDoc == "" {
			return nil, fmt.Errorf("%w: document %s has no primary document", domain.ErrInvalidInput, doc.ID)
		}
		return &domain.PayloadLocator{
			URLs:     []string{fmt.Sprintf("%s/%s", base, primaryDoc)},
			Filename: primaryDoc,
			Bucket:   httpx.BucketEDGAR,
		}, nil

	case domain.FormatXBRL:
		if primaryDoc == "" {
			return nil, fmt.Errorf("%w: document %s has no primary document", domain.ErrInvalidInput, doc.ID)
		}
		// The XBRL instance is the predictable _htm.xml sibling of the
		// primary document.
		instance := strings.TrimSuffix(primaryDoc, ".htm") + "_htm.xml"
		return &domain.PayloadLocator{
			URLs:     []string{fmt.Sprintf("%s/%s", base, instance)},
			Filename: instance,
			Bucket:   httpx.BucketEDGAR,
		}, nil

	case domain.FormatComplete:
		urls, err := a.enumerateParts(ctx, base, accession)
		if err != nil {
			return nil, err
		}
		return &domain.PayloadLocator{
			URLs:     urls,
			Filename: accession + ".zip",
			Bucket:   httpx.BucketEDGAR,
		}, nil

	default:
		return nil, fmt.Errorf("%w: EDGAR cannot serve %s", domain.ErrUnsupportedFormat, format)
	}
}

// enumerateParts follows the filing's index page and collects every
// listed artifact URL.
func (a *Adapter) enumerateParts(ctx context.Context, base, accession string) ([]string, error) {
	indexURL := fmt.Sprintf("%s/%s-index.htm", base, accession)
	resp, err := a.client.Get(ctx, httpx.BucketEDGAR, indexURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching filing index: %w", err)
	}
	defer resp.Body.Close()

	page, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing filing index: %w", err)
	}

	var urls []string
	seen := make(map[string]bool)
	page.Find("table a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		name := path.Base(href)
		if name == "" || name == "." || seen[name] || strings.HasSuffix(name, "-index.htm") {
			return
		}
		seen[name] = true
		urls = append(urls, fmt.Sprintf("%s/%s", base, name))
	})

	if len(urls) == 0 {
		return nil, fmt.Errorf("filing index %s lists no artifacts", indexURL)
	}
	return urls, nil
}
