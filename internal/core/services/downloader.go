package services

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fast10k/fast10k-cli/internal/adapters/driven/httpx"
	"github.com/fast10k/fast10k-cli/internal/core/domain"
	"github.com/fast10k/fast10k-cli/internal/core/ports/driven"
	"github.com/fast10k/fast10k-cli/internal/core/ports/driving"
	"github.com/fast10k/fast10k-cli/internal/logger"
)

// maxConcurrentFetches bounds in-flight payload fetches across all
// pipelines. The per-source rate limiter is the real throughput gate;
// more parallelism buys nothing against the feeds' ceilings.
const maxConcurrentFetches = 8

// Downloader is the search-and-download pipeline: resolve the issuer,
// select candidates, fetch payloads and materialise them under the
// deterministic layout.
type Downloader struct {
	client   *httpx.Client
	store    driven.DocumentStore
	adapters map[domain.Source]driven.SourceAdapter
	indexer  driving.Indexer
	timeout  time.Duration
	sem      chan struct{}
}

var _ driving.Downloader = (*Downloader)(nil)

// NewDownloader creates the pipeline. indexer may be nil when no
// day-indexed source is configured; the EDINET path then skips the
// freshness protocol.
func NewDownloader(
	client *httpx.Client,
	store driven.DocumentStore,
	adapters map[domain.Source]driven.SourceAdapter,
	indexer driving.Indexer,
	timeout time.Duration,
) *Downloader {
	return &Downloader{
		client:   client,
		store:    store,
		adapters: adapters,
		indexer:  indexer,
		timeout:  timeout,
		sem:      make(chan struct{}, maxConcurrentFetches),
	}
}

// Download runs the pipeline and returns the number of artifacts
// written.
func (d *Downloader) Download(ctx context.Context, req domain.DownloadRequest) (int, error) {
	adapter, ok := d.adapters[req.Source]
	if !ok {
		return 0, fmt.Errorf("%w: no adapter for source %s", domain.ErrInvalidInput, req.Source)
	}
	if !req.Format.AllowedIn(req.Source) {
		return 0, fmt.Errorf("%w: %s cannot serve %s (allowed: %v)",
			domain.ErrUnsupportedFormat, req.Source, req.Format, adapter.AllowedFormats())
	}

	limit := req.Limit
	if limit <= 0 {
		limit = domain.DefaultDownloadLimit
	}

	// The pipeline's total deadline scales with the requested volume.
	ctx, cancel := context.WithTimeout(ctx, time.Duration(limit)*d.timeout*2)
	defer cancel()

	ticker := req.Source.NormalizeTicker(req.Ticker)
	identity, err := adapter.ResolveIssuer(ctx, ticker)
	if err != nil {
		return 0, err
	}
	logger.Debug("resolved %s to %s on %s", ticker, identity, req.Source)

	// Day-indexed sources answer from the catalog; make sure it is
	// current before selecting candidates.
	if req.Source == domain.SourceEDINET && d.indexer != nil {
		if err := d.indexer.EnsureFresh(ctx); err != nil {
			return 0, err
		}
	}

	docs, errs := adapter.ListFilings(ctx, identity, domain.FilingFilter{
		FilingType: req.FilingType,
		DateFrom:   req.DateFrom,
		DateTo:     req.DateTo,
		Limit:      limit,
	})

	written := 0
	var lastErr error
	for doc := range docs {
		doc := doc
		if err := d.fetchOne(ctx, adapter, &doc, req, ticker); err != nil {
			logger.Warn("download %s failed: %v", doc.ID, err)
			lastErr = err
			continue
		}
		written++
	}
	for err := range errs {
		if err != nil {
			return written, err
		}
	}

	logger.Info("downloaded %d document(s) for %s", written, ticker)
	if written == 0 && lastErr != nil {
		return 0, lastErr
	}
	return written, nil
}

// fetchOne materialises one document and records it in the catalog.
func (d *Downloader) fetchOne(
	ctx context.Context,
	adapter driven.SourceAdapter,
	doc *domain.Document,
	req domain.DownloadRequest,
	ticker string,
) error {
	select {
	case d.sem <- struct{}{}:
		defer func() { <-d.sem }()
	case <-ctx.Done():
		return ctx.Err()
	}

	locator, err := adapter.FetchDocument(ctx, doc, req.Format)
	if err != nil {
		return err
	}

	target := ArtifactPath(req.OutputRoot, req.Source, ticker, doc, req.Format)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating artifact directory: %w", err)
	}

	if err := d.writeAtomic(ctx, target, locator); err != nil {
		return err
	}
	logger.Info("wrote %s", target)

	doc.ContentPath = target
	doc.Format = req.Format
	if doc.Ticker == "" {
		doc.Ticker = ticker
	}
	return d.store.UpsertDocument(ctx, doc)
}

// ArtifactPath computes the deterministic on-disk location:
// {root}/{SOURCE}/{ticker}/{date}_{id}_{format}.{ext}. The
// (source, id, format) triple uniquely names the artifact, so
// collisions overwrite.
func ArtifactPath(root string, source domain.Source, ticker string, doc *domain.Document, format domain.Format) string {
	name := fmt.Sprintf("%s_%s_%s.%s", doc.DateString(), sanitize(doc.ID), format, format.Ext())
	return filepath.Join(root, source.String(), ticker, name)
}

// sanitize keeps document ids filesystem-safe.
func sanitize(s string) string {
	return strings.NewReplacer("/", "-", "\\", "-", ":", "-").Replace(s)
}

// writeAtomic downloads into a temporary sibling, syncs and renames.
// A reader never observes a partially-written file at the final path.
func (d *Downloader) writeAtomic(ctx context.Context, target string, locator *domain.PayloadLocator) error {
	tmp := target + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmp, err)
	}

	writeErr := d.writePayload(ctx, f, locator)
	if writeErr == nil {
		writeErr = f.Sync()
	}
	if closeErr := f.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		os.Remove(tmp)
		return writeErr
	}

	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming into place: %w", err)
	}
	return nil
}

// writePayload streams the artifact. A multi-URL locator (EDGAR's
// complete package) is bundled into a zip archive, one entry per part.
func (d *Downloader) writePayload(ctx context.Context, w io.Writer, locator *domain.PayloadLocator) error {
	if len(locator.URLs) == 0 {
		return fmt.Errorf("%w: locator names no URLs", domain.ErrInvalidInput)
	}

	if len(locator.URLs) == 1 {
		_, err := d.client.Fetch(ctx, locator.Bucket, locator.URLs[0], locator.Header, w)
		return err
	}

	archive := zip.NewWriter(w)
	for _, u := range locator.URLs {
		entry, err := archive.Create(path.Base(u))
		if err != nil {
			return fmt.Errorf("creating archive entry: %w", err)
		}
		if _, err := d.client.Fetch(ctx, locator.Bucket, u, locator.Header, entry); err != nil {
			return err
		}
	}
	return archive.Close()
}
