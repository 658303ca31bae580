// Command edinet works with Japan's EDINET filing system: issuer
// directory bootstrap, index maintenance, search, download and read.
package main

import (
	"fmt"
	"os"

	"github.com/fast10k/fast10k-cli/internal/adapters/driven/httpx"
	"github.com/fast10k/fast10k-cli/internal/adapters/driven/storage/sqlite"
	"github.com/fast10k/fast10k-cli/internal/adapters/driving/edinetcli"
	"github.com/fast10k/fast10k-cli/internal/adapters/driving/exit"
	"github.com/fast10k/fast10k-cli/internal/config"
	"github.com/fast10k/fast10k-cli/internal/core/domain"
	"github.com/fast10k/fast10k-cli/internal/core/ports/driven"
	"github.com/fast10k/fast10k-cli/internal/core/services"
	"github.com/fast10k/fast10k-cli/internal/sources/edinet"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exit.Code(err))
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	store, err := sqlite.NewStore(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	limiter := httpx.NewLimiter()
	limiter.AddBucket(httpx.BucketEDINET, cfg.EdinetAPIDelay())
	limiter.AddBucket(httpx.BucketEDINETDownload, cfg.EdinetDownloadDelay())
	client := httpx.New(cfg.UserAgent, cfg.HTTPTimeout(), limiter)

	adapter := edinet.New(client, store, store, cfg.EdinetAPIKey)
	indexer := services.NewIndexer(store, adapter, cfg.IndexStaleDays)
	adapters := map[domain.Source]driven.SourceAdapter{domain.SourceEDINET: adapter}

	edinetcli.SetServices(&edinetcli.Services{
		Indexer:     indexer,
		Downloader:  services.NewDownloader(client, store, adapters, indexer, cfg.HTTPTimeout()),
		Search:      services.NewSearch(store, indexer),
		Issuers:     store,
		Documents:   store,
		DownloadDir: cfg.DownloadDir,
	})

	return edinetcli.Execute()
}
