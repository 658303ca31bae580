// Command fast10k downloads, indexes and searches financial filings
// from EDGAR and EDINET.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fast10k/fast10k-cli/internal/adapters/driven/httpx"
	"github.com/fast10k/fast10k-cli/internal/adapters/driven/storage/sqlite"
	"github.com/fast10k/fast10k-cli/internal/adapters/driving/cli"
	"github.com/fast10k/fast10k-cli/internal/adapters/driving/exit"
	"github.com/fast10k/fast10k-cli/internal/config"
	"github.com/fast10k/fast10k-cli/internal/core/domain"
	"github.com/fast10k/fast10k-cli/internal/core/ports/driven"
	"github.com/fast10k/fast10k-cli/internal/core/services"
	"github.com/fast10k/fast10k-cli/internal/sources/edgar"
	"github.com/fast10k/fast10k-cli/internal/sources/edinet"
	"github.com/fast10k/fast10k-cli/internal/sources/tdnet"
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
	if db := argValue(os.Args[1:], "database"); db != "" {
		cfg.DatabasePath = db
	}

	store, err := sqlite.NewStore(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	limiter := httpx.NewLimiter()
	limiter.AddBucket(httpx.BucketEDGAR, cfg.EdgarAPIDelay())
	limiter.AddBucket(httpx.BucketEDINET, cfg.EdinetAPIDelay())
	limiter.AddBucket(httpx.BucketEDINETDownload, cfg.EdinetDownloadDelay())
	client := httpx.New(cfg.UserAgent, cfg.HTTPTimeout(), limiter)

	edinetAdapter := edinet.New(client, store, store, cfg.EdinetAPIKey)
	adapters := map[domain.Source]driven.SourceAdapter{
		domain.SourceEDGAR:  edgar.New(client),
		domain.SourceEDINET: edinetAdapter,
		domain.SourceTDNet:  tdnet.New(),
	}

	indexer := services.NewIndexer(store, edinetAdapter, cfg.IndexStaleDays)
	cli.SetServices(&cli.Services{
		Downloader: services.NewDownloader(client, store, adapters, indexer, cfg.HTTPTimeout()),
		Indexer:    indexer,
		Search:     services.NewSearch(store, indexer),
	})

	return cli.Execute()
}

// argValue pre-scans the raw arguments for a --name value. The store
// must open before cobra parses flags, so the database override is
// read here.
func argValue(args []string, name string) string {
	long, short := "--"+name, "-"+name[:1]
	for i, arg := range args {
		if (arg == long || arg == short) && i+1 < len(args) {
			return args[i+1]
		}
		if v, ok := strings.CutPrefix(arg, long+"="); ok {
			return v
		}
	}
	return ""
}
