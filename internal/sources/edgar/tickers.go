package edgar

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/fast10k/fast10k-cli/internal/adapters/driven/httpx"
	"github.com/fast10k/fast10k-cli/internal/core/domain"
	"github.com/fast10k/fast10k-cli/internal/logger"
)

// companyTicker is one entry of the SEC's company_tickers.json mapping.
type companyTicker struct {
	CIK    int64  `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// tickerDirectory caches the full ticker→CIK mapping for the process
// lifetime. The mapping covers every current EDGAR registrant, so one
// fetch serves all resolutions.
type tickerDirectory struct {
	client *httpx.Client
	url    string

	mu      sync.Mutex
	entries map[string]companyTicker
}

func newTickerDirectory(client *httpx.Client, url string) *tickerDirectory {
	return &tickerDirectory{client: client, url: url}
}

// Resolve maps a ticker to its zero-padded 10-digit CIK, loading the
// directory on first use. Comparison is case-insensitive. A failed
// load is not cached; the next call retries.
func (d *tickerDirectory) Resolve(ctx context.Context, ticker string) (string, string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.entries == nil {
		if err := d.load(ctx); err != nil {
			return "", "", err
		}
	}

	entry, ok := d.entries[strings.ToUpper(strings.TrimSpace(ticker))]
	if !ok {
		return "", "", fmt.Errorf("%w: ticker %s not in the EDGAR registrant mapping", domain.ErrUnknownIssuer, ticker)
	}
	return fmt.Sprintf("%010d", entry.CIK), entry.Title, nil
}

func (d *tickerDirectory) load(ctx context.Context) error {
	var raw map[string]companyTicker
	if err := d.client.GetJSON(ctx, httpx.BucketEDGAR, d.url, nil, &raw); err != nil {
		return fmt.Errorf("fetching registrant mapping: %w", err)
	}

	entries := make(map[string]companyTicker, len(raw))
	for _, entry := range raw {
		entries[strings.ToUpper(entry.Ticker)] = entry
	}
	d.entries = entries
	logger.Debug("loaded %d EDGAR registrants", len(entries))
	return nil
}
