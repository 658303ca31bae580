package edgar

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fast10k/fast10k-cli/internal/adapters/driven/httpx"
	"github.com/fast10k/fast10k-cli/internal/core/domain"
)

const tickersJSON = `{
	"0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."},
	"1": {"cik_str": 789019, "ticker": "MSFT", "title": "MICROSOFT CORP"}
}`

const submissionsJSON = `{
	"cik": "320193",
	"name": "Apple Inc.",
	"tickers": ["AAPL"],
	"filings": {
		"recent": {
			"accessionNumber": ["0000320193-24-000123", "0000320193-24-000100", "0000320193-23-000106", "0000320193-23-000090"],
			"filingDate": ["2024-11-01", "2024-08-02", "2023-11-03", "2023-08-04"],
			"reportDate": ["2024-09-28", "2024-06-29", "2023-09-30", "2023-07-01"],
			"form": ["10-K", "10-Q", "10-K", "10-K/A"],
			"primaryDocument": ["aapl-20240928.htm", "aapl-20240629.htm", "aapl-20230930.htm", "aapl-20230701.htm"],
			"primaryDocDescription": ["10-K", "10-Q", "10-K", "10-K/A"]
		}
	}
}`

func testClient(t *testing.T) *httpx.Client {
	t.Helper()
	l := httpx.NewLimiter()
	l.AddBucket(httpx.BucketEDGAR, time.Millisecond)
	return httpx.New("fast10k-test/1.0", 5*time.Second, l)
}

func testAdapter(t *testing.T, handler http.Handler) *Adapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(testClient(t),
		WithTickersURL(srv.URL+"/files/company_tickers.json"),
		WithSubmissionsBase(srv.URL+"/submissions"),
		WithArchivesBase(srv.URL+"/Archives/edgar/data"),
	)
}

func edgarHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/files/company_tickers.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, tickersJSON)
	})
	mux.HandleFunc("/submissions/CIK0000320193.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, submissionsJSON)
	})
	return mux
}

func drain(t *testing.T, docs <-chan domain.Document, errs <-chan error) []domain.Document {
	t.Helper()
	var out []domain.Document
	for doc := range docs {
		out = append(out, doc)
	}
	for err := range errs {
		require.NoError(t, err)
	}
	return out
}

func TestResolveIssuer(t *testing.T) {
	a := testAdapter(t, edgarHandler())

	cik, err := a.ResolveIssuer(context.Background(), "aapl")
	require.NoError(t, err)
	assert.Equal(t, "0000320193", cik)

	// Case-insensitive on uppercased ASCII.
	cik, err = a.ResolveIssuer(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "0000320193", cik)

	_, err = a.ResolveIssuer(context.Background(), "ZZZZ")
	assert.ErrorIs(t, err, domain.ErrUnknownIssuer)
}

func TestResolveIssuer_CachesMapping(t *testing.T) {
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/files/company_tickers.json", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, tickersJSON)
	})
	a := testAdapter(t, mux)

	for i := 0; i < 3; i++ {
		_, err := a.ResolveIssuer(context.Background(), "MSFT")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestListFilings_FilterAndLimit(t *testing.T) {
	a := testAdapter(t, edgarHandler())

	docs, errs := a.ListFilings(context.Background(), "0000320193", domain.FilingFilter{
		FilingType: domain.FilingType10K,
		Limit:      2,
	})
	got := drain(t, docs, errs)

	require.Len(t, got, 2)
	assert.Equal(t, "2024-11-01", got[0].DateString())
	assert.Equal(t, "2023-11-03", got[1].DateString())
	for _, doc := range got {
		assert.Equal(t, domain.FilingType10K, doc.FilingType)
		assert.Equal(t, "AAPL", doc.Ticker)
		assert.Equal(t, "Apple Inc.", doc.CompanyName)
		assert.Equal(t, domain.SourceEDGAR, doc.Source)
	}
}

func TestListFilings_AmendmentNotFolded(t *testing.T) {
	// 10-K must not match the 10-K/A amendment; the amendment is its
	// own filing type and needs explicit opt-in.
	a := testAdapter(t, edgarHandler())

	docs, errs := a.ListFilings(context.Background(), "0000320193", domain.FilingFilter{
		FilingType: domain.FilingType10K,
		Limit:      10,
	})
	for _, doc := range drain(t, docs, errs) {
		assert.NotEqual(t, "10-K/A", doc.Metadata["form"])
	}

	docs, errs = a.ListFilings(context.Background(), "0000320193", domain.FilingFilter{
		FilingType: domain.ParseFilingType("10-k/a"),
		Limit:      10,
	})
	amendments := drain(t, docs, errs)
	require.Len(t, amendments, 1)
	assert.Equal(t, "10-K/A", amendments[0].Metadata["form"])
}

func TestListFilings_DateRange(t *testing.T) {
	a := testAdapter(t, edgarHandler())

	from, _ := time.Parse(domain.DateLayout, "2024-01-01")
	docs, errs := a.ListFilings(context.Background(), "0000320193", domain.FilingFilter{
		DateFrom: from,
		Limit:    10,
	})
	got := drain(t, docs, errs)

	require.Len(t, got, 2)
	for _, doc := range got {
		assert.False(t, doc.FilingDate.Before(from))
	}
}

func TestFetchDocument_URLs(t *testing.T) {
	a := testAdapter(t, edgarHandler())
	ctx := context.Background()

	doc := &domain.Document{
		ID:     "0000320193-000032019324000123-aapl-20240928.htm",
		Source: domain.SourceEDGAR,
		Metadata: map[string]string{
			"cik":              "0000320193",
			"accession_number": "0000320193-24-000123",
			"primary_document": "aapl-20240928.htm",
		},
	}

	t.Run("txt uses the full-submission file", func(t *testing.T) {
		loc, err := a.FetchDocument(ctx, doc, domain.FormatTxt)
		require.NoError(t, err)
		require.Len(t, loc.URLs, 1)
		assert.Contains(t, loc.URLs[0], "/320193/000032019324000123/0000320193-24-000123.txt")
	})

	t.Run("html uses the primary document", func(t *testing.T) {
		loc, err := a.FetchDocument(ctx, doc, domain.FormatHTML)
		require.NoError(t, err)
		require.Len(t, loc.URLs, 1)
		assert.Contains(t, loc.URLs[0], "/320193/000032019324000123/aapl-20240928.htm")
	})

	t.Run("xbrl uses the instance sibling", func(t *testing.T) {
		loc, err := a.FetchDocument(ctx, doc, domain.FormatXBRL)
		require.NoError(t, err)
		require.Len(t, loc.URLs, 1)
		assert.Contains(t, loc.URLs[0], "aapl-20240928_htm.xml")
	})

	t.Run("pdf rejected", func(t *testing.T) {
		_, err := a.FetchDocument(ctx, doc, domain.FormatPDF)
		assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	})
}

func TestFetchDocument_CompleteEnumeratesIndex(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/Archives/edgar/data/320193/000032019324000123/0000320193-24-000123-index.htm",
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<html><body><table class="tableFile">
				<tr><td><a href="/Archives/edgar/data/320193/000032019324000123/aapl-20240928.htm">aapl-20240928.htm</a></td></tr>
				<tr><td><a href="/Archives/edgar/data/320193/000032019324000123/aapl-20240928_htm.xml">aapl-20240928_htm.xml</a></td></tr>
				<tr><td><a href="/Archives/edgar/data/320193/000032019324000123/exhibit21.htm">exhibit21.htm</a></td></tr>
			</table></body></html>`)
		})
	a := testAdapter(t, mux)

	doc := &domain.Document{
		Source: domain.SourceEDGAR,
		Metadata: map[string]string{
			"cik":              "0000320193",
			"accession_number": "0000320193-24-000123",
			"primary_document": "aapl-20240928.htm",
		},
	}

	loc, err := a.FetchDocument(context.Background(), doc, domain.FormatComplete)
	require.NoError(t, err)
	assert.Len(t, loc.URLs, 3)
	assert.Equal(t, "0000320193-24-000123.zip", loc.Filename)
}
