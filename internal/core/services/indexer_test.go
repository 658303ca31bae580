package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fast10k/fast10k-cli/internal/adapters/driven/storage/sqlite"
	"github.com/fast10k/fast10k-cli/internal/core/domain"
)

// fakeDaySource serves canned manifests per date and counts calls.
type fakeDaySource struct {
	filings map[string][]domain.Document
	failOn  map[string]error
	calls   []string
}

func (f *fakeDaySource) FilingsForDate(_ context.Context, date time.Time) ([]domain.Document, error) {
	day := date.Format(domain.DateLayout)
	f.calls = append(f.calls, day)
	if err, ok := f.failOn[day]; ok {
		return nil, err
	}
	return f.filings[day], nil
}

func filing(id, day string) domain.Document {
	date, _ := time.Parse(domain.DateLayout, day)
	return domain.Document{
		ID:          id,
		Ticker:      "7203",
		CompanyName: "トヨタ自動車株式会社",
		FilingType:  domain.FilingTypeAnnualReport,
		Source:      domain.SourceEDINET,
		FilingDate:  date,
		Format:      domain.FormatComplete,
		Metadata:    map[string]string{"docID": id},
	}
}

func newTestIndexer(t *testing.T, source *fakeDaySource) (*Indexer, *sqlite.Store) {
	t.Helper()
	store, err := sqlite.NewStore(filepath.Join(t.TempDir(), "fast10k.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ix := NewIndexer(store, source, 2)
	return ix, store
}

func day(s string) time.Time {
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestBuild_WalksWeekdaysOldestFirst(t *testing.T) {
	// 2024-06-24 is a Monday; the 29th and 30th are the weekend.
	source := &fakeDaySource{filings: map[string][]domain.Document{
		"2024-06-24": {filing("D1", "2024-06-24")},
		"2024-06-26": {filing("D2", "2024-06-26"), filing("D3", "2024-06-26")},
	}}
	ix, store := newTestIndexer(t, source)

	n, err := ix.Build(context.Background(), day("2024-06-24"), day("2024-06-30"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// Weekend days are never fetched; order is oldest-first.
	assert.Equal(t, []string{"2024-06-24", "2024-06-25", "2024-06-26", "2024-06-27", "2024-06-28"}, source.calls)

	stats, err := store.Stats(context.Background(), domain.SourceEDINET)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Documents)
	assert.Equal(t, day("2024-06-24"), stats.MinDate)
	assert.Equal(t, day("2024-06-26"), stats.MaxDate)
}

func TestBuild_SingleDayFailureIsIsolated(t *testing.T) {
	source := &fakeDaySource{
		filings: map[string][]domain.Document{
			"2024-06-24": {filing("D1", "2024-06-24")},
			"2024-06-26": {filing("D2", "2024-06-26")},
		},
		failOn: map[string]error{"2024-06-25": fmt.Errorf("manifest unavailable")},
	}
	ix, _ := newTestIndexer(t, source)

	n, err := ix.Build(context.Background(), day("2024-06-24"), day("2024-06-26"))

	// Both healthy days landed; the failed date is reported.
	assert.Equal(t, 2, n)
	var partial *PartialIndexError
	require.ErrorAs(t, err, &partial)
	require.Len(t, partial.FailedDates, 1)
	assert.Equal(t, "2024-06-25", partial.FailedDates[0].Format(domain.DateLayout))
}

func TestBuild_MissingCredentialAborts(t *testing.T) {
	source := &fakeDaySource{
		failOn: map[string]error{"2024-06-24": domain.ErrAuthRequired},
	}
	ix, _ := newTestIndexer(t, source)

	_, err := ix.Build(context.Background(), day("2024-06-24"), day("2024-06-26"))
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	// The run stopped at the first day.
	assert.Equal(t, []string{"2024-06-24"}, source.calls)
}

func TestBuild_CancellationBetweenDays(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	source := &fakeDaySource{filings: map[string][]domain.Document{}}
	ix, _ := newTestIndexer(t, source)

	cancel()
	_, err := ix.Build(ctx, day("2024-06-24"), day("2024-06-26"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, source.calls)
}

func TestBuild_InvertedRangeRejected(t *testing.T) {
	ix, _ := newTestIndexer(t, &fakeDaySource{})
	_, err := ix.Build(context.Background(), day("2024-06-26"), day("2024-06-24"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_Idempotent(t *testing.T) {
	// Two successive updates with no remote change produce identical
	// catalog state.
	source := &fakeDaySource{filings: map[string][]domain.Document{
		"2024-06-25": {filing("D1", "2024-06-25")},
		"2024-06-26": {filing("D2", "2024-06-26")},
	}}
	ix, store := newTestIndexer(t, source)
	ix.now = func() time.Time { return day("2024-06-26").Add(12 * time.Hour) }

	ctx := context.Background()
	_, err := ix.Update(ctx)
	require.NoError(t, err)

	before, err := store.FindDocuments(ctx, domain.Query{Source: domain.SourceEDINET}, 100)
	require.NoError(t, err)

	// Second run starts past the indexed max date.
	n, err := ix.Update(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	after, err := store.FindDocuments(ctx, domain.Query{Source: domain.SourceEDINET}, 100)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUpdate_ResumesAfterMaxDate(t *testing.T) {
	source := &fakeDaySource{filings: map[string][]domain.Document{
		"2024-06-26": {filing("D9", "2024-06-26")},
	}}
	ix, store := newTestIndexer(t, source)
	ix.now = func() time.Time { return day("2024-06-26").Add(12 * time.Hour) }

	ctx := context.Background()
	require.NoError(t, store.UpsertDocument(ctx, ptr(filing("D0", "2024-06-25"))))

	n, err := ix.Update(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"2024-06-26"}, source.calls)
}

func TestEnsureFresh(t *testing.T) {
	t.Run("fresh index is untouched", func(t *testing.T) {
		source := &fakeDaySource{}
		ix, store := newTestIndexer(t, source)
		ix.now = func() time.Time { return day("2024-06-26").Add(12 * time.Hour) }

		ctx := context.Background()
		require.NoError(t, store.UpsertDocument(ctx, ptr(filing("D1", "2024-06-25"))))

		require.NoError(t, ix.EnsureFresh(ctx))
		assert.Empty(t, source.calls)
	})

	t.Run("stale index triggers update", func(t *testing.T) {
		source := &fakeDaySource{filings: map[string][]domain.Document{}}
		ix, store := newTestIndexer(t, source)
		ix.now = func() time.Time { return day("2024-06-28").Add(12 * time.Hour) }

		ctx := context.Background()
		require.NoError(t, store.UpsertDocument(ctx, ptr(filing("D1", "2024-06-24"))))

		require.NoError(t, ix.EnsureFresh(ctx))
		// Catches up from the day after the indexed max.
		assert.Equal(t, []string{"2024-06-25", "2024-06-26", "2024-06-27", "2024-06-28"}, source.calls)
	})

	t.Run("empty catalog bootstraps", func(t *testing.T) {
		source := &fakeDaySource{filings: map[string][]domain.Document{}}
		ix, _ := newTestIndexer(t, source)
		ix.now = func() time.Time { return day("2024-06-28").Add(12 * time.Hour) }

		require.NoError(t, ix.EnsureFresh(context.Background()))
		assert.NotEmpty(t, source.calls)
	})
}

func TestClear(t *testing.T) {
	ix, store := newTestIndexer(t, &fakeDaySource{})
	ctx := context.Background()

	require.NoError(t, store.UpsertDocument(ctx, ptr(filing("D1", "2024-06-25"))))
	require.NoError(t, ix.Clear(ctx))

	stats, err := ix.Stats(ctx)
	require.NoError(t, err)
	assert.True(t, stats.Empty())
}

func TestPartialIndexError_Message(t *testing.T) {
	err := &PartialIndexError{FailedDates: []time.Time{day("2024-06-25")}}
	assert.Contains(t, err.Error(), "2024-06-25")
	assert.True(t, errors.As(error(err), new(*PartialIndexError)))
}

func ptr(d domain.Document) *domain.Document {
	return &d
}
