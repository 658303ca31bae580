package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fast10k/fast10k-cli/internal/core/domain"
	"github.com/fast10k/fast10k-cli/internal/core/ports/driven"
	"github.com/fast10k/fast10k-cli/internal/core/ports/driving"
	"github.com/fast10k/fast10k-cli/internal/logger"
)

// bootstrapDays is how far back the first Update reaches on an empty
// catalog.
const bootstrapDays = 7

// jst is the timezone EDINET publishes in; "today" for freshness
// decisions is the Japanese calendar day.
var jst = time.FixedZone("JST", 9*60*60)

// PartialIndexError reports an indexer run that skipped one or more
// days. The run is still a success for every other day; the failed
// dates are listed for a later retry.
type PartialIndexError struct {
	FailedDates []time.Time
}

// Error implements the error interface.
func (e *PartialIndexError) Error() string {
	days := make([]string, len(e.FailedDates))
	for i, d := range e.FailedDates {
		days[i] = d.Format(domain.DateLayout)
	}
	return fmt.Sprintf("indexing failed for %d day(s): %s", len(days), strings.Join(days, ", "))
}

// Indexer reconciles the EDINET daily manifests into the catalog.
type Indexer struct {
	store     driven.DocumentStore
	source    driven.DayIndexedSource
	staleDays int

	// now is injectable for tests.
	now func() time.Time
}

var _ driving.Indexer = (*Indexer)(nil)

// NewIndexer creates the indexer. staleDays is the freshness threshold
// of EnsureFresh.
func NewIndexer(store driven.DocumentStore, source driven.DayIndexedSource, staleDays int) *Indexer {
	return &Indexer{
		store:     store,
		source:    source,
		staleDays: staleDays,
		now:       time.Now,
	}
}

// Stats returns row count and date bounds of the indexed slice.
func (ix *Indexer) Stats(ctx context.Context) (*domain.CatalogStats, error) {
	return ix.store.Stats(ctx, domain.SourceEDINET)
}

// today returns the current calendar day in the source's timezone.
func (ix *Indexer) today() time.Time {
	return civilDate(ix.now().In(jst))
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Update catches up from the most recent indexed date to today,
// exclusive of days already indexed. An empty catalog bootstraps the
// last week.
func (ix *Indexer) Update(ctx context.Context) (int, error) {
	stats, err := ix.Stats(ctx)
	if err != nil {
		return 0, err
	}

	today := ix.today()
	from := today.AddDate(0, 0, -bootstrapDays)
	if !stats.Empty() {
		from = stats.MaxDate.AddDate(0, 0, 1)
	}
	if from.After(today) {
		logger.Debug("index already covers %s, nothing to update", stats.MaxDate.Format(domain.DateLayout))
		return 0, nil
	}
	return ix.Build(ctx, from, today)
}

// Build indexes the inclusive date range, oldest first, so an
// interrupted run leaves a contiguous prefix of history indexed.
// A single day's failure is isolated; a missing credential or a store
// write failure aborts the run.
func (ix *Indexer) Build(ctx context.Context, from, to time.Time) (int, error) {
	if from.After(to) {
		return 0, fmt.Errorf("%w: range start %s is after end %s",
			domain.ErrInvalidInput, from.Format(domain.DateLayout), to.Format(domain.DateLayout))
	}

	runID := uuid.NewString()[:8]
	from, to = civilDate(from), civilDate(to)
	logger.Info("index run %s: building %s to %s", runID, from.Format(domain.DateLayout), to.Format(domain.DateLayout))

	indexed := 0
	var failed []time.Time
	days := 0
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		// Cancellation is cooperative and checked between dates.
		select {
		case <-ctx.Done():
			return indexed, ctx.Err()
		default:
		}

		// Markets are closed on weekends; the manifests are empty.
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		days++

		docs, err := ix.source.FilingsForDate(ctx, day)
		if err != nil {
			if errors.Is(err, domain.ErrAuthRequired) || errors.Is(err, context.Canceled) {
				return indexed, err
			}
			logger.Warn("index run %s: %s failed: %v", runID, day.Format(domain.DateLayout), err)
			failed = append(failed, day)
			continue
		}

		for i := range docs {
			if err := ix.store.UpsertDocument(ctx, &docs[i]); err != nil {
				// The catalog must not silently diverge.
				return indexed, err
			}
			indexed++
		}
		if len(docs) > 0 {
			logger.Debug("index run %s: %s wrote %d documents", runID, day.Format(domain.DateLayout), len(docs))
		}
	}

	logger.Info("index run %s: %d documents over %d weekdays", runID, indexed, days)
	if len(failed) > 0 {
		return indexed, &PartialIndexError{FailedDates: failed}
	}
	return indexed, nil
}

// Clear purges the indexed documents. The issuer directory is
// untouched.
func (ix *Indexer) Clear(ctx context.Context) error {
	return ix.store.Clear(ctx, domain.SourceEDINET)
}

// EnsureFresh runs Update when the index is empty or its newest filing
// is older than the staleness threshold. This is the self-healing
// contract every search path goes through.
func (ix *Indexer) EnsureFresh(ctx context.Context) error {
	stats, err := ix.Stats(ctx)
	if err != nil {
		return err
	}

	if !stats.Empty() {
		behind := int(ix.today().Sub(civilDate(stats.MaxDate)).Hours() / 24)
		if behind <= ix.staleDays {
			logger.Debug("index is fresh (last indexed %s)", stats.MaxDate.Format(domain.DateLayout))
			return nil
		}
		logger.Info("index is %d days behind, updating", behind)
	} else {
		logger.Info("index is empty, building the last %d days", bootstrapDays)
	}

	_, err = ix.Update(ctx)
	return err
}
