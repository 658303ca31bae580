package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fast10k/fast10k-cli/internal/core/domain"
)

type fakeSearch struct {
	docs []domain.Document
	last domain.Query
}

func (f *fakeSearch) Search(_ context.Context, q domain.Query, limit int) ([]domain.Document, error) {
	f.last = q
	return f.docs, nil
}

func resetCLI(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		SetServices(nil)
		searchTicker, searchSource, searchFilingType = "", "", ""
		searchFromDate, searchToDate = "", ""
	})
	return buf
}

func TestSearchCommand(t *testing.T) {
	buf := resetCLI(t)

	day, _ := time.Parse(domain.DateLayout, "2024-11-01")
	fake := &fakeSearch{docs: []domain.Document{{
		ID: "D1", Ticker: "AAPL", CompanyName: "Apple Inc.",
		FilingType: domain.FilingType10K, Source: domain.SourceEDGAR,
		FilingDate: day, Format: domain.FormatTxt,
	}}}
	SetServices(&Services{Search: fake})

	rootCmd.SetArgs([]string{"search", "--ticker", "AAPL", "--source", "edgar", "--filing-type", "10-k"})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "AAPL", fake.last.Ticker)
	assert.Equal(t, domain.SourceEDGAR, fake.last.Source)
	assert.Equal(t, domain.FilingType10K, fake.last.FilingType)
	assert.Contains(t, buf.String(), "2024-11-01\tAAPL\tApple Inc.\t10-K\tEDGAR\ttxt")
}

func TestSearchCommand_NoResults(t *testing.T) {
	buf := resetCLI(t)
	SetServices(&Services{Search: &fakeSearch{}})

	rootCmd.SetArgs([]string{"search", "--ticker", "ZZZZ"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "No documents found.")
}

func TestSearchCommand_BadSource(t *testing.T) {
	resetCLI(t)
	SetServices(&Services{Search: &fakeSearch{}})

	rootCmd.SetArgs([]string{"search", "--source", "sedar"})
	err := rootCmd.Execute()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearchCommand_BadDate(t *testing.T) {
	resetCLI(t)
	SetServices(&Services{Search: &fakeSearch{}})

	rootCmd.SetArgs([]string{"search", "--from-date", "11/01/2024"})
	err := rootCmd.Execute()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
