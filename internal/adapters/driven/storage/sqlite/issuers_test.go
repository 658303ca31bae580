package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fast10k/fast10k-cli/internal/core/domain"
)

func testIssuers() []domain.Issuer {
	return []domain.Issuer{
		{
			EdinetCode:     "E02144",
			SecuritiesCode: "72030",
			Name:           "トヨタ自動車株式会社",
			NameEN:         "TOYOTA MOTOR CORPORATION",
			Industry:       "輸送用機器",
			FiscalYearEnd:  "3月31日",
			Address:        "愛知県豊田市トヨタ町1番地",
		},
		{
			EdinetCode:     "E33625",
			SecuritiesCode: "76700",
			Name:           "株式会社オーウエル",
			NameEN:         "O-WELL CORPORATION",
			Industry:       "卸売業",
			FiscalYearEnd:  "3月31日",
			Address:        "大阪府大阪市",
		},
		{
			EdinetCode: "E99999",
			Name:       "非上場ホールディングス株式会社",
			// Unlisted: no securities code.
		},
	}
}

func TestLoadIssuers_ReplacesDirectory(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	n, err := store.LoadIssuers(ctx, testIssuers())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	count, err := store.CountIssuers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	// A second load replaces, never appends.
	n, err = store.LoadIssuers(ctx, testIssuers()[:1])
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	count, err = store.CountIssuers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestLookupIssuer_Normalization(t *testing.T) {
	// lookup(x) == lookup(norm(x)) across the 4↔5 digit rules.
	store := setupTestStore(t)
	ctx := context.Background()
	_, err := store.LoadIssuers(ctx, testIssuers())
	require.NoError(t, err)

	tests := []struct {
		ticker string
		want   string
	}{
		{"7203", "E02144"},  // 4-digit market form
		{"72030", "E02144"}, // 5-digit directory form
		{"7670", "E33625"},
		{"76700", "E33625"},
	}
	for _, tt := range tests {
		t.Run(tt.ticker, func(t *testing.T) {
			issuer, err := store.LookupIssuer(ctx, tt.ticker)
			require.NoError(t, err)
			assert.Equal(t, tt.want, issuer.EdinetCode)
		})
	}
}

func TestGetIssuer(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	_, err := store.LoadIssuers(ctx, testIssuers())
	require.NoError(t, err)

	issuer, err := store.GetIssuer(ctx, "E02144")
	require.NoError(t, err)
	assert.Equal(t, "72030", issuer.SecuritiesCode)

	_, err = store.GetIssuer(ctx, "E00000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLookupIssuer_Unknown(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	_, err := store.LoadIssuers(ctx, testIssuers())
	require.NoError(t, err)

	_, err = store.LookupIssuer(ctx, "9999")
	assert.ErrorIs(t, err, domain.ErrUnknownIssuer)
}

func TestSearchIssuers(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	_, err := store.LoadIssuers(ctx, testIssuers())
	require.NoError(t, err)

	t.Run("by 4-digit securities code", func(t *testing.T) {
		got, err := store.SearchIssuers(ctx, "7203", 20)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "E02144", got[0].EdinetCode)
		assert.Contains(t, got[0].Name, "トヨタ")
	})

	t.Run("by edinet code", func(t *testing.T) {
		got, err := store.SearchIssuers(ctx, "E33625", 20)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "O-WELL CORPORATION", got[0].NameEN)
	})

	t.Run("by name substring", func(t *testing.T) {
		got, err := store.SearchIssuers(ctx, "オーウエル", 20)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "E33625", got[0].EdinetCode)
	})

	t.Run("no match", func(t *testing.T) {
		got, err := store.SearchIssuers(ctx, "does-not-exist", 20)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
