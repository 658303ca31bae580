package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FAST10K_DOWNLOAD_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "./fast10k.db", cfg.DatabasePath)
	assert.Equal(t, "fast10k/0.1", cfg.UserAgent)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout())
	assert.Equal(t, 100*time.Millisecond, cfg.EdinetAPIDelay())
	assert.Equal(t, 200*time.Millisecond, cfg.EdinetDownloadDelay())
	assert.Equal(t, 100*time.Millisecond, cfg.EdgarAPIDelay())
	assert.Equal(t, 2, cfg.IndexStaleDays)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("FAST10K_DOWNLOAD_DIR", t.TempDir())
	t.Setenv("FAST10K_HTTP_TIMEOUT_SECONDS", "10")
	t.Setenv("FAST10K_EDINET_API_DELAY_MS", "250")
	t.Setenv("EDINET_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout())
	assert.Equal(t, 250*time.Millisecond, cfg.EdinetAPIDelay())
	assert.Equal(t, "test-key", cfg.EdinetAPIKey)
}

func TestLoad_UnparsableInteger(t *testing.T) {
	t.Setenv("FAST10K_HTTP_TIMEOUT_SECONDS", "thirty")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Run("empty user agent rejected", func(t *testing.T) {
		cfg := &Config{UserAgent: "", HTTPTimeoutSeconds: 30, IndexStaleDays: 2, DownloadDir: t.TempDir(), DatabasePath: "./x.db"}
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing database parent rejected", func(t *testing.T) {
		cfg := &Config{UserAgent: "ua", HTTPTimeoutSeconds: 30, IndexStaleDays: 2, DownloadDir: t.TempDir(), DatabasePath: "/no/such/dir/x.db"}
		assert.Error(t, cfg.Validate())
	})

	t.Run("defaults pass", func(t *testing.T) {
		cfg := &Config{UserAgent: "ua", HTTPTimeoutSeconds: 30, IndexStaleDays: 2, DownloadDir: t.TempDir(), DatabasePath: "./x.db"}
		assert.NoError(t, cfg.Validate())
	})
}
