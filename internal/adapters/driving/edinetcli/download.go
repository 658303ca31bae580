package edinetcli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fast10k/fast10k-cli/internal/core/domain"
)

var (
	downloadSym   string
	downloadLimit int
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download EDINET filing packages for a symbol",
	Long: `Download complete filing packages for an issuer. Candidates come
from the local catalog (refreshed if stale); payloads are fetched
per docID and written under the download layout.`,
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().StringVar(&downloadSym, "sym", "", "company ticker symbol (securities code)")
	downloadCmd.Flags().IntVarP(&downloadLimit, "limit", "n", domain.DefaultDownloadLimit, "maximum number of documents")
	_ = downloadCmd.MarkFlagRequired("sym")
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	if services == nil || services.Downloader == nil {
		return errors.New("download service not configured")
	}

	n, err := services.Downloader.Download(cmd.Context(), domain.DownloadRequest{
		Source:     domain.SourceEDINET,
		Ticker:     downloadSym,
		Limit:      downloadLimit,
		Format:     domain.FormatComplete,
		OutputRoot: services.DownloadDir,
	})
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	cmd.Printf("Downloaded %d document(s)\n", n)
	return nil
}
