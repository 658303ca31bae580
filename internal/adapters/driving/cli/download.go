package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fast10k/fast10k-cli/internal/core/domain"
)

var (
	downloadSource     string
	downloadTicker     string
	downloadFilingType string
	downloadFormat     string
	downloadFromDate   string
	downloadToDate     string
	downloadOutput     string
	downloadLimit      int
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download filings from a source",
	Long: `Download filing payloads for a ticker. The request resolves the
issuer against the source, selects the most recent matching filings
and writes each payload under the deterministic download layout.`,
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().StringVarP(&downloadSource, "source", "s", "", "source to download from (edgar, edinet)")
	downloadCmd.Flags().StringVarP(&downloadTicker, "ticker", "t", "", "company ticker symbol")
	downloadCmd.Flags().StringVarP(&downloadFilingType, "filing-type", "f", "", "filing type (e.g. 10-k, annual)")
	downloadCmd.Flags().StringVar(&downloadFormat, "format", "txt", "payload format (txt, html, xbrl, ixbrl, pdf, complete)")
	downloadCmd.Flags().StringVar(&downloadFromDate, "from-date", "", "start date (YYYY-MM-DD)")
	downloadCmd.Flags().StringVar(&downloadToDate, "to-date", "", "end date (YYYY-MM-DD)")
	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "./downloads", "output directory")
	downloadCmd.Flags().IntVarP(&downloadLimit, "limit", "n", domain.DefaultDownloadLimit, "maximum number of documents")
	_ = downloadCmd.MarkFlagRequired("source")
	_ = downloadCmd.MarkFlagRequired("ticker")
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	if services == nil || services.Downloader == nil {
		return errors.New("download service not configured")
	}

	source, err := domain.ParseSource(downloadSource)
	if err != nil {
		return err
	}
	format, err := domain.ParseFormat(downloadFormat)
	if err != nil {
		return err
	}
	from, err := parseDate(downloadFromDate)
	if err != nil {
		return err
	}
	to, err := parseDate(downloadToDate)
	if err != nil {
		return err
	}

	n, err := services.Downloader.Download(cmd.Context(), domain.DownloadRequest{
		Source:     source,
		Ticker:     downloadTicker,
		FilingType: parseOptionalFilingType(downloadFilingType),
		DateFrom:   from,
		DateTo:     to,
		Limit:      downloadLimit,
		Format:     format,
		OutputRoot: downloadOutput,
	})
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	cmd.Printf("Downloaded %d document(s)\n", n)
	return nil
}
