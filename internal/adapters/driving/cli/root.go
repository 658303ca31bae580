// Package cli implements the fast10k command surface on cobra.
// Services are injected by the binary's main before Execute runs.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/fast10k/fast10k-cli/internal/core/ports/driving"
	"github.com/fast10k/fast10k-cli/internal/logger"
)

// Services holds the core service ports the commands run against.
type Services struct {
	Downloader driving.Downloader
	Indexer    driving.Indexer
	Search     driving.SearchService
}

var services *Services

// SetServices injects the wired services.
func SetServices(s *Services) {
	services = s
}

var (
	verbose      bool
	databasePath string
)

var rootCmd = &cobra.Command{
	Use:   "fast10k",
	Short: "Download, index and search SEC and EDINET filings",
	Long: `fast10k acquires financial filings from the SEC's EDGAR system and
Japan's EDINET system, keeps their metadata in a local catalog for
fast search, and downloads filing payloads on demand.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	// The database location is resolved before services are wired;
	// the binary's main pre-scans for this flag.
	rootCmd.PersistentFlags().StringVarP(&databasePath, "database", "d", "", "catalog database path (default ./fast10k.db)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
