// Package edinetcli implements the edinet command surface: issuer
// directory bootstrap, index maintenance, catalog search and document
// download/read, all scoped to the EDINET source.
package edinetcli

import (
	"github.com/spf13/cobra"

	"github.com/fast10k/fast10k-cli/internal/core/ports/driven"
	"github.com/fast10k/fast10k-cli/internal/core/ports/driving"
	"github.com/fast10k/fast10k-cli/internal/logger"
)

// Services holds the ports the edinet commands run against.
type Services struct {
	Indexer     driving.Indexer
	Downloader  driving.Downloader
	Search      driving.SearchService
	Issuers     driven.IssuerStore
	Documents   driven.DocumentStore
	DownloadDir string
}

var services *Services

// SetServices injects the wired services.
func SetServices(s *Services) {
	services = s
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "edinet",
	Short:         "EDINET command line tool",
	Long:          `Work with Japan's EDINET filing system: load the issuer directory, maintain the local filing index, and search, download and read filings.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
