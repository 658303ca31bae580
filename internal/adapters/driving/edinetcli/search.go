package edinetcli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fast10k/fast10k-cli/internal/core/domain"
)

var (
	searchSym   string
	searchLimit int
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search indexed EDINET filings for a symbol",
	Long: `Search the local filing catalog for an issuer. A stale or empty
index is refreshed transparently before the query runs; a second
immediate invocation is served entirely from the catalog.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchSym, "sym", "", "company ticker symbol (securities code)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	_ = searchCmd.MarkFlagRequired("sym")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if services == nil || services.Search == nil {
		return errors.New("search service not configured")
	}

	docs, err := services.Search.Search(cmd.Context(), domain.Query{
		Ticker: searchSym,
		Source: domain.SourceEDINET,
	}, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	cmd.Println("date\tsym\tname\tdocType\tformats")
	for i := range docs {
		doc := &docs[i]
		cmd.Printf("%s\t%s\t%s\t%s\t%s\n",
			doc.DateString(), doc.Ticker, doc.CompanyName, doc.FilingType, doc.Format)
	}
	return nil
}
