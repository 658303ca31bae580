package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fast10k/fast10k-cli/internal/core/domain"
)

var (
	searchTicker     string
	searchCompany    string
	searchFilingType string
	searchSource     string
	searchFromDate   string
	searchToDate     string
	searchQuery      string
	searchLimit      int
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the filing catalog",
	Long: `Search indexed filing metadata. Any combination of filters may be
given; relaxing a filter only grows the result set. EDINET searches
refresh a stale index transparently before querying.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchTicker, "ticker", "t", "", "company ticker symbol")
	searchCmd.Flags().StringVarP(&searchCompany, "company", "c", "", "company name substring")
	searchCmd.Flags().StringVarP(&searchFilingType, "filing-type", "f", "", "filing type")
	searchCmd.Flags().StringVarP(&searchSource, "source", "s", "", "source (edgar, edinet)")
	searchCmd.Flags().StringVar(&searchFromDate, "from-date", "", "start date (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchToDate, "to-date", "", "end date (YYYY-MM-DD)")
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "free-text query")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if services == nil || services.Search == nil {
		return errors.New("search service not configured")
	}

	q := domain.Query{
		Ticker:      searchTicker,
		CompanyName: searchCompany,
		FilingType:  parseOptionalFilingType(searchFilingType),
		TextQuery:   searchQuery,
	}
	if searchSource != "" {
		source, err := domain.ParseSource(searchSource)
		if err != nil {
			return err
		}
		q.Source = source
	}
	var err error
	if q.DateFrom, err = parseDate(searchFromDate); err != nil {
		return err
	}
	if q.DateTo, err = parseDate(searchToDate); err != nil {
		return err
	}

	docs, err := services.Search.Search(cmd.Context(), q, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	printDocuments(cmd, docs)
	return nil
}

// printDocuments writes tab-separated rows, one per document.
func printDocuments(cmd *cobra.Command, docs []domain.Document) {
	if len(docs) == 0 {
		cmd.Println("No documents found.")
		return
	}

	cmd.Println("date\tsym\tname\tdocType\tsource\tformat")
	for i := range docs {
		doc := &docs[i]
		cmd.Printf("%s\t%s\t%s\t%s\t%s\t%s\n",
			doc.DateString(), doc.Ticker, doc.CompanyName,
			doc.FilingType, doc.Source, doc.Format)
	}
}
