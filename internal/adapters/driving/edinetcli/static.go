package edinetcli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fast10k/fast10k-cli/internal/sources/edinet"
)

var (
	loadStaticCSVPath string
	searchStaticLimit int
)

var loadStaticCmd = &cobra.Command{
	Use:   "load-static",
	Short: "Load the issuer directory from EdinetcodeDlInfo.csv",
	Long: `Replace the issuer directory with the contents of the FSA's
EdinetcodeDlInfo.csv (Shift-JIS). The load is a single transaction;
a partial directory is never observed.`,
	RunE: runLoadStatic,
}

var searchStaticCmd = &cobra.Command{
	Use:   "search-static <query>",
	Short: "Search the issuer directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearchStatic,
}

func init() {
	loadStaticCmd.Flags().StringVar(&loadStaticCSVPath, "csv-path", "static/EdinetcodeDlInfo.csv", "path to EdinetcodeDlInfo.csv")
	searchStaticCmd.Flags().IntVarP(&searchStaticLimit, "limit", "n", 20, "maximum number of results")
	rootCmd.AddCommand(loadStaticCmd, searchStaticCmd)
}

func runLoadStatic(cmd *cobra.Command, args []string) error {
	if services == nil || services.Issuers == nil {
		return errors.New("issuer store not configured")
	}

	issuers, err := edinet.LoadStaticCSV(loadStaticCSVPath)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", loadStaticCSVPath, err)
	}

	n, err := services.Issuers.LoadIssuers(cmd.Context(), issuers)
	if err != nil {
		return fmt.Errorf("loading issuer directory: %w", err)
	}
	cmd.Printf("Loaded %d issuer(s)\n", n)
	return nil
}

func runSearchStatic(cmd *cobra.Command, args []string) error {
	if services == nil || services.Issuers == nil {
		return errors.New("issuer store not configured")
	}

	issuers, err := services.Issuers.SearchIssuers(cmd.Context(), args[0], searchStaticLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	cmd.Println("edinet_code\tsecurities_code\tsubmitter_name\tsubmitter_name_en\tindustry\tfiscal_year_end\taddress")
	for i := range issuers {
		issuer := &issuers[i]
		cmd.Printf("%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			issuer.EdinetCode, issuer.SecuritiesCode, issuer.Name,
			issuer.NameEN, issuer.Industry, issuer.FiscalYearEnd, issuer.Address)
	}
	return nil
}
