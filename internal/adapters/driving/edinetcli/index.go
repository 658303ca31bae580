package edinetcli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fast10k/fast10k-cli/internal/core/domain"
)

var (
	indexBuildFrom string
	indexBuildTo   string
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Maintain the EDINET filing index",
}

var indexStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index statistics",
	RunE:  runIndexStats,
}

var indexUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the index from the last indexed date to today",
	RunE:  runIndexUpdate,
}

var indexBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the index for an inclusive date range",
	RunE:  runIndexBuild,
}

var indexClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Purge indexed documents (issuer directory untouched)",
	RunE:  runIndexClear,
}

func init() {
	indexBuildCmd.Flags().StringVar(&indexBuildFrom, "from", "", "start date (YYYY-MM-DD)")
	indexBuildCmd.Flags().StringVar(&indexBuildTo, "to", "", "end date (YYYY-MM-DD)")
	_ = indexBuildCmd.MarkFlagRequired("from")
	_ = indexBuildCmd.MarkFlagRequired("to")

	indexCmd.AddCommand(indexStatsCmd, indexUpdateCmd, indexBuildCmd, indexClearCmd)
	rootCmd.AddCommand(indexCmd)
}

func requireIndexer() error {
	if services == nil || services.Indexer == nil {
		return errors.New("indexer not configured")
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q (expected YYYY-MM-DD)", domain.ErrInvalidInput, s)
	}
	return d, nil
}

func runIndexStats(cmd *cobra.Command, args []string) error {
	if err := requireIndexer(); err != nil {
		return err
	}

	stats, err := services.Indexer.Stats(cmd.Context())
	if err != nil {
		return err
	}

	cmd.Println("EDINET Index Statistics:")
	cmd.Printf("Total EDINET documents: %d\n", stats.Documents)
	if !stats.Empty() {
		cmd.Printf("Date range: %s to %s\n",
			stats.MinDate.Format(domain.DateLayout), stats.MaxDate.Format(domain.DateLayout))
	}
	if services.Issuers != nil {
		if n, err := services.Issuers.CountIssuers(cmd.Context()); err == nil {
			cmd.Printf("Issuer directory: %d issuer(s)\n", n)
		}
	}
	return nil
}

func runIndexUpdate(cmd *cobra.Command, args []string) error {
	if err := requireIndexer(); err != nil {
		return err
	}

	n, err := services.Indexer.Update(cmd.Context())
	if err != nil {
		return fmt.Errorf("index update failed: %w", err)
	}
	cmd.Printf("Indexed %d document(s)\n", n)
	return runIndexStats(cmd, args)
}

func runIndexBuild(cmd *cobra.Command, args []string) error {
	if err := requireIndexer(); err != nil {
		return err
	}

	from, err := parseDate(indexBuildFrom)
	if err != nil {
		return err
	}
	to, err := parseDate(indexBuildTo)
	if err != nil {
		return err
	}

	n, err := services.Indexer.Build(cmd.Context(), from, to)
	if err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}
	cmd.Printf("Indexed %d document(s)\n", n)
	return runIndexStats(cmd, args)
}

func runIndexClear(cmd *cobra.Command, args []string) error {
	if err := requireIndexer(); err != nil {
		return err
	}

	if err := services.Indexer.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("index clear failed: %w", err)
	}
	cmd.Println("Index cleared")
	return nil
}
