package edinetcli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fast10k/fast10k-cli/internal/core/domain"
	"github.com/fast10k/fast10k-cli/internal/sources/edinet"
)

var (
	readSections int
	readPreview  int
)

var readCmd = &cobra.Command{
	Use:   "read <docid>",
	Short: "Read a downloaded filing package",
	Long: `Extract classified sections with text previews from a downloaded
filing package. The document must have been downloaded first; its
package is located through the catalog's content path.`,
	Args: cobra.ExactArgs(1),
	RunE: runRead,
}

func init() {
	readCmd.Flags().IntVar(&readSections, "sections", edinet.DefaultSectionLimit, "maximum number of sections")
	readCmd.Flags().IntVar(&readPreview, "preview", edinet.DefaultPreviewLength, "preview length in characters")
	rootCmd.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
	if services == nil || services.Documents == nil {
		return errors.New("document store not configured")
	}
	docID := args[0]

	doc, err := services.Documents.GetDocument(cmd.Context(), domain.SourceEDINET, docID)
	if err != nil {
		return fmt.Errorf("looking up %s: %w", docID, err)
	}
	if doc.ContentPath == "" {
		return fmt.Errorf("%w: %s has not been downloaded yet", domain.ErrNotFound, docID)
	}

	sections, err := edinet.ReadZip(doc.ContentPath, readSections, readPreview)
	if err != nil {
		return fmt.Errorf("reading %s: %w", doc.ContentPath, err)
	}
	if len(sections) == 0 {
		cmd.Println("No readable sections in package.")
		return nil
	}

	cmd.Printf("%s - %s (%s)\n", doc.ID, doc.CompanyName, doc.DateString())
	for i := range sections {
		section := &sections[i]
		cmd.Printf("\n=== %s (%s, %d chars) ===\n", section.SectionType, section.Filename, section.FullLength)
		cmd.Println(strings.TrimRight(section.Content, "\n"))
	}

	// The first section doubles as the catalog preview for search.
	first := sections[0].Content
	if doc.ContentPreview == "" && first != "" {
		doc.ContentPreview = first
		if err := services.Documents.UpsertDocument(cmd.Context(), doc); err != nil {
			return err
		}
	}
	return nil
}
