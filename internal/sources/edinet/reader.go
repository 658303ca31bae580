package edinet

import (
	"archive/zip"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DocumentSection is one extracted slice of a downloaded EDINET
// package: a classified section name, the file it came from, and a
// text preview.
type DocumentSection struct {
	SectionType string
	Filename    string
	Content     string
	FullLength  int
}

// Defaults for ReadZip.
const (
	DefaultSectionLimit  = 5
	DefaultPreviewLength = 500
)

// sectionNames maps the numeric prefixes of EDINET package filenames
// onto human-readable section names.
var sectionNames = []struct {
	marker string
	name   string
}{
	{"0000000_header", "Document Header"},
	{"0101010_honbun", "Business Overview"},
	{"0102010_honbun", "Risk Factors"},
	{"0103010_honbun", "Management Analysis"},
	{"0104010_honbun", "Financial Statements"},
	{"0105000_honbun", "Corporate Governance"},
	{"0105010_honbun", "Board of Directors"},
	{"0105020_honbun", "Executive Compensation"},
	{"0105100_honbun", "Management Policy"},
	{"0105120_honbun", "Dividend Policy"},
	{"0105310_honbun", "Related Party Transactions"},
	{"0105330_honbun", "Business Segments"},
}

// SectionType classifies a package filename.
func SectionType(filename string) string {
	base := filename
	if idx := strings.LastIndex(filename, "/"); idx >= 0 {
		base = filename[idx+1:]
	}

	for _, s := range sectionNames {
		if strings.Contains(base, s.marker) {
			return s.name
		}
	}
	switch {
	case strings.Contains(base, "honbun"):
		return "Content Section"
	case strings.Contains(filename, "fuzoku"):
		return "Attachment"
	case strings.HasSuffix(base, ".xbrl"):
		return "XBRL Data"
	default:
		return "Other"
	}
}

// filePriority orders package entries so the header and main content
// sections surface first.
func filePriority(filename string) int {
	switch {
	case strings.Contains(filename, "0000000_header"):
		return 0
	case strings.Contains(filename, "0101010_honbun"):
		return 1
	case strings.Contains(filename, "0102010_honbun"):
		return 2
	case strings.Contains(filename, "0103010_honbun"):
		return 3
	case strings.Contains(filename, "0104010_honbun"):
		return 4
	case strings.Contains(filename, "honbun"):
		return 10
	case strings.HasSuffix(filename, ".xbrl"):
		return 20
	default:
		return 99
	}
}

// ReadZip opens a downloaded EDINET package and extracts up to
// sectionLimit classified sections with text previews of previewLen
// runes. HTML content is reduced to text; XBRL and other files are
// previewed raw.
func ReadZip(path string, sectionLimit, previewLen int) ([]DocumentSection, error) {
	if sectionLimit <= 0 {
		sectionLimit = DefaultSectionLimit
	}
	if previewLen <= 0 {
		previewLen = DefaultPreviewLength
	}

	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening package %s: %w", path, err)
	}
	defer archive.Close()

	files := make([]*zip.File, len(archive.File))
	copy(files, archive.File)
	sort.SliceStable(files, func(i, j int) bool {
		return filePriority(files[i].Name) < filePriority(files[j].Name)
	})

	var sections []DocumentSection
	for _, file := range files {
		if len(sections) >= sectionLimit {
			break
		}
		name := file.Name
		// Attachments and anything that is neither content, header nor
		// XBRL carries no preview value.
		if strings.Contains(name, "fuzoku/") {
			continue
		}
		if !strings.Contains(name, "honbun") && !strings.Contains(name, "header") && !strings.HasSuffix(name, ".xbrl") {
			continue
		}

		content, err := readZipFile(file)
		if err != nil {
			continue
		}

		var preview string
		fullLen := len(content)
		if strings.HasSuffix(name, ".htm") || strings.HasSuffix(name, ".html") {
			text, err := extractText(content)
			if err != nil {
				continue
			}
			fullLen = len(text)
			preview = truncate(text, previewLen)
		} else {
			preview = truncate(content, previewLen)
		}

		sections = append(sections, DocumentSection{
			SectionType: SectionType(name),
			Filename:    name,
			Content:     preview,
			FullLength:  fullLen,
		})
	}

	return sections, nil
}

func readZipFile(file *zip.File) (string, error) {
	rc, err := file.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// extractText reduces an EDINET honbun HTML file to its visible text,
// one block element per line.
func extractText(html string) (string, error) {
	page, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	page.Find("p, div, td, th").Each(func(_ int, sel *goquery.Selection) {
		// Only leaf blocks; containers repeat their children's text.
		if sel.Children().Length() > 0 {
			return
		}
		text := strings.TrimSpace(sel.Text())
		if len([]rune(text)) > 3 {
			b.WriteString(text)
			b.WriteByte('\n')
		}
	})
	return b.String(), nil
}

// truncate shortens s to at most n runes, marking the cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
