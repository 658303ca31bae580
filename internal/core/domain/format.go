package domain

import (
	"fmt"
	"strings"
)

// Format is the serialization a document payload is fetched in.
type Format string

// The recognised payload formats.
const (
	FormatTxt      Format = "txt"
	FormatHTML     Format = "html"
	FormatXBRL     Format = "xbrl"
	FormatIXBRL    Format = "ixbrl"
	FormatPDF      Format = "pdf"
	FormatComplete Format = "complete"
)

// ParseFormat maps user input to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "txt", "text", "plain-text":
		return FormatTxt, nil
	case "html", "htm":
		return FormatHTML, nil
	case "xbrl", "xml":
		return FormatXBRL, nil
	case "ixbrl", "inline-xbrl", "inlinexbrl":
		return FormatIXBRL, nil
	case "pdf":
		return FormatPDF, nil
	case "complete", "all":
		return FormatComplete, nil
	default:
		return "", fmt.Errorf("%w: unsupported format %q (expected txt, html, xbrl, ixbrl, pdf or complete)", ErrInvalidInput, s)
	}
}

// String returns the catalog representation.
func (f Format) String() string {
	return string(f)
}

// Ext returns the on-disk file extension for the format.
func (f Format) Ext() string {
	switch f {
	case FormatTxt:
		return "txt"
	case FormatHTML, FormatIXBRL:
		return "htm"
	case FormatXBRL:
		return "xml"
	case FormatPDF:
		return "pdf"
	default:
		return "zip"
	}
}

// AllowedIn reports whether the format is valid for a source. EDINET
// serves no raw HTML or plain text; EDGAR serves no PDF artifact.
func (f Format) AllowedIn(s Source) bool {
	for _, a := range AllowedFormats(s) {
		if a == f {
			return true
		}
	}
	return false
}

// AllowedFormats returns the per-source allowed format set.
func AllowedFormats(s Source) []Format {
	switch s {
	case SourceEDGAR:
		return []Format{FormatTxt, FormatHTML, FormatXBRL, FormatIXBRL, FormatComplete}
	case SourceEDINET:
		return []Format{FormatXBRL, FormatPDF, FormatComplete}
	default:
		return nil
	}
}
