package edinet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/fast10k/fast10k-cli/internal/core/domain"
	"github.com/fast10k/fast10k-cli/internal/logger"
)

// EdinetcodeDlInfo.csv column positions. The file is Shift-JIS encoded
// with one metadata line followed by a Japanese header row.
const (
	colEdinetCode = iota
	colType
	colSubmitterName
	colSubmitterNameEN
	colSubmitterNameYomi
	colAddress
	colIndustry
	colSecuritiesCode
	colFilerID
	colFiscalYearEnd

	staticColumns = 10
)

// LoadStaticCSV parses the FSA's EdinetcodeDlInfo.csv into issuer
// records, transcoding from Shift-JIS. Trailing blank or short rows
// are tolerated.
func LoadStaticCSV(path string) ([]domain.Issuer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening static CSV: %w", err)
	}
	defer f.Close()

	return parseStaticCSV(f)
}

func parseStaticCSV(r io.Reader) ([]domain.Issuer, error) {
	decoded := transform.NewReader(r, japanese.ShiftJIS.NewDecoder())

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1 // rows can be ragged
	reader.LazyQuotes = true

	var issuers []domain.Issuer
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading static CSV line %d: %w", line+1, err)
		}
		line++

		// Line 1 is download metadata, line 2 the Japanese header.
		if line <= 2 {
			continue
		}
		if len(record) < staticColumns {
			logger.Debug("static CSV line %d: %d columns, skipping", line, len(record))
			continue
		}
		if record[colEdinetCode] == "" {
			continue
		}

		issuers = append(issuers, domain.Issuer{
			EdinetCode:     record[colEdinetCode],
			SecuritiesCode: record[colSecuritiesCode],
			Name:           record[colSubmitterName],
			NameEN:         record[colSubmitterNameEN],
			Industry:       record[colIndustry],
			FiscalYearEnd:  record[colFiscalYearEnd],
			Address:        record[colAddress],
		})
	}

	if len(issuers) == 0 {
		return nil, fmt.Errorf("%w: static CSV contains no issuer rows", domain.ErrInvalidInput)
	}
	return issuers, nil
}
