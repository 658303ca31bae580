package edinet

import "encoding/json"

// manifestResponse is the daily manifest returned by
// /api/v2/documents.json for one calendar date.
type manifestResponse struct {
	Metadata *manifestMetadata `json:"metadata"`
	Results  []ManifestEntry   `json:"results"`
}

type manifestMetadata struct {
	Title     string `json:"title"`
	Resultset struct {
		Count int `json:"count"`
	} `json:"resultset"`
}

// ManifestEntry is one filing in the daily manifest. The field set
// mirrors the API response; the whole record is preserved verbatim in
// document metadata for forensic reconstruction.
type ManifestEntry struct {
	SeqNumber        int    `json:"seqNumber"`
	DocID            string `json:"docID"`
	EdinetCode       string `json:"edinetCode"`
	SecCode          string `json:"secCode"`
	JCN              string `json:"JCN"`
	FilerName        string `json:"filerName"`
	FundCode         string `json:"fundCode"`
	OrdinanceCode    string `json:"ordinanceCode"`
	FormCode         string `json:"formCode"`
	DocTypeCode      string `json:"docTypeCode"`
	PeriodStart      string `json:"periodStart"`
	PeriodEnd        string `json:"periodEnd"`
	SubmitDateTime   string `json:"submitDateTime"`
	DocDescription   string `json:"docDescription"`
	IssuerEdinetCode string `json:"issuerEdinetCode"`
	SubjectEdinetCod string `json:"subjectEdinetCode"`
	WithdrawalStatus string `json:"withdrawalStatus"`
	XbrlFlag         string `json:"xbrlFlag"`
	PdfFlag          string `json:"pdfFlag"`
	AttachDocFlag    string `json:"attachDocFlag"`
	EnglishDocFlag   string `json:"englishDocFlag"`
	CSVFlag          string `json:"csvFlag"`
	LegalStatus      string `json:"legalStatus"`
}

// rawMetadata flattens the manifest entry into the document metadata
// blob, dropping empty fields.
func (e *ManifestEntry) rawMetadata() map[string]string {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil
	}
	var all map[string]any
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil
	}

	meta := make(map[string]string, len(all))
	for k, v := range all {
		switch val := v.(type) {
		case string:
			if val != "" {
				meta[k] = val
			}
		case float64:
			if val != 0 {
				meta[k] = jsonNumber(val)
			}
		}
	}
	return meta
}

func jsonNumber(f float64) string {
	b, _ := json.Marshal(f)
	return string(b)
}
