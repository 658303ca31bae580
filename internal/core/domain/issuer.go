package domain

// Issuer is one row of the EDINET issuer directory, keyed by EDINET
// code. The directory is the authoritative ticker→issuer mapping for
// the Japanese market; no hard-coded company list exists anywhere.
type Issuer struct {
	// EdinetCode is the canonical issuer id ("E" + 5 digits).
	EdinetCode string

	// SecuritiesCode is the listed code as EDINET spells it: a 5-digit
	// string with a trailing "0" (e.g. "72030" for ticker 7203).
	// Empty for unlisted filers.
	SecuritiesCode string

	// Name is the submitter name in Japanese.
	Name string

	// NameEN is the submitter name in English, when registered.
	NameEN string

	// Industry is the filer's industry classification.
	Industry string

	// FiscalYearEnd is the filer's closing date (e.g. "3月31日").
	FiscalYearEnd string

	// Address is the registered address.
	Address string
}

// TickerCandidates returns the lookup keys to try for a caller-supplied
// ticker, in order: the input verbatim, the 4-digit form with a "0"
// appended, and the 5-digit form with the trailing "0" stripped.
// First hit wins.
func TickerCandidates(ticker string) []string {
	candidates := []string{ticker}
	if isDigits(ticker) {
		switch {
		case len(ticker) == 4:
			candidates = append(candidates, ticker+"0")
		case len(ticker) == 5 && ticker[4] == '0':
			candidates = append(candidates, ticker[:4])
		}
	}
	return candidates
}
