// Package edgar implements the source adapter for the SEC's EDGAR
// system: ticker→CIK resolution via the published company_tickers
// mapping, filing enumeration via the submissions feed, and artifact
// URL construction against the EDGAR archives.
package edgar
