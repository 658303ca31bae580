// Package domain contains the core entities of fast10k: documents,
// issuers, filing types, formats and search queries. It has no
// dependencies outside the standard library.
package domain
