// Package services implements the core use-cases: the indexer that
// reconciles day-indexed feeds into the catalog, the download pipeline
// and the catalog search.
package services
