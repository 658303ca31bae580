// Package sqlite implements the document store and issuer directory on
// a single SQLite database file. Migrations are embedded and applied on
// open; the schema is wire-stable for external tooling.
package sqlite
