// Package driven defines the interfaces the core depends on: the
// document store, the issuer directory and the source adapters.
// Concrete implementations live under internal/adapters/driven and
// internal/sources.
package driven
