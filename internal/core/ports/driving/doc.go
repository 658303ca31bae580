// Package driving defines the service interfaces consumed by the CLI
// and TUI adapters.
package driving
