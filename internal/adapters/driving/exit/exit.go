// Package exit maps errors onto the documented process exit codes.
package exit

import (
	"errors"

	"github.com/fast10k/fast10k-cli/internal/adapters/driven/httpx"
	"github.com/fast10k/fast10k-cli/internal/core/domain"
)

// Documented exit codes.
const (
	OK            = 0
	Failure       = 1
	Usage         = 2
	UnknownIssuer = 3
	Transport     = 4
	Store         = 5
)

// Code classifies an error into its exit code.
func Code(err error) int {
	var statusErr *httpx.StatusError
	switch {
	case err == nil:
		return OK
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnsupportedFormat):
		return Usage
	case errors.Is(err, domain.ErrUnknownIssuer):
		return UnknownIssuer
	case errors.Is(err, domain.ErrAuthRequired), errors.As(err, &statusErr):
		return Transport
	case errors.Is(err, domain.ErrStore):
		return Store
	default:
		return Failure
	}
}
