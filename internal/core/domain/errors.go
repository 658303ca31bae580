package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownIssuer indicates a ticker that resolves to no issuer.
	ErrUnknownIssuer = errors.New("unknown issuer")

	// ErrAuthRequired indicates a missing or rejected credential.
	// For EDINET this means EDINET_API_KEY is unset or refused.
	ErrAuthRequired = errors.New("authentication required")

	// ErrUnsupportedFormat indicates a format outside the source's
	// allowed set.
	ErrUnsupportedFormat = errors.New("unsupported format for source")

	// ErrNotImplemented indicates a reserved seam (TDNet).
	ErrNotImplemented = errors.New("not implemented")

	// ErrStore indicates the underlying persistence failed. Fatal to
	// the current operation; the catalog must not silently diverge.
	ErrStore = errors.New("store failure")
)
