package service

import (
	"errors"
	"fmt"

	"github.com/f1dash/f1-data-service/pkg/upstream/ergast"
	"github.com/f1dash/f1-data-service/pkg/upstream/sessions"
)

// Error taxonomy of the service layer. Every fetcher returns one of
// these (wrapped with context) or nil; the transport boundary maps them
// to status codes. Cache-store failures never appear here, the store
// absorbs them.
var (
	// ErrInvalidParameter indicates a year, round or session code
	// outside the plausible range. Surfaced as a client error.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUpstreamUnavailable indicates an unreachable provider or an
	// unexpected provider status. Surfaced as a server error, never
	// retried automatically.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrNoDataAvailable indicates the provider was reached but has no
	// data for the requested key.
	ErrNoDataAvailable = errors.New("no data available")
)

func invalidParamf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

func mapNoData(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNoDataAvailable, fmt.Sprintf(format, args...))
}

// mapUpstreamErr translates provider-level errors into the service
// taxonomy. Empty or missing data is NoDataAvailable; everything else
// from a provider is UpstreamUnavailable.
func mapUpstreamErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ergast.ErrNoData) || errors.Is(err, sessions.ErrNoData) {
		return fmt.Errorf("%w: %v", ErrNoDataAvailable, err)
	}
	return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
}
