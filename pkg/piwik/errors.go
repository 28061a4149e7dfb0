package piwik

import (
	"errors"
	"fmt"
)

// ErrNoEndpoint is returned when neither the parameter bag nor the
// configuration supplies an analytics endpoint.
var ErrNoEndpoint = errors.New("piwik: no analytics endpoint configured")

// TransportError describes a failed HTTP round-trip or a non-2xx reply.
// The compatibility surface (Client.API) swallows these into an absent
// result; Client.Do returns them so callers can tell "request failed"
// from "no data".
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("piwik: request %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("piwik: request %s: status %d", e.URL, e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }
