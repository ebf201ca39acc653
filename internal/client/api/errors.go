package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrMalformedResponse = errors.New("malformed server response")
)

// Error is a normalized call failure. Message is what the UI shows verbatim;
// Status is the HTTP status code, or 0 for transport-level failures where no
// response was received.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// Unwrap maps the failure onto the package sentinels so callers can use
// errors.Is without inspecting status codes.
func (e *Error) Unwrap() error {
	switch e.Status {
	case 0:
		return ErrUnavailable
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	}
	return nil
}

// missingField reports a response that arrived without the expected data key.
func missingField(name string) error {
	return fmt.Errorf("%w: missing %q field", ErrMalformedResponse, name)
}
