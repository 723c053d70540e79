package forecast

import (
	"errors"
	"fmt"
)

var (
	ErrNetwork           = errors.New("forecast: network error")
	ErrMalformedResponse = errors.New("forecast: malformed response")
	ErrAPIRejected       = errors.New("forecast: api rejected request")

	// Preconditions checked by callers before Fetch.
	ErrInvalidRegion     = errors.New("forecast: invalid region")
	ErrMissingCredential = errors.New("forecast: missing credential")
)

// NetworkError means the outbound call did not complete.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", ErrNetwork, e.Err)
}

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

func (e *NetworkError) Unwrap() error { return e.Err }

// MalformedResponseError names the field that could not be decoded.
type MalformedResponseError struct {
	Field string
	Err   error
}

func (e *MalformedResponseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", ErrMalformedResponse, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrMalformedResponse, e.Field, e.Err)
}

func (e *MalformedResponseError) Is(target error) bool { return target == ErrMalformedResponse }

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// APIRejectedError carries the raw payload so callers can show it.
type APIRejectedError struct {
	StatusCode int
	Reason     string
	Raw        []byte
}

func (e *APIRejectedError) Error() string {
	return fmt.Sprintf("%s: %s (status %d)", ErrAPIRejected, e.Reason, e.StatusCode)
}

func (e *APIRejectedError) Is(target error) bool { return target == ErrAPIRejected }
