package client

import (
	"errors"
	"fmt"
	"net/http"
)

// TransportError marks an infrastructure failure: the server was unreachable,
// answered with a 5xx, or produced a body that could not be decoded. Callers
// branch on this type to decide whether falling back to cached data is
// appropriate.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: server error (status %d)", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is an application-level rejection (4xx). The server handled the
// request and said no; falling back to cached data would hide a real problem.
type APIError struct {
	StatusCode int
	Message    string
	Field      string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request rejected (status %d)", e.StatusCode)
}

// IsInfrastructure reports whether err means the canonical store could not
// answer at all, as opposed to answering with a rejection.
func IsInfrastructure(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

func IsValidation(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == http.StatusBadRequest
}

func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == http.StatusNotFound
}

func IsAuth(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) &&
		(ae.StatusCode == http.StatusUnauthorized || ae.StatusCode == http.StatusForbidden)
}
