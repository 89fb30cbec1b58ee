package api

import (
	"errors"
	"fmt"
)

// ServiceError is a non-success response from the backend. Detail carries the
// server-provided message when the body had one.
type ServiceError struct {
	StatusCode int
	Detail     string
}

func (e *ServiceError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: HTTP %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("api: HTTP %d", e.StatusCode)
}

// TransportError means the call produced no response at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "api: transport: " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// Detail extracts the server-provided detail from err, if any.
func Detail(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Detail
	}
	return ""
}
