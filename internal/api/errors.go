package api

import "fmt"

// StatusError means the backend answered with a 4xx/5xx status.
type StatusError struct {
	Status  int
	Path    string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: status %d", e.Path, e.Status)
}

// RequestError means the request never produced an HTTP response: connection
// refused, DNS failure, timeout. Distinct from StatusError so callers can
// tell "server said no" from "could not reach server".
type RequestError struct {
	Path string
	Err  error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: request failed: %v", e.Path, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// ShapeError means a 2xx response body did not match the expected envelope.
// Should not occur against a conforming backend.
type ShapeError struct {
	Path  string
	Field string
	Err   error
}

func (e *ShapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: unexpected response shape: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s: response missing %q", e.Path, e.Field)
}

func (e *ShapeError) Unwrap() error { return e.Err }
