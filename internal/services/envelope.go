// Package services is the typed per-resource layer over the API client. Each
// function maps to one backend operation and does envelope unwrapping only:
// no business logic, no retries, no caching.
package services

import (
	"encoding/json"

	"github.com/awsomeshop/awsomeshop/internal/api"
)

// unwrap extracts the named field from a `{ "<field>": ... }` envelope. A
// missing field or malformed body yields a ShapeError, never a zero value.
func unwrap[T any](data []byte, path, field string) (T, error) {
	var zero T
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return zero, &api.ShapeError{Path: path, Field: field, Err: err}
	}
	raw, ok := envelope[field]
	if !ok {
		return zero, &api.ShapeError{Path: path, Field: field}
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, &api.ShapeError{Path: path, Field: field, Err: err}
	}
	return v, nil
}
