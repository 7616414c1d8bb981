// Package resolve turns raw API bodies into typed payloads.
package resolve

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ParseError reports a body that could not be decoded into the expected payload.
type ParseError struct {
	Kind string // payload kind, e.g. "profile"
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Kind, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Object decodes body into a T. The JSON root must be an object; unknown
// fields are ignored and missing ones keep their zero value.
func Object[T any](kind string, body []byte) (*T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &ParseError{Kind: kind, Err: fmt.Errorf("root is not an object")}
	}

	var v T
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return nil, &ParseError{Kind: kind, Err: err}
	}
	return &v, nil
}
