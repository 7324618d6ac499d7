package kcsc

import (
	"errors"
	"fmt"
)

// Sentinel errors for user-recoverable conditions. Callers should prompt the
// user to rephrase rather than treat these as defects.
var (
	ErrNoMatch      = errors.New("no matching standard found")
	ErrEmptyContent = errors.New("standard content is empty")
)

// TransportError is a network or HTTP-level failure reaching the KCSC API:
// connection refused, timeout, or a non-2xx status. URL is key-redacted.
type TransportError struct {
	URL        string
	StatusCode int // 0 when the request never completed
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("kcsc: unexpected status %d from %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("kcsc: request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UnexpectedContentTypeError means the API returned an HTML document instead
// of JSON. This is a strong signal of credential or endpoint misconfiguration,
// not a transient failure, and is reported distinctly from parse errors.
// URL and Excerpt are key-redacted; Excerpt is capped at 500 characters.
type UnexpectedContentTypeError struct {
	URL     string
	Excerpt string
}

func (e *UnexpectedContentTypeError) Error() string {
	return fmt.Sprintf("kcsc: API returned HTML instead of JSON (check key and endpoint)\n- url: %s\n- body: %s", e.URL, e.Excerpt)
}

// FormatError is a structured parse failure or response shape mismatch, such
// as a listing that is not an array. URL and Excerpt are key-redacted.
type FormatError struct {
	URL     string
	Excerpt string
	Err     error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("kcsc: unexpected response from %s: %v\n- body: %s", e.URL, e.Err, e.Excerpt)
	}
	return fmt.Sprintf("kcsc: unexpected response shape from %s\n- body: %s", e.URL, e.Excerpt)
}

func (e *FormatError) Unwrap() error { return e.Err }
