// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package api

import (
	"bytes"
	"fmt"
)

// RequestErrorType categorizes registry call failures for programmatic
// handling. The cache layer uses it to decide what to retain; views use it
// to pick fallback content.
type RequestErrorType int

const (
	// ErrorConnectionFailed indicates the request never reached the
	// registry or no response arrived.
	ErrorConnectionFailed RequestErrorType = iota

	// ErrorHTTPStatus indicates a non-2xx response with a server-supplied
	// (or generic) message.
	ErrorHTTPStatus

	// ErrorDecodeFailed indicates the response body was not the expected
	// JSON shape.
	ErrorDecodeFailed

	// ErrorEncodeFailed indicates the request payload could not be
	// serialized. Treated as a client bug, not a registry fault.
	ErrorEncodeFailed
)

// String returns the error type as a string for logging.
func (t RequestErrorType) String() string {
	switch t {
	case ErrorConnectionFailed:
		return "CONNECTION_FAILED"
	case ErrorHTTPStatus:
		return "HTTP_STATUS"
	case ErrorDecodeFailed:
		return "DECODE_FAILED"
	case ErrorEncodeFailed:
		return "ENCODE_FAILED"
	default:
		return "UNKNOWN"
	}
}

// RequestError provides structured error information for registry calls.
type RequestError struct {
	// Type categorizes the error for programmatic handling.
	Type RequestErrorType

	// Op is the logical operation, e.g. "complaints.delete".
	Op string

	// StatusCode is the HTTP status for ErrorHTTPStatus, else 0.
	StatusCode int

	// Message is a human-readable description. For HTTP failures this is
	// the server-provided message when one was present.
	Message string

	// Detail carries technical context for debugging (URL, decode error).
	Detail string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying error to errors.Is/As.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// FullError returns a detailed message including operation and status.
func (e *RequestError) FullError() string {
	var buf bytes.Buffer
	buf.WriteString(e.Message)
	if e.Op != "" {
		buf.WriteString(fmt.Sprintf(" (op: %s)", e.Op))
	}
	if e.StatusCode != 0 {
		buf.WriteString(fmt.Sprintf(" (status: %d)", e.StatusCode))
	}
	if e.Detail != "" {
		buf.WriteString("\n\nDetails: ")
		buf.WriteString(e.Detail)
	}
	return buf.String()
}

// IsNotFound reports whether err is a registry 404.
func IsNotFound(err error) bool {
	re, ok := err.(*RequestError)
	return ok && re.Type == ErrorHTTPStatus && re.StatusCode == 404
}

// IsConflict reports whether err is a registry 409, e.g. deleting an agency
// that still owns complaints.
func IsConflict(err error) bool {
	re, ok := err.(*RequestError)
	return ok && re.Type == ErrorHTTPStatus && re.StatusCode == 409
}
