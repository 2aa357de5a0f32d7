package client

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an API failure. The kind is set where the error
// originates, never inferred later from message text.
type ErrorKind int

const (
	// KindNetwork means the request never produced an HTTP response.
	KindNetwork ErrorKind = iota
	// KindAuth means the backend rejected the credentials (HTTP 401).
	KindAuth
	// KindNotFound means the resource does not exist (HTTP 404).
	KindNotFound
	// KindConflict means the request clashed with existing state (HTTP 409).
	KindConflict
	// KindInvalid means the backend rejected the request body (HTTP 400).
	KindInvalid
	// KindForbidden means the caller lacks access to the resource (HTTP 403).
	KindForbidden
	// KindServer means the backend failed (HTTP 5xx or anything unclassified).
	KindServer
	// KindNotReady means the endpoint is not implemented on this backend yet.
	KindNotReady
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalid:
		return "invalid"
	case KindForbidden:
		return "forbidden"
	case KindServer:
		return "server"
	case KindNotReady:
		return "not_ready"
	default:
		return "unknown"
	}
}

// APIError is the error type returned by all client operations.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an *APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Kind == kind
}

// kindForStatus maps an HTTP status to an error kind
func kindForStatus(status int) ErrorKind {
	switch {
	case status == 400:
		return KindInvalid
	case status == 401:
		return KindAuth
	case status == 403:
		return KindForbidden
	case status == 404:
		return KindNotFound
	case status == 409:
		return KindConflict
	default:
		return KindServer
	}
}
