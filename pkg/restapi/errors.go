package restapi

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors, one per failure kind. Every typed error below matches its
// sentinel with errors.Is so callers can branch without a type assertion.
var (
	ErrValidation        = errors.New("restapi: invalid parameters")
	ErrUnsupportedMethod = errors.New("restapi: unsupported method")
	ErrEmptyResponse     = errors.New("restapi: empty response")
	ErrTransport         = errors.New("restapi: transport failure")
	ErrEncode            = errors.New("restapi: cannot encode parameter")
)

// ValidationError reports every required key that is absent or null, and,
// when the schema rejects unknown keys, every key the schema does not declare.
// It is returned before any network I/O.
type ValidationError struct {
	Missing []string
	Unknown []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required parameter(s): "+strings.Join(e.Missing, ", "))
	}
	if len(e.Unknown) > 0 {
		parts = append(parts, "unknown parameter(s): "+strings.Join(e.Unknown, ", "))
	}
	return "restapi: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// UnsupportedMethodError is returned when a request carries a verb other than
// GET, PUT, POST or DELETE. The request is never sent.
type UnsupportedMethodError struct {
	Method string
}

func (e *UnsupportedMethodError) Error() string {
	return fmt.Sprintf("restapi: unsupported method %q", e.Method)
}

func (e *UnsupportedMethodError) Is(target error) bool { return target == ErrUnsupportedMethod }

// EmptyResponseError is returned when the transport answered with a success
// status but no body.
type EmptyResponseError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("restapi: empty response body from %s %s (status %d)", e.Method, e.Path, e.StatusCode)
}

func (e *EmptyResponseError) Is(target error) bool { return target == ErrEmptyResponse }

// TransportError covers network failures (Err set, StatusCode zero) and
// non-2xx HTTP responses (StatusCode set, Body holding whatever the server
// sent). Err is exposed through Unwrap so url.Error, context.Canceled and
// friends stay reachable with errors.Is / errors.As.
type TransportError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string
	Body       []byte
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("restapi: %s %s failed | %v", e.Method, e.Path, e.Err)
	}
	return fmt.Sprintf("restapi: %s %s returned http status %d", e.Method, e.Path, e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// EncodeError is returned when a parameter value has a type the serializer
// cannot render.
type EncodeError struct {
	Key   string
	Value any
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("restapi: cannot encode parameter %q of type %T", e.Key, e.Value)
}

func (e *EncodeError) Is(target error) bool { return target == ErrEncode }
