package kucoin

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCredentials is returned when a private endpoint is called on a
	// client built without an API key and secret.
	ErrNoCredentials = errors.New("kucoin: private endpoint requires credentials")
	// ErrUnboundPath is returned when an endpoint's path still holds a
	// {placeholder} at call time, or Bind got the wrong number of values.
	ErrUnboundPath = errors.New("kucoin: unbound path placeholder")
	// ErrInvalidArg covers argument checks done by typed methods before any
	// request is built.
	ErrInvalidArg = errors.New("kucoin: invalid argument")
)

// APIError is an exchange error code carried inside a 2xx response envelope.
// Only typed Client methods return it; Client.Do hands back the raw envelope.
type APIError struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("kucoin: api error (code: %s, message: %s)", e.Code, e.Msg)
}

// IsAPIError reports whether err carries an exchange error with the given
// code. Pass an empty code to match any APIError.
func IsAPIError(err error, code string) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return code == "" || apiErr.Code == code
}
