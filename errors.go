package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

var (
	errAuthentication = errors.New("app verification token mismatch")
	errMissingEvent   = errors.New("event_callback without event payload")
)

// ConfigurationError reports credentials missing from the environment.
// It is fatal at startup; the server never starts without them.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required environment variables: %s", strings.Join(e.Missing, ", "))
}

// ServiceUnavailableError wraps a failed call to a downstream service.
// It propagates as the invocation's failure; no retry is attempted.
type ServiceUnavailableError struct {
	Service string
	Err     error
}

func (e *ServiceUnavailableError) Error() string {
	return fmt.Sprintf("%s: service unavailable: %v", e.Service, e.Err)
}

// Cause returns the underlying transport or API error.
func (e *ServiceUnavailableError) Cause() error {
	return e.Err
}

// ErrorResponse struct
type ErrorResponse struct {
	Error string `json:"error"`
}

// BadRequest response
func BadRequest(error string) (int, interface{}) {
	return http.StatusBadRequest, ErrorResponse{
		Error: getLocalizedMessage(error),
	}
}
