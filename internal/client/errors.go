package client

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a declared error response of the server
type APIError struct {
	Status  int
	Message string
	Field   string
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("api error %d: %s: %s", e.Status, e.Field, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 APIError
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized reports whether err is a 401 APIError
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// ContractError means the server answered with a status or body its route
// does not declare. The response is never handed to the caller.
type ContractError struct {
	Route  string
	Status int
	Err    error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("contract violation on %s (status %d): %v", e.Route, e.Status, e.Err)
}

func (e *ContractError) Unwrap() error {
	return e.Err
}
