package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"codeck-client/internal/models"
)

// Error is the uniform failure returned for any non-success status. Message
// carries the backend's error body when it decodes, else the HTTP status text.
type Error struct {
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// newStatusError builds an Error from a non-success response
func newStatusError(resp *http.Response) *Error {
	apiErr := &Error{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}

	var errResp models.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		apiErr.Message = errResp.Error
	}
	return apiErr
}

// statusIs reports whether err is an api.Error with the given status code
func statusIs(err error, code int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// IsUnauthorized reports whether err is a 401 authentication failure
func IsUnauthorized(err error) bool {
	return statusIs(err, http.StatusUnauthorized)
}

// IsForbidden reports whether err is a 403 authorization failure
func IsForbidden(err error) bool {
	return statusIs(err, http.StatusForbidden)
}

// IsNotFound reports whether err is a 404 for a missing entity
func IsNotFound(err error) bool {
	return statusIs(err, http.StatusNotFound)
}

// IsValidation reports whether err is a 400 validation failure
func IsValidation(err error) bool {
	return statusIs(err, http.StatusBadRequest)
}
