package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a custom error type for API responses
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
	Status  int    `json:"-"`
	Details string `json:"details,omitempty"`
}

// Error returns the error message
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAPIError(code, message string, status int, details ...string) *APIError {
	err := &APIError{
		Code:    code,
		Message: message,
		Status:  status,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

var (
	ErrUnauthorized = NewAPIError("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
	ErrInternal     = NewAPIError("INTERNAL_SERVER_ERROR", "Internal server error", http.StatusInternalServerError)
)

func NewValidationError(message string) *APIError {
	return NewAPIError("VALIDATION_ERROR", message, http.StatusBadRequest)
}

func NewUnauthorizedError(message string) *APIError {
	return NewAPIError("UNAUTHORIZED", message, http.StatusUnauthorized)
}

// DataSourceError reports a failed read against a backing store.
type DataSourceError struct {
	Source string
	Err    error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source %s: %v", e.Source, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

func NewDataSourceError(source string, err error) *DataSourceError {
	return &DataSourceError{Source: source, Err: err}
}

// Wrap converts err into an APIError. APIErrors pass through unchanged and
// data source failures become 500s carrying the underlying message.
func Wrap(err error, code, message string, status int) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	var dsErr *DataSourceError
	if errors.As(err, &dsErr) {
		return NewAPIError("DATA_SOURCE_ERROR", dsErr.Error(), http.StatusInternalServerError)
	}
	return NewAPIError(code, message, status, err.Error())
}
