package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_PassesAPIErrorThrough(t *testing.T) {
	invalid := NewValidationError("bbox must be minLng,minLat,maxLng,maxLat")
	wrapped := fmt.Errorf("parse: %w", invalid)

	got := Wrap(wrapped, "X", "y", http.StatusTeapot)

	assert.Same(t, invalid, got)
	assert.Equal(t, http.StatusBadRequest, got.Status)
}

func TestWrap_DataSourceErrorBecomes500(t *testing.T) {
	err := NewDataSourceError("mongo", fmt.Errorf("connection refused"))

	got := Wrap(fmt.Errorf("query pois: %w", err), "UNKNOWN_ERROR", "Unexpected error", http.StatusBadGateway)

	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.Equal(t, "DATA_SOURCE_ERROR", got.Code)
	assert.Contains(t, got.Message, "connection refused")
}

func TestWrap_PlainError(t *testing.T) {
	got := Wrap(fmt.Errorf("boom"), "UNKNOWN_ERROR", "Unexpected error", http.StatusInternalServerError)

	assert.Equal(t, "UNKNOWN_ERROR", got.Code)
	assert.Equal(t, "boom", got.Details)
}

func TestDataSourceError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("timeout")
	err := NewDataSourceError("redis", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "data source redis: timeout", err.Error())
}
