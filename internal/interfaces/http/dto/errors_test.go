package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{"ALREADY_EXISTS", http.StatusConflict},
		{"NOT_FOUND", http.StatusNotFound},
		{"REQUEST_FAILED", http.StatusBadRequest},
		{"INVALID_MAX_AMOUNT", http.StatusBadRequest},
		{"INVALID_CONTENT_TYPE", http.StatusBadRequest},
		{"ALREADY_ACTIVE", http.StatusUnprocessableEntity},
		{"FORBIDDEN", http.StatusForbidden},
		{"STORAGE_DISABLED", http.StatusServiceUnavailable},
		{CodeValidation, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeTokenExpired, http.StatusUnauthorized},
		{CodeTooLarge, http.StatusRequestEntityTooLarge},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID("ALREADY_EXISTS", "Category already exists", "req-123")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ALREADY_EXISTS", resp.Error.Code)
	assert.Equal(t, "Category already exists", resp.Error.Message)
	assert.Equal(t, "req-123", resp.Error.RequestID)
	assert.NotZero(t, resp.Error.Timestamp)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "name", Message: "This field is required"},
		{Field: "items[0].price", Message: "Invalid value"},
	}

	resp := NewValidationErrorResponse("Request validation failed", "req-789", details)

	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeValidation, resp.Error.Code)
	assert.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "items[0].price", resp.Error.Details[1].Field)
}

func TestResponseJSON(t *testing.T) {
	data, err := json.Marshal(NewSuccessResponseWithMeta([]string{"a"}, 41, 2, 20))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, true, decoded["success"])
	assert.NotContains(t, decoded, "error")

	meta := decoded["meta"].(map[string]any)
	assert.Equal(t, float64(41), meta["total"])
	assert.Equal(t, float64(3), meta["total_pages"])
}

func TestNewMeta(t *testing.T) {
	assert.Equal(t, 0, NewMeta(0, 1, 20).TotalPages)
	assert.Equal(t, 1, NewMeta(20, 1, 20).TotalPages)
	assert.Equal(t, 2, NewMeta(21, 1, 20).TotalPages)
	assert.Equal(t, 0, NewMeta(5, 1, 0).TotalPages)
}
