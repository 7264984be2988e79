package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected int
	}{
		{"not found", ErrCodeNotFound, http.StatusNotFound},
		{"already exists", ErrCodeAlreadyExists, http.StatusConflict},
		{"concurrent modification", ErrCodeConcurrentMod, http.StatusConflict},
		{"duplicate receipt", ErrCodeDuplicateReceipt, http.StatusConflict},
		{"order not editable", ErrCodeOrderNotEditable, http.StatusUnprocessableEntity},
		{"invalid transition", ErrCodeInvalidTransition, http.StatusUnprocessableEntity},
		{"item already received", ErrCodeItemAlreadyReceived, http.StatusUnprocessableEntity},
		{"validation", ErrCodeValidation, http.StatusBadRequest},
		{"invalid quantity", ErrCodeInvalidQuantity, http.StatusBadRequest},
		{"invalid price", ErrCodeInvalidPrice, http.StatusBadRequest},
		{"invalid date", ErrCodeInvalidDate, http.StatusBadRequest},
		{"bad request", ErrCodeBadRequest, http.StatusBadRequest},
		{"store error", ErrCodeStore, http.StatusInternalServerError},
		{"internal", ErrCodeInternal, http.StatusInternalServerError},
		{"request too large", ErrCodeRequestEntityTooBig, http.StatusRequestEntityTooLarge},
		{"unknown code falls back to 500", "SOMETHING_ELSE", http.StatusInternalServerError},
		{"empty code falls back to 500", "", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse(map[string]string{"key": "value"})

	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
	assert.Nil(t, resp.Meta)
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	t.Run("exact page division", func(t *testing.T) {
		resp := NewSuccessResponseWithMeta([]string{"a", "b"}, 40, 1, 20)

		assert.True(t, resp.Success)
		assert.Equal(t, int64(40), resp.Meta.Total)
		assert.Equal(t, 1, resp.Meta.Page)
		assert.Equal(t, 20, resp.Meta.PageSize)
		assert.Equal(t, 2, resp.Meta.TotalPages)
	})

	t.Run("partial last page", func(t *testing.T) {
		resp := NewSuccessResponseWithMeta([]string{"a"}, 41, 2, 20)

		assert.Equal(t, 3, resp.Meta.TotalPages)
	})

	t.Run("empty result", func(t *testing.T) {
		resp := NewSuccessResponseWithMeta([]string{}, 0, 1, 20)

		assert.Equal(t, 0, resp.Meta.TotalPages)
	})
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(ErrCodeNotFound, "Order not found")

	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "Order not found", resp.Error.Message)
	assert.Empty(t, resp.Error.RequestID)
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	requestID := "req-12345"
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Resource not found", requestID)

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "Resource not found", resp.Error.Message)
	assert.Equal(t, requestID, resp.Error.RequestID)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "quantity", Message: "must be greater than zero"},
		{Field: "unit_price", Message: "must not be negative"},
	}

	resp := NewValidationErrorResponse("Validation failed", "req-999", details)

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "Validation failed", resp.Error.Message)
	assert.Equal(t, "req-999", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "quantity", resp.Error.Details[0].Field)
}

func TestDefaultListRequest(t *testing.T) {
	req := DefaultListRequest()

	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 20, req.PageSize)
	assert.Equal(t, "created_at", req.OrderBy)
	assert.Equal(t, "desc", req.OrderDir)
}
