package dto

import "net/http"

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeValidation is used for request validation failures
	ErrCodeValidation = "VALIDATION_ERROR"
)

// Domain error codes surfaced by the order lifecycle. These match the codes
// carried by shared.DomainError so handlers can map them without translation.
const (
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeAlreadyExists       = "ALREADY_EXISTS"
	ErrCodeConcurrentMod       = "CONCURRENT_MODIFICATION"
	ErrCodeOrderNotEditable    = "ORDER_NOT_EDITABLE"
	ErrCodeInvalidTransition   = "INVALID_TRANSITION"
	ErrCodeItemAlreadyReceived = "ITEM_ALREADY_RECEIVED"
	ErrCodeDuplicateReceipt    = "DUPLICATE_RECEIPT"
	ErrCodeStore               = "STORE_ERROR"
	ErrCodeInvalidQuantity     = "INVALID_QUANTITY"
	ErrCodeInvalidPrice        = "INVALID_PRICE"
	ErrCodeInvalidDate         = "INVALID_DATE"
	ErrCodeRequestEntityTooBig = "REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,
	ErrCodeStore:    http.StatusInternalServerError,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeInvalidQuantity: http.StatusBadRequest,
	ErrCodeInvalidPrice:    http.StatusBadRequest,
	ErrCodeInvalidDate:     http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,

	// Conflicts -> 409
	ErrCodeConcurrentMod:    http.StatusConflict,
	ErrCodeDuplicateReceipt: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeOrderNotEditable:    http.StatusUnprocessableEntity,
	ErrCodeInvalidTransition:   http.StatusUnprocessableEntity,
	ErrCodeItemAlreadyReceived: http.StatusUnprocessableEntity,

	// Payload size -> 413
	ErrCodeRequestEntityTooBig: http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
