package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrValidation          = NewDomainError("VALIDATION_ERROR", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENT_MODIFICATION", "Resource was modified by another process")
	ErrOrderNotEditable    = NewDomainError("ORDER_NOT_EDITABLE", "Order can only be modified in draft status")
	ErrInvalidTransition   = NewDomainError("INVALID_TRANSITION", "Status transition not allowed")
	ErrItemAlreadyReceived = NewDomainError("ITEM_ALREADY_RECEIVED", "Item has already been received")
	ErrDuplicateReceipt    = NewDomainError("DUPLICATE_RECEIPT", "Receipt was already processed")
	ErrStore               = NewDomainError("STORE_ERROR", "Storage operation failed")
)

// Validation error codes for specific field violations
const (
	CodeInvalidQuantity = "INVALID_QUANTITY"
	CodeInvalidPrice    = "INVALID_PRICE"
	CodeInvalidDate     = "INVALID_DATE"
)
