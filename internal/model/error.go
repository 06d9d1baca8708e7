package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeMissingField     = "MISSING_FIELD"
	ErrCodeInvalidID        = "INVALID_ID"
	ErrCodeInvalidQuantity  = "INVALID_QUANTITY"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Extensions exposes the error code to GraphQL clients.
func (e *DomainError) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code": e.Code,
	}
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
	ErrCartItemNotFound = NewDomainError(ErrCodeNotFound, "Cart item not found")
	ErrInvalidID        = NewDomainError(ErrCodeInvalidID, "ID must be a positive integer")
	ErrInvalidQuantity  = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInternal         = NewDomainError(ErrCodeInternalError, "Internal server error")
)
