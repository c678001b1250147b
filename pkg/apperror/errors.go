package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized   = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden      = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict       = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}
	ErrUnprocessable  = &AppError{Code: http.StatusUnprocessableEntity, Message: "Unprocessable entity"}
)

// Terminal session errors
var (
	ErrSessionNotFound     = &AppError{Code: http.StatusNotFound, Message: "Terminal session not found"}
	ErrEmptyCart           = &AppError{Code: http.StatusUnprocessableEntity, Message: "Cart is empty"}
	ErrInsufficientPayment = &AppError{Code: http.StatusUnprocessableEntity, Message: "Paid amount is less than amount due"}
	ErrCheckoutInProgress  = &AppError{Code: http.StatusConflict, Message: "A checkout is already in flight"}
	ErrPaymentPanelClosed  = &AppError{Code: http.StatusConflict, Message: "Payment panel is not open"}
	ErrBillingUnavailable  = &AppError{Code: http.StatusBadGateway, Message: "Failed to process payment. Please try again."}
	ErrNoSelection         = &AppError{Code: http.StatusUnprocessableEntity, Message: "No cart line is selected"}
	ErrLineNotFound        = &AppError{Code: http.StatusNotFound, Message: "Cart line not found"}
	ErrProductNotInCatalog = &AppError{Code: http.StatusNotFound, Message: "Product not found in catalog"}
	ErrCategoriesNotLoaded = &AppError{Code: http.StatusConflict, Message: "Categories have not been loaded yet"}
	ErrUnknownCommand      = &AppError{Code: http.StatusBadRequest, Message: "Unknown terminal command"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
