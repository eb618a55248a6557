package xerrors

import (
	"errors"
	"fmt"
)

// Common reusable application errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
)

// Validation codes shared by the settlement components.
const (
	CodeBelowMinimum          = "below_minimum"
	CodeMissingOption         = "missing_option"
	CodeInsufficientBalance   = "insufficient_balance"
	CodeBelowMinimumQuantity  = "below_minimum_quantity"
	CodeNoPricingBand         = "no_pricing_band"
	CodeNoActiveSubscriptions = "no_active_subscriptions"
	CodeInvalidBand           = "invalid_band"
	CodeInvalidAmount         = "invalid_amount"
	CodeInvalidRequest        = "invalid_request"
)

// ValidationError reports caller-supplied data that violates a business rule.
// It is always raised before anything is written.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Validation builds a ValidationError with a formatted message.
func Validation(code, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ValidationCode returns the code of a wrapped ValidationError, or "".
func ValidationCode(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Code
	}
	return ""
}

// Wrap adds context to an error (similar to fmt.Errorf("%w")).
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is allows checking whether an error is a specific sentinel error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
