package service

import (
	"errors"
	"fmt"
)

// ErrPaymentDeclined is the terminal negative outcome of a payment
// attempt (failure or cancelled from the provider).
var ErrPaymentDeclined = errors.New("payment declined")

var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError marks a request the caller can fix and re-submit.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func validationErr(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
