package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the checkout and order lifecycle. Handlers map these to
// HTTP responses; raw provider and store errors are logged but never surfaced.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrGatewayUnavailable indicates the payment provider could not be
	// reached. The client may retry; each retry creates a fresh gateway order.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrGatewayRejected indicates the payment provider rejected the request,
	// e.g. a non-positive amount.
	ErrGatewayRejected = errors.New("payment gateway rejected request")

	// ErrPaymentVerificationFailed indicates the payment signature did not
	// match. No order is ever written after this error.
	ErrPaymentVerificationFailed = errors.New("payment verification failed")

	// ErrPersistenceFailed indicates a payment was verified but the order
	// record could not be written. The customer has been charged; the failure
	// is logged with the gateway payment id for operator reconciliation and
	// must not be presented as a retryable error.
	ErrPersistenceFailed = errors.New("order persistence failed")

	// ErrUnauthorized indicates a missing or invalid credential.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError reports a rejected request field before any external call is
// made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
