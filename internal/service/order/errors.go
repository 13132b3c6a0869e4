package order

import (
	"errors"
	"fmt"
)

var ErrValidation = errors.New("validation failed")

// ValidationError ошибка входных данных, errors.Is(err, ErrValidation) == true.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

var (
	ErrInvalidStatus        error = &ValidationError{Field: "status", Reason: "unknown status"}
	ErrMissingCustomer      error = &ValidationError{Field: "customerId", Reason: "is required"}
	ErrEmptyItems           error = &ValidationError{Field: "items", Reason: "at least one item is required"}
	ErrInvalidItemName      error = &ValidationError{Field: "items.name", Reason: "is required"}
	ErrInvalidQuantity      error = &ValidationError{Field: "items.quantity", Reason: "must be greater than zero"}
	ErrInvalidPrice         error = &ValidationError{Field: "items.unitPrice", Reason: "must be positive with at most 2 decimal places"}
	ErrInvalidDeliveryType  error = &ValidationError{Field: "deliveryType", Reason: "must be delivery or pickup"}
	ErrInvalidPaymentMethod error = &ValidationError{Field: "paymentMethod", Reason: "must be cash, card or pix"}
	ErrMissingContact       error = &ValidationError{Field: "deliveryInfo", Reason: "name and phone are required"}
	ErrMissingAddress       error = &ValidationError{Field: "deliveryInfo.address", Reason: "is required for delivery"}
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrNoActiveOrder  = errors.New("no active order")
	ErrConflict       = errors.New("order already exists")
	ErrStatusConflict = errors.New("order status changed concurrently")
	ErrCacheMiss      = errors.New("order view cache miss")

	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrActorNotPermitted      = fmt.Errorf("actor not permitted: %w", ErrInvalidTransition)
	ErrConcurrentModification = fmt.Errorf("concurrent modification: %w", ErrInvalidTransition)
	ErrAlreadyTerminal        = errors.New("order already finalized")
)
