package services

import (
	"errors"
	"fmt"
)

// Expected outcomes surfaced to callers as typed failures. Anything else
// coming out of a service is a persistence failure wrapped with %w and
// should be treated as retryable.
var (
	ErrNotFound           = errors.New("not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrUnauthorized       = errors.New("operation not permitted for role")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrPasswordRequired   = errors.New("password is required")
)

// InsufficientStockError reports which product could not cover the
// requested quantity. The checkout aborts on the first one.
type InsufficientStockError struct {
	Product string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.Product)
}

// IsInsufficientStock reports whether err is an InsufficientStockError.
func IsInsufficientStock(err error) bool {
	var target *InsufficientStockError
	return errors.As(err, &target)
}
