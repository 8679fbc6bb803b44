package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrIllegalTransition indicates an order status change that the
	// lifecycle does not allow, e.g. cancelling a cancelled order.
	ErrIllegalTransition = errors.New("illegal order transition")

	// ErrChannelProtected indicates an attempt to delete a system payment
	// channel.
	ErrChannelProtected = errors.New("system channel cannot be deleted")

	// ErrCheckoutFailed wraps a storage failure during the checkout
	// transaction. When it surfaces, no order row exists and stock and the
	// cart are unchanged.
	ErrCheckoutFailed = errors.New("checkout transaction failed")
)

// ValidationError rejects bad input before any mutation happens. It is
// fully recoverable by re-input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Shortage reports one cart line whose quantity exceeds the available
// stock. It is data, not an error: the operator can re-issue the commit
// with an explicit override.
type Shortage struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Available int    `json:"available"`
}
