package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is returned when a server-mode operation is
	// attempted without a signed-in user.
	ErrNotAuthenticated = errors.New("user not authenticated")

	// ErrEmptyCart is returned by checkout when the cart has no lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrProductNotFound is returned when a product does not exist or is
	// no longer offered for sale.
	ErrProductNotFound = errors.New("product not found")

	// ErrCartItemNotFound is returned when a cart line does not exist or
	// belongs to another user's cart.
	ErrCartItemNotFound = errors.New("cart item not found")

	// ErrEmailTaken is returned by registration when the email is
	// already in use.
	ErrEmailTaken = errors.New("email already exists")
)

// BackendError wraps a failure from the data store with the operation
// name and the key identifiers involved, so callers and logs can tell
// which step of a flow failed.
type BackendError struct {
	Op  string
	Key string
	Err error
}

func (e *BackendError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s (%s): %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

func backendErr(op, key string, err error) *BackendError {
	return &BackendError{Op: op, Key: key, Err: err}
}
