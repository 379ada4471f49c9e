package services

import "errors"

var (
	// ErrInvalidCredentials covers an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken covers expired, malformed and unsigned tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrEmptyCart is returned when a checkout carries no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidQuantity is returned when a cart line requests zero or a
	// negative quantity.
	ErrInvalidQuantity = errors.New("requested quantity must be positive")
	// ErrInsufficientStock is returned when any cart line requests more
	// than the on-hand quantity. The whole checkout is rejected.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrTransactionFailed wraps store failures during the checkout
	// transaction after a full rollback.
	ErrTransactionFailed = errors.New("transaction failed")
)
