package structs

import "errors"

var (
	ErrBadRequest        = errors.New("bad request")
	ErrNoRowsAffected    = errors.New("no rows affected")
	ErrNotFound          = errors.New("no rows in result set")
	ErrUniqueViolation   = errors.New("unique Violation error")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidPassword   = errors.New("invalid email or password")
	ErrCrossShopConflict = errors.New("cart holds items from another shop")
	ErrCartEmpty         = errors.New("cart is empty")
	ErrInvalidTransition = errors.New("invalid order status transition")
)
