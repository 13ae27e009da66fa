package services

import "errors"

var (
	// Cart / dish errors.
	ErrDishNotFound     = errors.New("dish does not exist")
	ErrDishOutOfStock   = errors.New("dish is currently out of stock")
	ErrDishDiscontinued = errors.New("dish is no longer sold")
	ErrCartItemNotFound = errors.New("cart item not found")

	// Order errors.
	ErrEmptyCart         = errors.New("cart is empty")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrNotAllowed        = errors.New("actor is not allowed to perform this transition")
)
