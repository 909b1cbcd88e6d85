package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrProductNotFound  = fmt.Errorf("product %w", ErrNotFound)
	ErrCartItemNotFound = fmt.Errorf("cart item %w", ErrNotFound)
	ErrOrderNotFound    = fmt.Errorf("order %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)

	ErrValidation      = errors.New("validation failed")
	ErrInvalidQuantity = fmt.Errorf("%w: quantity must be between 1 and 2147483647", ErrValidation)
	ErrInvalidVariant  = fmt.Errorf("%w: invalid variant for this product", ErrValidation)
	ErrInvalidAddress  = fmt.Errorf("%w: address_id must be a positive integer", ErrValidation)
	ErrInvalidProduct  = fmt.Errorf("%w: invalid product", ErrValidation)
	ErrInvalidPaging   = fmt.Errorf("%w: skip must not be negative", ErrValidation)

	ErrInvalidStatus = errors.New("invalid order status")
	ErrForbidden     = errors.New("forbidden")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrUserDisabled  = errors.New("user is disabled")
)
