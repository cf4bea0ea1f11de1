package store

import "errors"

var (
	ErrProductNotFound          = errors.New("product not found")
	ErrItemNotInCart            = errors.New("item not in cart")
	ErrCartLimitExceeded        = errors.New("cart item limit exceeded")
	ErrEmptyCart                = errors.New("cart is empty")
	ErrOrderNotFound            = errors.New("order not found")
	ErrOrderNotPaid             = errors.New("order not yet paid")
	ErrAlreadyShipped           = errors.New("order already shipped")
	ErrInvalidTrackingNumber    = errors.New("tracking number cannot be empty")
	ErrInvoiceNotFound          = errors.New("invoice not found")
	ErrPaymentFailed            = errors.New("payment failed")
	ErrUnsupportedPaymentMethod = errors.New("unsupported payment method")
)
