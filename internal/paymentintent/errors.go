package paymentintent

import "errors"

// Errors returned by Service: the creation-invariant errors from Create, plus
// not-found lookups and illegal status transitions.
var (
	ErrInvalidAmount        = errors.New("paymentintent: amount must be strictly positive")
	ErrInvalidAmounts       = errors.New("paymentintent: originalAmount must be >= amount")
	ErrInvalidDiscount      = errors.New("paymentintent: discountAmount must be >= 0")
	ErrDiscountCodeRequired = errors.New("paymentintent: discountCode is required when discountAmount > 0")
	ErrNotFound             = errors.New("paymentintent: not found")
	ErrInvalidTransition    = errors.New("paymentintent: illegal status transition")
)
