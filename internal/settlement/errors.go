package settlement

import "errors"

var (
	// ErrIntentNotFound mirrors paymentintent.ErrNotFound so callers of this
	// package never need to import paymentintent just to check the error.
	ErrIntentNotFound = errors.New("settlement: payment intent not found")

	// ErrInvalidStatusForSettlement is returned when the intent is not in
	// CONFIRMING and has not already been SETTLED.
	ErrInvalidStatusForSettlement = errors.New("settlement: intent is not in CONFIRMING status")
)
