package refundintent

import "errors"

var (
	// ErrPaymentNotSettled is returned when a refund is requested against a
	// payment intent that has not reached SETTLED.
	ErrPaymentNotSettled = errors.New("refundintent: payment is not settled")

	// ErrRefundExceedsRemaining is returned when the requested amount would
	// push the sum of non-failed refunds past the payment's amount.
	ErrRefundExceedsRemaining = errors.New("refundintent: amount exceeds remaining refundable balance")

	ErrNotFound = errors.New("refundintent: not found")
)
