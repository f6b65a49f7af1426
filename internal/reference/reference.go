// Package reference derives the deterministic, collision-free identifiers
// the ledger and intent lifecycles key their idempotency on. Everything here
// is pure — no I/O, no clock, no database.
package reference

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"
)

var validPattern = regexp.MustCompile(`^[A-Z0-9_]+$`)

// PaymentReference derives the reference a payment intent is created and
// idempotently looked up by.
func PaymentReference(orderID string) string {
	return "PAYMENT_" + orderID
}

// RefundReference derives the reference for the sequence-th refund intent
// raised against a payment. sequence is 1-based and is the caller's
// responsibility to recompute on conflict (count of non-failed refund
// intents on the payment, plus one, at mint time).
func RefundReference(paymentIntentID string, sequence int) string {
	return "REFUND_" + paymentIntentID + "_" + strconv.Itoa(sequence)
}

// DiscountReference derives the marketing-wallet debit leg's reference from
// the primary payment reference.
func DiscountReference(paymentRef string) string {
	return paymentRef + "_DISC"
}

// DiscountEscrowReference derives the escrow subsidy-credit leg's reference
// from the primary payment reference.
func DiscountEscrowReference(paymentRef string) string {
	return paymentRef + "_DISC_ESCROW"
}

// IsValid reports whether ref is well-formed: uppercase alphanumerics and
// underscores only.
func IsValid(ref string) bool {
	return ref != "" && validPattern.MatchString(ref)
}

// IdempotencyKey derives a generic exactly-once key from an ordered list of
// parts, for use outside ledger references (e.g. dedup keys that aren't
// accountId/reference pairs).
func IdempotencyKey(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])[:32]
}
