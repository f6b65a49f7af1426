package reference

import "testing"

func TestPaymentReference(t *testing.T) {
	if got := PaymentReference("O1"); got != "PAYMENT_O1" {
		t.Fatalf("PaymentReference() = %q, want PAYMENT_O1", got)
	}
}

func TestRefundReference(t *testing.T) {
	if got := RefundReference("abc123", 2); got != "REFUND_abc123_2" {
		t.Fatalf("RefundReference() = %q, want REFUND_abc123_2", got)
	}
}

func TestDiscountReferences(t *testing.T) {
	ref := PaymentReference("O2")
	if got := DiscountReference(ref); got != "PAYMENT_O2_DISC" {
		t.Fatalf("DiscountReference() = %q, want PAYMENT_O2_DISC", got)
	}
	if got := DiscountEscrowReference(ref); got != "PAYMENT_O2_DISC_ESCROW" {
		t.Fatalf("DiscountEscrowReference() = %q, want PAYMENT_O2_DISC_ESCROW", got)
	}
}

func TestIsValid(t *testing.T) {
	cases := map[string]bool{
		"PAYMENT_O1":      true,
		"PAYMENT_O2_DISC": true,
		"":                false,
		"payment_o1":      false,
		"PAYMENT-O1":      false,
		"PAYMENT O1":      false,
	}
	for in, want := range cases {
		if got := IsValid(in); got != want {
			t.Errorf("IsValid(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestIdempotencyKeyDeterministic(t *testing.T) {
	a := IdempotencyKey("flutterwave", "charge.success", "ref-1")
	b := IdempotencyKey("flutterwave", "charge.success", "ref-1")
	if a != b {
		t.Fatalf("IdempotencyKey not deterministic: %q != %q", a, b)
	}
	if len(a) != 32 {
		t.Fatalf("IdempotencyKey length = %d, want 32", len(a))
	}
	c := IdempotencyKey("flutterwave", "charge.success", "ref-2")
	if a == c {
		t.Fatalf("IdempotencyKey collided for different inputs")
	}
}
