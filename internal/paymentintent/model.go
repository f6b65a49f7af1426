// Package paymentintent implements C3: the state machine that governs when
// settlement is legal and enforces the amount/discount invariants on
// creation. SETTLED is the only state any consumer may read as "paid".
package paymentintent

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Status is a payment intent's lifecycle state.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInitiated  Status = "INITIATED"
	StatusConfirming Status = "CONFIRMING"
	StatusSettled    Status = "SETTLED"
	StatusFailed     Status = "FAILED"
	StatusExpired    Status = "EXPIRED"
	StatusRefunded   Status = "REFUNDED"
)

// transitions enumerates the legal forward moves from each state. SETTLED,
// FAILED, EXPIRED and REFUNDED are terminal except that SETTLED alone may
// move on to REFUNDED once a refund disbursement completes.
var transitions = map[Status]map[Status]bool{
	StatusPending:    {StatusInitiated: true, StatusFailed: true, StatusExpired: true},
	StatusInitiated:  {StatusConfirming: true, StatusFailed: true, StatusExpired: true},
	StatusConfirming: {StatusSettled: true, StatusFailed: true},
	StatusSettled:    {StatusRefunded: true},
	StatusFailed:     {},
	StatusExpired:    {},
	StatusRefunded:   {},
}

// CanTransition reports whether moving from 'from' to 'to' is legal.
func CanTransition(from, to Status) bool {
	return transitions[from][to]
}

// PaymentIntent is a declared intent to move funds for one order. Only a
// SETTLED intent counts as paid; every other state, including provider
// redirects and CONFIRMING, must never be read as paid by a consumer.
type PaymentIntent struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Reference      string            `gorm:"column:reference;not null;uniqueIndex" json:"reference"`
	OrderID        string            `gorm:"column:order_id;not null;index" json:"orderId"`
	Amount         decimal.Decimal   `gorm:"column:amount;type:numeric(20,4);not null" json:"amount"`
	OriginalAmount decimal.Decimal   `gorm:"column:original_amount;type:numeric(20,4);not null" json:"originalAmount"`
	DiscountAmount decimal.Decimal   `gorm:"column:discount_amount;type:numeric(20,4);not null" json:"discountAmount"`
	DiscountCode   *string           `gorm:"column:discount_code" json:"discountCode,omitempty"`
	Provider       string            `gorm:"column:provider;not null" json:"provider"`
	ProviderRef    *string           `gorm:"column:provider_ref" json:"providerRef,omitempty"`
	Currency       string            `gorm:"column:currency;not null;default:NGN" json:"currency"`
	Metadata       datatypes.JSONMap `gorm:"column:metadata" json:"metadata,omitempty"`
	Status         Status            `gorm:"column:status;not null;index" json:"status"`
	CreatedAt      time.Time         `gorm:"column:created_at;not null" json:"createdAt"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;not null" json:"updatedAt"`
}

func (PaymentIntent) TableName() string { return "payment_intents" }
