// Package refundintent implements the refund intent lifecycle. Ledger
// entries for refund disbursement are not emitted here (see DESIGN.md) —
// only the refund intent record itself is created and tracked against its
// payment's remaining balance.
package refundintent

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is a refund intent's lifecycle state.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusProcessed Status = "PROCESSED"
	StatusFailed    Status = "FAILED"
)

// RefundIntent records a requested refund against a settled payment.
type RefundIntent struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Reference       string          `gorm:"column:reference;not null;uniqueIndex" json:"reference"`
	PaymentIntentID uuid.UUID       `gorm:"column:payment_intent_id;not null;index" json:"paymentIntentId"`
	Amount          decimal.Decimal `gorm:"column:amount;type:numeric(20,4);not null" json:"amount"`
	Reason          string          `gorm:"column:reason;not null" json:"reason"`
	Description     *string         `gorm:"column:description" json:"description,omitempty"`
	Status          Status          `gorm:"column:status;not null;index" json:"status"`
	CreatedAt       time.Time       `gorm:"column:created_at;not null" json:"createdAt"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;not null" json:"updatedAt"`
}

func (RefundIntent) TableName() string { return "refund_intents" }
