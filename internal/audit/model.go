// Package audit records outcome events for operations that move money or
// change an intent's state, for after-the-fact review. Its one caller is the
// Settlement Orchestrator, which records PAYMENT_SETTLED inside each
// settlement transaction.
package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Outcome is the result of the audited operation.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// Event is one audit record.
type Event struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	EventType string            `gorm:"column:event_type;not null;index" json:"eventType"`
	Actor     string            `gorm:"column:actor;not null" json:"actor"`
	Outcome   Outcome           `gorm:"column:outcome;not null" json:"outcome"`
	Detail    datatypes.JSONMap `gorm:"column:detail;type:jsonb" json:"detail,omitempty"`
	CreatedAt time.Time         `gorm:"column:created_at;not null" json:"createdAt"`
}

func (Event) TableName() string { return "audit_events" }
