// Package webhook implements C5: signature verification, provider-level
// deduplication, and idempotent triggering of settlement.
package webhook

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Status is an inbox entry's processing state.
type Status string

const (
	StatusReceived  Status = "RECEIVED"
	StatusVerified  Status = "VERIFIED"
	StatusProcessed Status = "PROCESSED"
	StatusFailed    Status = "FAILED"
	StatusDuplicate Status = "DUPLICATE"
)

// InboxEntry is a persisted record of one received webhook, deduplicated by
// (provider, providerEventId).
type InboxEntry struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Provider        string            `gorm:"column:provider;not null;uniqueIndex:idx_webhook_provider_event" json:"provider"`
	ProviderEventID string            `gorm:"column:provider_event_id;not null;uniqueIndex:idx_webhook_provider_event" json:"providerEventId"`
	Reference       *string           `gorm:"column:reference;index" json:"reference,omitempty"`
	Payload         datatypes.JSONMap `gorm:"column:payload;type:jsonb;not null" json:"payload"`
	Headers         datatypes.JSONMap `gorm:"column:headers;type:jsonb" json:"headers,omitempty"`
	Status          Status            `gorm:"column:status;not null;index" json:"status"`
	ErrorMessage    *string           `gorm:"column:error_message" json:"errorMessage,omitempty"`
	ReceivedAt      time.Time         `gorm:"column:received_at;not null" json:"receivedAt"`
	ProcessedAt     *time.Time        `gorm:"column:processed_at" json:"processedAt,omitempty"`
}

func (InboxEntry) TableName() string { return "webhook_inbox_entries" }
