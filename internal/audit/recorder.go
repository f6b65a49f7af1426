package audit

import (
	"time"

	"github.com/flowsettle/ledgercore/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Recorder persists audit events. Every write also logs the same event via
// the structured logger, so an auditor can correlate the two without
// needing both stores live.
type Recorder struct {
	db *gorm.DB
}

// NewRecorder constructs a Recorder bound to db.
func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// Record persists one audit event under tx if non-nil, otherwise on the
// Recorder's own db — settlement commits its audit event inside the same
// transaction as the ledger writes it describes.
func (r *Recorder) Record(tx *gorm.DB, eventType, actor string, outcome Outcome, detail map[string]any) error {
	conn := r.db
	if tx != nil {
		conn = tx
	}

	event := &Event{
		ID:        uuid.New(),
		EventType: eventType,
		Actor:     actor,
		Outcome:   outcome,
		Detail:    datatypes.JSONMap(detail),
		CreatedAt: time.Now().UTC(),
	}

	if err := conn.Create(event).Error; err != nil {
		return err
	}

	logger.Info("audit event", logger.Fields{
		"eventType": eventType,
		"actor":     actor,
		"outcome":   string(outcome),
	})
	return nil
}
