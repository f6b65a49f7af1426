package webhook

import (
	"context"
	"encoding/json"
	"time"

	"github.com/flowsettle/ledgercore/pkg/events"
	"github.com/flowsettle/ledgercore/pkg/logger"
)

// Worker drains pkg/events' Redis-backed webhook queue and triggers
// settlement asynchronously, retrying with backoff before moving an
// unprocessable event to the dead-letter queue. It is the only caller of
// Settler.SettlePaymentByReference on the automatic ingestion path —
// Service.Ingest only publishes to the queue, it never settles directly.
type Worker struct {
	RedisClient *events.RedisClient
	Settler     Settler
	Repo        Repository
}

// NewWorker constructs a Worker.
func NewWorker(redisClient *events.RedisClient, settler Settler, repo Repository) *Worker {
	return &Worker{RedisClient: redisClient, Settler: settler, Repo: repo}
}

// Start launches the drain loop in the background.
func (w *Worker) Start() {
	logger.Info("Starting webhook settlement worker...")
	go w.processEvents()
}

func (w *Worker) processEvents() {
	for {
		result, err := w.RedisClient.Client.BLPop(context.Background(), 5*time.Second, events.WebhookQueue).Result()
		if err != nil {
			continue
		}

		eventData := []byte(result[1])
		var event events.WebhookEvent
		if err := json.Unmarshal(eventData, &event); err != nil {
			logger.Error("webhook worker: failed to unmarshal event", logger.Fields{"error": err.Error(), "data": string(eventData)})
			w.moveToDLQ(eventData)
			continue
		}

		w.handleEvent(event, eventData)
	}
}

func (w *Worker) handleEvent(event events.WebhookEvent, rawData []byte) {
	const maxRetries = 3
	for i := 0; i < maxRetries; i++ {
		err := w.Settler.SettlePaymentByReference(context.Background(), event.Reference)
		if err == nil {
			logger.Info("webhook worker: settled", logger.Fields{"reference": event.Reference, "provider": event.Provider})
			w.markProcessed(event.WebhookID)
			return
		}

		logger.Warn("webhook worker: settlement failed, retrying", logger.Fields{
			"reference": event.Reference,
			"attempt":   i + 1,
			"error":     err.Error(),
		})
		time.Sleep(time.Duration(i+1) * time.Second)
	}

	logger.Error("webhook worker: max retries exhausted, moving to DLQ", logger.Fields{"reference": event.Reference})
	w.markFailed(event.WebhookID)
	w.moveToDLQ(rawData)
}

// markProcessed flips the inbox entry the event was published from to
// PROCESSED once settlement actually succeeds off this goroutine.
func (w *Worker) markProcessed(webhookID string) {
	entry, err := w.Repo.FindByID(webhookID)
	if err != nil {
		logger.Error("webhook worker: could not load inbox entry to mark processed", logger.Fields{"webhookId": webhookID, "error": err.Error()})
		return
	}
	entry.Status = StatusProcessed
	if err := w.Repo.Save(entry); err != nil {
		logger.Error("webhook worker: could not save processed inbox entry", logger.Fields{"webhookId": webhookID, "error": err.Error()})
	}
}

// markFailed records that every retry was exhausted, so a replay (or an
// operator reading the inbox) can tell a DLQ'd event apart from one still
// awaiting its first attempt.
func (w *Worker) markFailed(webhookID string) {
	entry, err := w.Repo.FindByID(webhookID)
	if err != nil {
		logger.Error("webhook worker: could not load inbox entry to mark failed", logger.Fields{"webhookId": webhookID, "error": err.Error()})
		return
	}
	entry.Status = StatusFailed
	msg := "settlement retries exhausted, moved to DLQ"
	entry.ErrorMessage = &msg
	if err := w.Repo.Save(entry); err != nil {
		logger.Error("webhook worker: could not save failed inbox entry", logger.Fields{"webhookId": webhookID, "error": err.Error()})
	}
}

func (w *Worker) moveToDLQ(data []byte) {
	if err := w.RedisClient.PushToDLQ(context.Background(), data); err != nil {
		logger.Error("webhook worker: failed to push to DLQ", logger.Fields{"error": err.Error()})
	}
}
