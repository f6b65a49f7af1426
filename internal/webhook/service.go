package webhook

import (
	"context"
	"strconv"
	"time"

	"github.com/flowsettle/ledgercore/pkg/events"
	"github.com/flowsettle/ledgercore/pkg/logger"
	"github.com/flowsettle/ledgercore/pkg/metrics"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Settler is the narrow interface Replay needs from the Settlement
// Orchestrator — just enough to trigger settlement by reference, without
// this package depending on settlement's transaction internals. An operator
// driving a replay wants a synchronous result, so Replay calls it directly
// rather than going back through the queue.
type Settler interface {
	SettlePaymentByReference(ctx context.Context, reference string) error
}

// Publisher is the narrow interface Ingest needs to hand a verified webhook
// off to the async settlement worker (internal/webhook.Worker) over
// pkg/events' Redis-backed queue.
type Publisher interface {
	PublishEvent(ctx context.Context, event events.WebhookEvent) error
}

// IngestInput is one received webhook call.
type IngestInput struct {
	Provider        string
	ProviderEventID string // empty triggers the nowMillis fallback, see below
	Reference       *string
	RawBody         []byte
	Headers         map[string]string
	Payload         map[string]any
}

// IngestResult reports what happened to a delivered webhook.
type IngestResult struct {
	Entry       *InboxEntry
	IsDuplicate bool
}

// Service implements the webhook ingress pipeline (C5).
type Service struct {
	repo      Repository
	verifier  Registry
	settler   Settler
	publisher Publisher
	devMode   bool // NODE_ENV=development bypasses real verification
}

// NewService constructs a Service. devMode mirrors the NODE_ENV=development
// knob: when true, signature verification is bypassed with a logged
// warning — this must never be true in production.
func NewService(repo Repository, verifier Registry, settler Settler, publisher Publisher, devMode bool) *Service {
	return &Service{repo: repo, verifier: verifier, settler: settler, publisher: publisher, devMode: devMode}
}

// Ingest runs the full per-webhook pipeline: dedup, insert, verify, and (if
// a reference is present) queue the entry for the async settlement worker.
func (s *Service) Ingest(ctx context.Context, in IngestInput) (*IngestResult, error) {
	providerEventID := in.ProviderEventID
	if providerEventID == "" {
		// Known correctness gap, preserved rather than silently patched:
		// this fallback defeats deduplication for events the provider
		// delivers without an id, because two different deliveries within
		// the same millisecond mint colliding ids, and any other timing
		// mints distinct ones for what was really one delivery.
		providerEventID = "flw_" + strconv.FormatInt(nowMillis(), 10)
	}

	existing, err := s.repo.FindByProviderEvent(in.Provider, providerEventID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		metrics.RecordWebhookDedupHit()
		if existing.Status != StatusDuplicate {
			existing.Status = StatusDuplicate
			if err := s.repo.Save(existing); err != nil {
				return nil, err
			}
		}
		return &IngestResult{Entry: existing, IsDuplicate: true}, nil
	}

	entry := &InboxEntry{
		ID:              uuid.New(),
		Provider:        in.Provider,
		ProviderEventID: providerEventID,
		Reference:       in.Reference,
		Payload:         datatypes.JSONMap(in.Payload),
		Headers:         headersToJSONMap(in.Headers),
		Status:          StatusReceived,
		ReceivedAt:      time.Now().UTC(),
	}
	if err := s.repo.Create(entry); err != nil {
		return nil, err
	}

	verified := s.verify(in.Provider, in.RawBody, in.Headers)
	if !verified {
		entry.Status = StatusFailed
		msg := ErrSignatureInvalid.Error()
		entry.ErrorMessage = &msg
		now := time.Now().UTC()
		entry.ProcessedAt = &now
		if err := s.repo.Save(entry); err != nil {
			return nil, err
		}
		return &IngestResult{Entry: entry}, nil
	}

	entry.Status = StatusVerified
	now := time.Now().UTC()
	entry.ProcessedAt = &now
	if err := s.repo.Save(entry); err != nil {
		return nil, err
	}

	if entry.Reference == nil || *entry.Reference == "" {
		logger.Warn("webhook: no reference to settle against", logger.Fields{"provider": in.Provider, "providerEventId": providerEventID})
		return &IngestResult{Entry: entry}, nil
	}

	if err := s.publisher.PublishEvent(ctx, events.WebhookEvent{
		Provider:        in.Provider,
		ProviderEventID: providerEventID,
		Reference:       *entry.Reference,
		WebhookID:       entry.ID.String(),
		Timestamp:       now,
	}); err != nil {
		return nil, err
	}

	// entry stays VERIFIED — the worker moves it to PROCESSED once it has
	// actually settled, since settlement now happens off this goroutine.
	return &IngestResult{Entry: entry}, nil
}

// Replay re-invokes settlement for a previously stored webhook by id,
// synchronously — this is an operator action, not the automatic path, so it
// calls the Settlement Orchestrator directly rather than re-queuing. A
// PROCESSED entry is a no-op.
func (s *Service) Replay(ctx context.Context, id string) (*InboxEntry, error) {
	entry, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if entry.Status == StatusProcessed {
		return entry, nil
	}
	if entry.Reference == nil || *entry.Reference == "" {
		return entry, nil
	}
	if err := s.settler.SettlePaymentByReference(ctx, *entry.Reference); err != nil {
		return nil, err
	}
	entry.Status = StatusProcessed
	if err := s.repo.Save(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) verify(provider string, rawBody []byte, headers map[string]string) bool {
	if s.devMode {
		logger.Warn("webhook: NODE_ENV=development, bypassing signature verification", logger.Fields{"provider": provider})
		return true
	}
	verify, ok := s.verifier[provider]
	if !ok {
		return false
	}
	return verify(rawBody, headers)
}

func headersToJSONMap(headers map[string]string) datatypes.JSONMap {
	m := make(map[string]any, len(headers))
	for k, v := range headers {
		m[k] = v
	}
	return datatypes.JSONMap(m)
}

// nowMillis is split out so tests covering the rest of Ingest's branches
// don't need to stub time directly; it is the one place in this package that
// reaches for wall-clock time as data rather than as a timestamp field.
func nowMillis() int64 {
	return time.Now().UTC().UnixMilli()
}
