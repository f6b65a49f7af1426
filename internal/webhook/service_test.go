package webhook

import (
	"context"
	"testing"

	"github.com/flowsettle/ledgercore/pkg/events"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	byProviderEvent map[string]*InboxEntry
	byID            map[string]*InboxEntry
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byProviderEvent: map[string]*InboxEntry{},
		byID:            map[string]*InboxEntry{},
	}
}

func (f *fakeRepository) key(provider, providerEventID string) string {
	return provider + ":" + providerEventID
}

func (f *fakeRepository) FindByProviderEvent(provider, providerEventID string) (*InboxEntry, error) {
	return f.byProviderEvent[f.key(provider, providerEventID)], nil
}

func (f *fakeRepository) Create(entry *InboxEntry) error {
	f.byProviderEvent[f.key(entry.Provider, entry.ProviderEventID)] = entry
	f.byID[entry.ID.String()] = entry
	return nil
}

func (f *fakeRepository) FindByID(id string) (*InboxEntry, error) {
	entry, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return entry, nil
}

func (f *fakeRepository) Save(entry *InboxEntry) error {
	f.byProviderEvent[f.key(entry.Provider, entry.ProviderEventID)] = entry
	f.byID[entry.ID.String()] = entry
	return nil
}

type fakeSettler struct {
	calls []string
	err   error
}

func (f *fakeSettler) SettlePaymentByReference(ctx context.Context, reference string) error {
	f.calls = append(f.calls, reference)
	return f.err
}

type fakePublisher struct {
	events []events.WebhookEvent
	err    error
}

func (f *fakePublisher) PublishEvent(ctx context.Context, event events.WebhookEvent) error {
	f.events = append(f.events, event)
	return f.err
}

func alwaysVerifies([]byte, map[string]string) bool { return true }
func neverVerifies([]byte, map[string]string) bool  { return false }

func TestIngestHappyPathQueuesForAsyncSettlement(t *testing.T) {
	repo := newFakeRepository()
	settler := &fakeSettler{}
	publisher := &fakePublisher{}
	svc := NewService(repo, Registry{"flutterwave": alwaysVerifies}, settler, publisher, false)

	ref := "PAY_REF_1"
	result, err := svc.Ingest(context.Background(), IngestInput{
		Provider:        "flutterwave",
		ProviderEventID: "evt_1",
		Reference:       &ref,
		RawBody:         []byte(`{}`),
		Headers:         map[string]string{},
		Payload:         map[string]any{},
	})

	require.NoError(t, err)
	assert.False(t, result.IsDuplicate)
	// Still VERIFIED, not PROCESSED: settlement happens on the worker's
	// goroutine once it dequeues the published event, not inline here.
	assert.Equal(t, StatusVerified, result.Entry.Status)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, ref, publisher.events[0].Reference)
	assert.Equal(t, result.Entry.ID.String(), publisher.events[0].WebhookID)
	assert.Empty(t, settler.calls, "Ingest must never settle directly, only the worker does")
}

func TestIngestDuplicateProviderEventShortCircuits(t *testing.T) {
	repo := newFakeRepository()
	publisher := &fakePublisher{}
	svc := NewService(repo, Registry{"flutterwave": alwaysVerifies}, &fakeSettler{}, publisher, false)

	ref := "PAY_REF_1"
	in := IngestInput{
		Provider:        "flutterwave",
		ProviderEventID: "evt_1",
		Reference:       &ref,
		RawBody:         []byte(`{}`),
		Headers:         map[string]string{},
		Payload:         map[string]any{},
	}

	_, err := svc.Ingest(context.Background(), in)
	require.NoError(t, err)

	result, err := svc.Ingest(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, result.IsDuplicate)
	assert.Equal(t, StatusDuplicate, result.Entry.Status)
	assert.Len(t, publisher.events, 1, "second delivery must not re-queue settlement")
}

func TestIngestInvalidSignatureMarksFailedAndSkipsQueueing(t *testing.T) {
	repo := newFakeRepository()
	publisher := &fakePublisher{}
	svc := NewService(repo, Registry{"flutterwave": neverVerifies}, &fakeSettler{}, publisher, false)

	ref := "PAY_REF_1"
	result, err := svc.Ingest(context.Background(), IngestInput{
		Provider:        "flutterwave",
		ProviderEventID: "evt_1",
		Reference:       &ref,
		RawBody:         []byte(`{}`),
		Headers:         map[string]string{},
		Payload:         map[string]any{},
	})

	require.NoError(t, err)
	assert.Equal(t, StatusFailed, result.Entry.Status)
	require.NotNil(t, result.Entry.ErrorMessage)
	assert.Equal(t, ErrSignatureInvalid.Error(), *result.Entry.ErrorMessage)
	assert.Empty(t, publisher.events)
}

func TestIngestDevModeBypassesVerification(t *testing.T) {
	repo := newFakeRepository()
	publisher := &fakePublisher{}
	svc := NewService(repo, Registry{}, &fakeSettler{}, publisher, true)

	ref := "PAY_REF_1"
	result, err := svc.Ingest(context.Background(), IngestInput{
		Provider:        "unregistered-provider",
		ProviderEventID: "evt_1",
		Reference:       &ref,
		RawBody:         []byte(`{}`),
		Headers:         map[string]string{},
		Payload:         map[string]any{},
	})

	require.NoError(t, err)
	assert.Equal(t, StatusVerified, result.Entry.Status)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, ref, publisher.events[0].Reference)
}

func TestIngestNoReferenceSkipsQueueingWithoutError(t *testing.T) {
	repo := newFakeRepository()
	publisher := &fakePublisher{}
	svc := NewService(repo, Registry{"flutterwave": alwaysVerifies}, &fakeSettler{}, publisher, false)

	result, err := svc.Ingest(context.Background(), IngestInput{
		Provider:        "flutterwave",
		ProviderEventID: "evt_1",
		Reference:       nil,
		RawBody:         []byte(`{}`),
		Headers:         map[string]string{},
		Payload:         map[string]any{},
	})

	require.NoError(t, err)
	assert.Equal(t, StatusVerified, result.Entry.Status)
	assert.Empty(t, publisher.events)
}

func TestReplayProcessedEntryIsNoOp(t *testing.T) {
	repo := newFakeRepository()
	settler := &fakeSettler{}
	svc := NewService(repo, Registry{"flutterwave": alwaysVerifies}, settler, &fakePublisher{}, false)

	ref := "PAY_REF_1"
	entry := &InboxEntry{
		ID:              uuid.New(),
		Provider:        "flutterwave",
		ProviderEventID: "evt_1",
		Reference:       &ref,
		Status:          StatusProcessed,
	}
	require.NoError(t, repo.Create(entry))

	got, err := svc.Replay(context.Background(), entry.ID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusProcessed, got.Status)
	assert.Empty(t, settler.calls)
}

func TestReplayVerifiedEntryTriggersSynchronousSettlement(t *testing.T) {
	repo := newFakeRepository()
	settler := &fakeSettler{}
	svc := NewService(repo, Registry{"flutterwave": alwaysVerifies}, settler, &fakePublisher{}, false)

	ref := "PAY_REF_1"
	entry := &InboxEntry{
		ID:              uuid.New(),
		Provider:        "flutterwave",
		ProviderEventID: "evt_1",
		Reference:       &ref,
		Status:          StatusVerified,
	}
	require.NoError(t, repo.Create(entry))

	got, err := svc.Replay(context.Background(), entry.ID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusProcessed, got.Status)
	assert.Equal(t, []string{ref}, settler.calls)
}
