package webhook

import (
	"testing"

	"github.com/flowsettle/ledgercore/pkg/events"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHandleEventMarksEntryProcessedOnSuccessfulSettlement exercises the
// worker's success path only, since the retry-exhausted/DLQ path needs a
// real *events.RedisClient that isn't available to a unit test.
func TestHandleEventMarksEntryProcessedOnSuccessfulSettlement(t *testing.T) {
	repo := newFakeRepository()
	ref := "PAY_REF_1"
	entry := &InboxEntry{
		ID:              uuid.New(),
		Provider:        "flutterwave",
		ProviderEventID: "evt_1",
		Reference:       &ref,
		Status:          StatusVerified,
	}
	require.NoError(t, repo.Create(entry))

	settler := &fakeSettler{}
	w := NewWorker(nil, settler, repo)

	w.handleEvent(events.WebhookEvent{
		Provider:        "flutterwave",
		ProviderEventID: "evt_1",
		Reference:       ref,
		WebhookID:       entry.ID.String(),
	}, nil)

	assert.Equal(t, []string{ref}, settler.calls)

	got, err := repo.FindByID(entry.ID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusProcessed, got.Status)
}
