package webhook

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIngestVerifiesSignatureThroughRealHTTPHeaders round-trips a request
// through an actual http.Request/mux router instead of constructing the
// headers map by hand, so a case-mismatch between how net/http stores
// header keys and how a Verifier looks them up would fail this test.
func TestIngestVerifiesSignatureThroughRealHTTPHeaders(t *testing.T) {
	repo := newFakeRepository()
	publisher := &fakePublisher{}
	svc := NewService(repo, Registry{"flutterwave": NewFlutterwaveVerifier("top-secret")}, &fakeSettler{}, publisher, false)
	h := NewHandler(svc)

	router := mux.NewRouter()
	router.HandleFunc("/v1/webhooks/{provider}", h.Ingest).Methods(http.MethodPost)

	body := `{"reference":"PAY_REF_1","id":"evt_1"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/flutterwave", strings.NewReader(body))
	// Sent in the case Flutterwave actually uses on the wire; net/http
	// canonicalizes this to "Verif-Hash" before the handler ever sees it.
	req.Header.Set("verif-hash", "top-secret")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, "PAY_REF_1", publisher.events[0].Reference)

	entry, err := repo.FindByProviderEvent("flutterwave", "evt_1")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, StatusVerified, entry.Status)
}

// TestIngestRejectsWrongSignatureThroughRealHTTPHeaders confirms the same
// wiring fails closed when the header value doesn't match.
func TestIngestRejectsWrongSignatureThroughRealHTTPHeaders(t *testing.T) {
	repo := newFakeRepository()
	publisher := &fakePublisher{}
	svc := NewService(repo, Registry{"flutterwave": NewFlutterwaveVerifier("top-secret")}, &fakeSettler{}, publisher, false)
	h := NewHandler(svc)

	router := mux.NewRouter()
	router.HandleFunc("/v1/webhooks/{provider}", h.Ingest).Methods(http.MethodPost)

	body := `{"reference":"PAY_REF_1","id":"evt_2"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/flutterwave", strings.NewReader(body))
	req.Header.Set("verif-hash", "wrong-secret")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, publisher.events)

	entry, err := repo.FindByProviderEvent("flutterwave", "evt_2")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, StatusFailed, entry.Status)
}
