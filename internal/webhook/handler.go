package webhook

import (
	"encoding/json"
	"io"
	"net/http"
	"net/textproto"

	"github.com/flowsettle/ledgercore/pkg/utils"
	"github.com/gorilla/mux"
)

// Handler adapts Service to HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a Handler over service.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Ingest handles POST /v1/webhooks/{provider}.
func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request) {
	provider := mux.Vars(r)["provider"]

	rawBody, err := io.ReadAll(r.Body)
	if err != nil {
		utils.BuildErrorResponse(w, http.StatusBadRequest, "could not read request body", nil)
		return
	}

	var payload map[string]any
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		utils.BuildErrorResponse(w, http.StatusBadRequest, "invalid JSON payload", nil)
		return
	}

	// r.Header already keys under textproto's canonical MIME form, but this
	// is made explicit rather than relied on implicitly, since
	// NewFlutterwaveVerifier's lookups depend on it.
	headers := make(map[string]string, len(r.Header))
	for k := range r.Header {
		headers[textproto.CanonicalMIMEHeaderKey(k)] = r.Header.Get(k)
	}

	var reference *string
	if ref, ok := payload["reference"].(string); ok && ref != "" {
		reference = &ref
	}

	result, err := h.service.Ingest(r.Context(), IngestInput{
		Provider:        provider,
		ProviderEventID: eventID(payload),
		Reference:       reference,
		RawBody:         rawBody,
		Headers:         headers,
		Payload:         payload,
	})
	if err != nil {
		utils.BuildErrorResponse(w, http.StatusInternalServerError, "could not process webhook", nil)
		return
	}

	utils.BuildSuccessResponse(w, http.StatusOK, "webhook accepted", map[string]any{
		"webhookId":   result.Entry.ID,
		"processed":   result.Entry.Status == StatusProcessed,
		"isDuplicate": result.IsDuplicate,
		"status":      result.Entry.Status,
	})
}

type replayRequest struct {
	WebhookID string `json:"webhookId" validate:"required,uuid"`
	Reason    string `json:"reason" validate:"required"`
}

// Replay handles POST /v1/ops/replay-webhook.
func (h *Handler) Replay(w http.ResponseWriter, r *http.Request) {
	var req replayRequest
	if status, err := utils.DecodeJSONBody(w, r, &req); err != nil {
		utils.BuildErrorResponse(w, status, err.Error(), nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.BuildErrorResponse(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	entry, err := h.service.Replay(r.Context(), req.WebhookID)
	if err != nil {
		utils.BuildErrorResponse(w, http.StatusInternalServerError, "could not replay webhook", nil)
		return
	}

	utils.BuildSuccessResponse(w, http.StatusOK, "webhook replayed", entry)
}

func eventID(payload map[string]any) string {
	if id, ok := payload["id"].(string); ok && id != "" {
		return id
	}
	if data, ok := payload["data"].(map[string]any); ok {
		if id, ok := data["id"].(string); ok && id != "" {
			return id
		}
	}
	return ""
}
