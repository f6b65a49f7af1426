package ledger

import (
	"net/http"
	"time"

	"github.com/flowsettle/ledgercore/pkg/utils"
	"github.com/gorilla/mux"
)

// Handler adapts Reader to HTTP.
type Handler struct {
	reader *Reader
}

// NewHandler constructs a Handler over reader.
func NewHandler(reader *Reader) *Handler {
	return &Handler{reader: reader}
}

// ListEntries handles GET /v1/ledger/entries.
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := EntryFilter{
		AccountID: q.Get("accountId"),
		Reference: q.Get("reference"),
		OrderID:   q.Get("orderId"),
		EntryType: EntryType(q.Get("entryType")),
	}
	if v := q.Get("fromDate"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.FromDate = &t
		}
	}
	if v := q.Get("toDate"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.ToDate = &t
		}
	}
	limit, _, page := utils.GetPaginationDetails(r)
	filter.Limit = limit
	filter.Page = page

	entries, total, err := h.reader.ListEntries(filter)
	if err != nil {
		utils.BuildErrorResponse(w, http.StatusInternalServerError, "could not list ledger entries", nil)
		return
	}

	utils.BuildSuccessResponse(w, http.StatusOK, "ledger entries", map[string]any{
		"entries": entries,
		"total":   total,
		"page":    filter.Page,
		"limit":   filter.Limit,
	})
}

// GetBalance handles GET /v1/wallets/{accountId}/balance.
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	accountID := mux.Vars(r)["accountId"]
	bal, err := h.reader.GetBalance(accountID)
	if err != nil {
		utils.BuildErrorResponse(w, http.StatusNotFound, "balance not found", nil)
		return
	}
	utils.BuildSuccessResponse(w, http.StatusOK, "wallet balance", bal)
}

type verifyChainRequest struct {
	AccountID string `json:"accountId" validate:"required"`
	FromSeq   int64  `json:"fromSeq,omitempty"`
	ToSeq     int64  `json:"toSeq,omitempty"`
}

// VerifyChain handles POST /v1/ledger/verify-chain.
func (h *Handler) VerifyChain(w http.ResponseWriter, r *http.Request) {
	var req verifyChainRequest
	if status, err := utils.DecodeJSONBody(w, r, &req); err != nil {
		utils.BuildErrorResponse(w, status, err.Error(), nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.BuildErrorResponse(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := VerifyChain(h.reader.db, req.AccountID, req.FromSeq, req.ToSeq)
	if err != nil {
		utils.BuildErrorResponse(w, http.StatusInternalServerError, "could not verify chain", nil)
		return
	}
	utils.BuildSuccessResponse(w, http.StatusOK, result.Message, result)
}
