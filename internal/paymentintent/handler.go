package paymentintent

import (
	"errors"
	"net/http"

	"github.com/flowsettle/ledgercore/pkg/id"
	"github.com/flowsettle/ledgercore/pkg/utils"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

// Handler adapts Service to HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a Handler over service.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	OrderID        string         `json:"orderId" validate:"required"`
	Amount         string         `json:"amount" validate:"required"`
	OriginalAmount string         `json:"originalAmount" validate:"required"`
	DiscountCode   *string        `json:"discountCode,omitempty"`
	Provider       string         `json:"provider" validate:"required"`
	Currency       string         `json:"currency,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// Create handles POST /v1/intents/payments.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if status, err := utils.DecodeJSONBody(w, r, &req); err != nil {
		utils.BuildErrorResponse(w, status, err.Error(), nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.BuildErrorResponse(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		utils.BuildErrorResponse(w, http.StatusBadRequest, "amount must be a decimal string", nil)
		return
	}
	originalAmount, err := decimal.NewFromString(req.OriginalAmount)
	if err != nil {
		utils.BuildErrorResponse(w, http.StatusBadRequest, "originalAmount must be a decimal string", nil)
		return
	}

	existing, err := h.service.GetByOrderID(req.OrderID)
	alreadyExisted := err == nil && existing != nil

	intent, err := h.service.Create(CreateInput{
		OrderID:        req.OrderID,
		Amount:         amount,
		OriginalAmount: originalAmount,
		DiscountCode:   req.DiscountCode,
		Provider:       req.Provider,
		Currency:       req.Currency,
		Metadata:       req.Metadata,
	})
	if err != nil {
		writeCreateError(w, err)
		return
	}

	status := http.StatusCreated
	if alreadyExisted {
		status = http.StatusOK
	}
	utils.BuildSuccessResponse(w, status, "payment intent created", intent)
}

// Get handles GET /v1/intents/payments/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	rawID := mux.Vars(r)["id"]
	if _, err := id.IsValidUUID(rawID); err != nil {
		utils.BuildErrorResponse(w, http.StatusBadRequest, "id must be a UUID", nil)
		return
	}

	intent, err := h.service.GetByID(rawID)
	if err != nil {
		utils.BuildErrorResponse(w, http.StatusNotFound, "payment intent not found", nil)
		return
	}
	utils.BuildSuccessResponse(w, http.StatusOK, "payment intent", intent)
}

func writeCreateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrInvalidAmounts),
		errors.Is(err, ErrInvalidDiscount), errors.Is(err, ErrDiscountCodeRequired):
		utils.BuildErrorResponse(w, http.StatusBadRequest, err.Error(), nil)
	default:
		utils.BuildErrorResponse(w, http.StatusInternalServerError, "could not create payment intent", nil)
	}
}
