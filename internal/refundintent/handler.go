package refundintent

import (
	"errors"
	"net/http"

	"github.com/flowsettle/ledgercore/internal/paymentintent"
	"github.com/flowsettle/ledgercore/pkg/utils"
	"github.com/shopspring/decimal"
)

// Handler adapts Service to HTTP.
type Handler struct {
	service    *Service
	paymentSvc *paymentintent.Service
}

// NewHandler constructs a Handler over service, resolving the target
// payment intent through paymentSvc before handing off to Create.
func NewHandler(service *Service, paymentSvc *paymentintent.Service) *Handler {
	return &Handler{service: service, paymentSvc: paymentSvc}
}

type createRequest struct {
	PaymentIntentID string  `json:"paymentIntentId" validate:"required,uuid"`
	Amount          string  `json:"amount" validate:"required"`
	Reason          string  `json:"reason" validate:"required"`
	Description     *string `json:"description,omitempty"`
}

// Create handles POST /v1/intents/refunds.
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

	payment, err := h.paymentSvc.GetByID(req.PaymentIntentID)
	if err != nil || payment == nil {
		utils.BuildErrorResponse(w, http.StatusNotFound, "payment intent not found", nil)
		return
	}

	refund, err := h.service.Create(CreateInput{
		Payment:     payment,
		Amount:      amount,
		Reason:      req.Reason,
		Description: req.Description,
	})
	if err != nil {
		writeCreateError(w, err)
		return
	}

	utils.BuildSuccessResponse(w, http.StatusCreated, "refund intent created", refund)
}

func writeCreateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrPaymentNotSettled), errors.Is(err, ErrRefundExceedsRemaining):
		utils.BuildErrorResponse(w, http.StatusUnprocessableEntity, err.Error(), nil)
	default:
		utils.BuildErrorResponse(w, http.StatusInternalServerError, "could not create refund intent", nil)
	}
}
