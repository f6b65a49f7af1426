package refundintent

import (
	"time"

	"github.com/flowsettle/ledgercore/internal/paymentintent"
	"github.com/flowsettle/ledgercore/internal/reference"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInput is the creation contract for a refund intent.
type CreateInput struct {
	Payment     *paymentintent.PaymentIntent
	Amount      decimal.Decimal
	Reason      string
	Description *string
}

// Service implements refund intent creation and invariant enforcement.
type Service struct {
	repo Repository
}

// NewService constructs a Service over repo.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create mints a refund intent against in.Payment, enforcing that the
// payment is SETTLED and that the sum of all non-failed refund amounts on it
// (including this one) does not exceed the payment's amount.
func (s *Service) Create(in CreateInput) (*RefundIntent, error) {
	if in.Payment.Status != paymentintent.StatusSettled {
		return nil, ErrPaymentNotSettled
	}

	existing, err := s.repo.NonFailedByPayment(in.Payment.ID.String())
	if err != nil {
		return nil, err
	}

	committed := decimal.Zero
	for _, r := range existing {
		committed = committed.Add(r.Amount)
	}
	if committed.Add(in.Amount).GreaterThan(in.Payment.Amount) {
		return nil, ErrRefundExceedsRemaining
	}

	sequence := len(existing) + 1
	ref := reference.RefundReference(in.Payment.ID.String(), sequence)

	now := time.Now().UTC()
	refund := &RefundIntent{
		ID:              uuid.New(),
		Reference:       ref,
		PaymentIntentID: in.Payment.ID,
		Amount:          in.Amount,
		Reason:          in.Reason,
		Description:     in.Description,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(refund); err != nil {
		return nil, err
	}
	return refund, nil
}

// GetByID reads a refund intent by id.
func (s *Service) GetByID(id string) (*RefundIntent, error) {
	return s.repo.FindByID(id)
}
