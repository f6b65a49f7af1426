package paymentintent

import (
	"time"

	"github.com/flowsettle/ledgercore/internal/reference"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// CreateInput is the creation contract for a payment intent.
type CreateInput struct {
	OrderID        string
	Amount         decimal.Decimal
	OriginalAmount decimal.Decimal
	DiscountCode   *string
	Provider       string
	Currency       string
	Metadata       map[string]any
}

// Service implements the Payment Intent Lifecycle (C3).
type Service struct {
	repo Repository
}

// NewService constructs a Service over repo.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create enforces the amount/discount invariants and persists a new intent
// in PENDING, or returns the existing one unchanged if its reference
// (derived from orderId) already exists — creation is idempotent on
// reference, first writer wins the full record.
func (s *Service) Create(in CreateInput) (*PaymentIntent, error) {
	if !in.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if in.OriginalAmount.LessThan(in.Amount) {
		return nil, ErrInvalidAmounts
	}
	discountAmount := in.OriginalAmount.Sub(in.Amount)
	if discountAmount.IsNegative() {
		return nil, ErrInvalidDiscount
	}
	if discountAmount.IsPositive() && (in.DiscountCode == nil || *in.DiscountCode == "") {
		return nil, ErrDiscountCodeRequired
	}

	ref := reference.PaymentReference(in.OrderID)

	existing, err := s.repo.FindByReference(ref)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	currency := in.Currency
	if currency == "" {
		currency = "NGN"
	}

	now := time.Now().UTC()
	intent := &PaymentIntent{
		ID:             uuid.New(),
		Reference:      ref,
		OrderID:        in.OrderID,
		Amount:         in.Amount,
		OriginalAmount: in.OriginalAmount,
		DiscountAmount: discountAmount,
		DiscountCode:   in.DiscountCode,
		Provider:       in.Provider,
		Currency:       currency,
		Metadata:       datatypes.JSONMap(in.Metadata),
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(intent); err != nil {
		return nil, err
	}
	return intent, nil
}

// GetByID reads an intent by id.
func (s *Service) GetByID(id string) (*PaymentIntent, error) {
	return s.repo.FindByID(id)
}

// GetByReference reads an intent by reference.
func (s *Service) GetByReference(ref string) (*PaymentIntent, error) {
	intent, err := s.repo.FindByReference(ref)
	if err != nil {
		return nil, err
	}
	if intent == nil {
		return nil, ErrNotFound
	}
	return intent, nil
}

// GetByOrderID derives the reference from orderID and reads by it.
func (s *Service) GetByOrderID(orderID string) (*PaymentIntent, error) {
	return s.GetByReference(reference.PaymentReference(orderID))
}

// Transition advances intent id from its current status to 'to', failing if
// the move is not in the forward-only state machine.
func (s *Service) Transition(intent *PaymentIntent, to Status) error {
	if !CanTransition(intent.Status, to) {
		return ErrInvalidTransition
	}
	if err := s.repo.UpdateStatus(intent.ID.String(), to); err != nil {
		return err
	}
	intent.Status = to
	return nil
}
