package refundintent

import (
	"errors"

	"gorm.io/gorm"
)

// Repository is the storage surface for RefundIntent.
type Repository interface {
	Create(refund *RefundIntent) error
	FindByID(id string) (*RefundIntent, error)
	// NonFailedByPayment returns every refund intent on paymentIntentID whose
	// status is not FAILED, newest-minted last — used both to compute the
	// next mint sequence and to sum the remaining refundable balance.
	NonFailedByPayment(paymentIntentID string) ([]RefundIntent, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(refund *RefundIntent) error {
	return r.db.Create(refund).Error
}

func (r *repository) FindByID(id string) (*RefundIntent, error) {
	var refund RefundIntent
	err := r.db.Where("id = ?", id).First(&refund).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &refund, nil
}

func (r *repository) NonFailedByPayment(paymentIntentID string) ([]RefundIntent, error) {
	var refunds []RefundIntent
	err := r.db.Where("payment_intent_id = ? AND status <> ?", paymentIntentID, StatusFailed).
		Order("created_at ASC").
		Find(&refunds).Error
	if err != nil {
		return nil, err
	}
	return refunds, nil
}
