package paymentintent

import (
	"errors"

	"gorm.io/gorm"
)

// Repository is the storage surface for PaymentIntent.
type Repository interface {
	Create(intent *PaymentIntent) error
	FindByReference(reference string) (*PaymentIntent, error)
	FindByID(id string) (*PaymentIntent, error)
	FindByOrderID(orderID string) (*PaymentIntent, error)
	UpdateStatus(id string, status Status) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(intent *PaymentIntent) error {
	return r.db.Create(intent).Error
}

func (r *repository) FindByReference(reference string) (*PaymentIntent, error) {
	var intent PaymentIntent
	err := r.db.Where("reference = ?", reference).First(&intent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &intent, nil
}

func (r *repository) FindByID(id string) (*PaymentIntent, error) {
	var intent PaymentIntent
	err := r.db.Where("id = ?", id).First(&intent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &intent, nil
}

func (r *repository) FindByOrderID(orderID string) (*PaymentIntent, error) {
	var intent PaymentIntent
	err := r.db.Where("order_id = ?", orderID).First(&intent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &intent, nil
}

func (r *repository) UpdateStatus(id string, status Status) error {
	return r.db.Model(&PaymentIntent{}).Where("id = ?", id).Update("status", status).Error
}
