package webhook

import (
	"errors"

	"gorm.io/gorm"
)

// Repository is the storage surface for InboxEntry.
type Repository interface {
	FindByProviderEvent(provider, providerEventID string) (*InboxEntry, error)
	Create(entry *InboxEntry) error
	FindByID(id string) (*InboxEntry, error)
	Save(entry *InboxEntry) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByProviderEvent(provider, providerEventID string) (*InboxEntry, error) {
	var entry InboxEntry
	err := r.db.Where("provider = ? AND provider_event_id = ?", provider, providerEventID).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) Create(entry *InboxEntry) error {
	return r.db.Create(entry).Error
}

func (r *repository) FindByID(id string) (*InboxEntry, error) {
	var entry InboxEntry
	err := r.db.Where("id = ?", id).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) Save(entry *InboxEntry) error {
	return r.db.Save(entry).Error
}
