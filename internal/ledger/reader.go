package ledger

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Reader exposes the ledger's read-only surface. Every other component in
// the system (webhook ingress, HTTP adapters, ops tooling) depends on this,
// never on Engine — only the Settlement Orchestrator is allowed to mutate
// the chain.
type Reader struct {
	db *gorm.DB
}

// NewReader constructs a Reader bound to db.
func NewReader(db *gorm.DB) *Reader {
	return &Reader{db: db}
}

// EntryFilter narrows ListEntries, mirroring the query parameters exposed on
// the ledger entries listing endpoint.
type EntryFilter struct {
	AccountID string
	Reference string
	OrderID   string
	EntryType EntryType
	FromDate  *time.Time
	ToDate    *time.Time
	Page      int
	Limit     int
}

// ListEntries returns a page of entries matching filter, newest first, and
// the total count across the whole filter (for pagination metadata).
func (r *Reader) ListEntries(filter EntryFilter) ([]LedgerEntry, int64, error) {
	q := r.db.Model(&LedgerEntry{})
	if filter.AccountID != "" {
		q = q.Where("account_id = ?", filter.AccountID)
	}
	if filter.Reference != "" {
		q = q.Where("reference = ?", filter.Reference)
	}
	if filter.OrderID != "" {
		q = q.Where("order_id = ?", filter.OrderID)
	}
	if filter.EntryType != "" {
		q = q.Where("entry_type = ?", filter.EntryType)
	}
	if filter.FromDate != nil {
		q = q.Where("created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		q = q.Where("created_at <= ?", *filter.ToDate)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	var entries []LedgerEntry
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// GetBalance returns the balance cache row for accountID.
func (r *Reader) GetBalance(accountID string) (*WalletBalanceCache, error) {
	var bal WalletBalanceCache
	err := r.db.Where("account_id = ?", accountID).First(&bal).Error
	if err != nil {
		return nil, err
	}
	return &bal, nil
}

// VerifyChain runs Engine.VerifyChain against the live database outside any
// caller transaction — chain verification is read-only by construction.
func VerifyChain(db *gorm.DB, accountID string, fromSeq, toSeq int64) (VerifyChainResult, error) {
	e := NewEngine()
	return e.VerifyChain(db, accountID, fromSeq, toSeq)
}

// RecomputeBalance runs Engine.RecomputeBalance against the live database.
func RecomputeBalance(db *gorm.DB, accountID string) (decimal.Decimal, error) {
	e := NewEngine()
	return e.RecomputeBalance(db, accountID)
}
