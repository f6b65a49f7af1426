package ledger

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// repository isolates the raw SQL the engine needs from the engine's
// business logic.
type repository struct{}

// findByReference probes the idempotency key (accountId, reference) —
// step 1 of Append.
func (repository) findByReference(tx *gorm.DB, accountID, ref string) (*LedgerEntry, error) {
	var entry LedgerEntry
	err := tx.Where("account_id = ? AND reference = ?", accountID, ref).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// lockTail reads the highest-walletSeq entry on accountID under
// SELECT ... FOR UPDATE so concurrent appenders on the same account
// serialize on a real row lock rather than isolation level alone. A nil
// result (no rows) means accountID has no chain yet; the caller treats that
// as walletSeq=1, prevHash=nil.
func (repository) lockTail(tx *gorm.DB, accountID string) (*LedgerEntry, error) {
	var entry LedgerEntry
	err := tx.Raw(`
		SELECT id, account_id, wallet_seq, reference, order_id, entry_type,
		       amount, description, prev_hash, entry_hash, created_at
		FROM ledger_entries
		WHERE account_id = ?
		ORDER BY wallet_seq DESC
		LIMIT 1
		FOR UPDATE
	`, accountID).Scan(&entry).Error
	if err != nil {
		return nil, err
	}
	if entry.WalletSeq == 0 && entry.EntryHash == "" {
		// Scan leaves the struct zero-valued when no row matched.
		return nil, nil
	}
	return &entry, nil
}

func (repository) insert(tx *gorm.DB, entry *LedgerEntry) error {
	return tx.Create(entry).Error
}

// lockBalance reads the balance cache row FOR UPDATE, or nil if the
// account has never been credited.
func (repository) lockBalance(tx *gorm.DB, accountID string) (*WalletBalanceCache, error) {
	var bal WalletBalanceCache
	err := tx.Raw(`
		SELECT account_id, balance, currency, last_entry_seq, last_updated_at
		FROM wallet_balance_caches
		WHERE account_id = ?
		FOR UPDATE
	`, accountID).Scan(&bal).Error
	if err != nil {
		return nil, err
	}
	if bal.AccountID == "" {
		return nil, nil
	}
	return &bal, nil
}

func (repository) createBalance(tx *gorm.DB, bal *WalletBalanceCache) error {
	return tx.Create(bal).Error
}

func (repository) updateBalance(tx *gorm.DB, bal *WalletBalanceCache) error {
	res := tx.Model(&WalletBalanceCache{}).
		Where("account_id = ?", bal.AccountID).
		Updates(map[string]any{
			"balance":         bal.Balance,
			"last_entry_seq":  bal.LastEntrySeq,
			"last_updated_at": bal.LastUpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("ledger: balance cache row for %s vanished mid-transaction", bal.AccountID)
	}
	return nil
}

// entriesInRange returns entries on accountID ordered by walletSeq
// ascending, optionally bounded by [fromSeq, toSeq] (either may be zero to
// mean unbounded on that side).
func (repository) entriesInRange(tx *gorm.DB, accountID string, fromSeq, toSeq int64) ([]LedgerEntry, error) {
	q := tx.Where("account_id = ?", accountID)
	if fromSeq > 0 {
		q = q.Where("wallet_seq >= ?", fromSeq)
	}
	if toSeq > 0 {
		q = q.Where("wallet_seq <= ?", toSeq)
	}
	var entries []LedgerEntry
	if err := q.Order("wallet_seq ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repository) entryBySeq(tx *gorm.DB, accountID string, seq int64) (*LedgerEntry, error) {
	var entry LedgerEntry
	err := tx.Where("account_id = ? AND wallet_seq = ?", accountID, seq).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
