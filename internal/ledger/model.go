package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryType distinguishes the two legs a ledger entry can take.
type EntryType string

const (
	Credit EntryType = "CREDIT"
	Debit  EntryType = "DEBIT"
)

// LedgerEntry is an immutable, hash-chained record of a single credit or
// debit against one account. Rows are never updated or deleted.
type LedgerEntry struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID   string          `gorm:"column:account_id;not null;index:idx_ledger_account_ref,unique;index:idx_ledger_account_seq,unique" json:"accountId"`
	WalletSeq   int64           `gorm:"column:wallet_seq;not null;index:idx_ledger_account_seq,unique" json:"walletSeq"`
	Reference   string          `gorm:"column:reference;not null;index:idx_ledger_account_ref,unique" json:"reference"`
	OrderID     *string         `gorm:"column:order_id" json:"orderId,omitempty"`
	EntryType   EntryType       `gorm:"column:entry_type;not null" json:"entryType"`
	Amount      decimal.Decimal `gorm:"column:amount;type:numeric(20,4);not null" json:"amount"`
	Description *string         `gorm:"column:description" json:"description,omitempty"`
	PrevHash    *string         `gorm:"column:prev_hash" json:"prevHash"`
	EntryHash   string          `gorm:"column:entry_hash;not null" json:"entryHash"`
	CreatedAt   time.Time       `gorm:"column:created_at;not null" json:"createdAt"`
}

// idx_ledger_account_ref enforces (accountId, reference) uniqueness;
// idx_ledger_account_seq enforces (accountId, walletSeq) uniqueness.

// TableName pins the table name so callers relying on raw SQL (the tail
// lock) match gorm's naming.
func (LedgerEntry) TableName() string { return "ledger_entries" }

// WalletBalanceCache is the derived, mutable per-account balance. It is
// only ever written from inside the same transaction that appends the
// entry driving the change.
type WalletBalanceCache struct {
	AccountID     string          `gorm:"column:account_id;primaryKey" json:"accountId"`
	Balance       decimal.Decimal `gorm:"column:balance;type:numeric(20,4);not null" json:"balance"`
	Currency      string          `gorm:"column:currency;not null;default:NGN" json:"currency"`
	LastEntrySeq  int64           `gorm:"column:last_entry_seq;not null" json:"lastEntrySeq"`
	LastUpdatedAt time.Time       `gorm:"column:last_updated_at;not null" json:"lastUpdatedAt"`
}

func (WalletBalanceCache) TableName() string { return "wallet_balance_caches" }

// Genesis account identifiers seeded at installation.
const (
	AccountMarketingWallet = "MARKETING_WALLET"
	AccountPlatformEscrow  = "PLATFORM_ESCROW"
	AccountLegacyMigration = "LEGACY_MIGRATION_WALLET"
)

// GenesisMarketingWalletReference is the reference of the one genesis
// ledger entry in the system — the chain admits exactly one walletSeq=1,
// prevHash=nil origin per account, and only MARKETING_WALLET starts funded.
const GenesisMarketingWalletReference = "GENESIS_MARKETING_WALLET"
