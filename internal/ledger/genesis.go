package ledger

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedGenesis appends the genesis entry through the same Append path every
// other entry takes — seeding as a special-cased schema row would let the
// chain admit two origins. Idempotent: re-running on an already-seeded
// database is a no-op because Append's idempotency probe short-circuits on
// the genesis reference.
func SeedGenesis(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		e := NewEngine()
		_, err := e.Append(tx, AppendInput{
			Reference: GenesisMarketingWalletReference,
			AccountID: AccountMarketingWallet,
			EntryType: Credit,
			Amount:    decimal.New(10000000000, -4), // 1,000,000.0000
		})
		return err
	})
}
