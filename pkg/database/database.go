package database

import (
	"log"

	"github.com/flowsettle/ledgercore/internal/audit"
	"github.com/flowsettle/ledgercore/internal/ledger"
	"github.com/flowsettle/ledgercore/internal/paymentintent"
	"github.com/flowsettle/ledgercore/internal/refundintent"
	"github.com/flowsettle/ledgercore/internal/webhook"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect(dbUrl string) {
	var err error
	DB, err = gorm.Open(postgres.Open(dbUrl), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")
}

// Migrate runs AutoMigrate over every domain model, then seeds the genesis
// ledger entry if it does not already exist.
func Migrate() error {
	if err := DB.AutoMigrate(
		&ledger.LedgerEntry{},
		&ledger.WalletBalanceCache{},
		&paymentintent.PaymentIntent{},
		&refundintent.RefundIntent{},
		&webhook.InboxEntry{},
		&audit.Event{},
	); err != nil {
		return err
	}
	return ledger.SeedGenesis(DB)
}
