// Package settlement implements C4, the Settlement Orchestrator: the sole
// writer to the ledger. Every other component has read-only access to
// ledger storage; violating that here would be a correctness bug, not a
// policy choice.
package settlement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/flowsettle/ledgercore/internal/audit"
	"github.com/flowsettle/ledgercore/internal/ledger"
	"github.com/flowsettle/ledgercore/internal/paymentintent"
	"github.com/flowsettle/ledgercore/internal/reference"
	"github.com/flowsettle/ledgercore/pkg/metrics"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const settlementTimeout = 10 * time.Second

// Result is the outcome of a settlement attempt.
type Result struct {
	Entries []ledger.LedgerEntry
	Message string
}

// Orchestrator drives a payment intent's settlement transaction.
type Orchestrator struct {
	db       *gorm.DB
	engine   *ledger.Engine
	recorder *audit.Recorder
}

// NewOrchestrator constructs an Orchestrator.
func NewOrchestrator(db *gorm.DB, recorder *audit.Recorder) *Orchestrator {
	return &Orchestrator{db: db, engine: ledger.NewEngine(), recorder: recorder}
}

// SettlePaymentByReference resolves a payment intent by reference and
// delegates to SettlePayment.
func (o *Orchestrator) SettlePaymentByReference(ctx context.Context, ref string) (*Result, error) {
	var intentID string
	err := o.db.WithContext(ctx).Model(&paymentintent.PaymentIntent{}).
		Where("reference = ?", ref).
		Pluck("id", &intentID).Error
	if err != nil {
		return nil, err
	}
	if intentID == "" {
		return nil, ErrIntentNotFound
	}
	return o.SettlePayment(ctx, intentID)
}

// SettlePayment converts a CONFIRMING payment intent into one or three
// ledger entries inside a single serializable transaction. Calling it again
// on an already-SETTLED intent is a safe no-op that returns the existing
// entries.
func (o *Orchestrator) SettlePayment(ctx context.Context, intentID string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, settlementTimeout)
	defer cancel()

	var result *Result
	err := o.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		intent, err := loadIntentForUpdate(tx, intentID)
		if err != nil {
			return err
		}

		if intent.Status == paymentintent.StatusSettled {
			entries, err := existingSettlementEntries(tx, intent.Reference)
			if err != nil {
				return err
			}
			result = &Result{Entries: entries, Message: "Payment already settled"}
			return nil
		}

		if intent.Status != paymentintent.StatusConfirming {
			return ErrInvalidStatusForSettlement
		}

		entries, err := o.emitLegs(tx, intent)
		if err != nil {
			return err
		}

		if err := tx.Model(&paymentintent.PaymentIntent{}).
			Where("id = ?", intent.ID).
			Update("status", paymentintent.StatusSettled).Error; err != nil {
			return err
		}

		if o.recorder != nil {
			if err := o.recorder.Record(tx, "PAYMENT_SETTLED", "settlement-service", audit.OutcomeSuccess, map[string]any{
				"intentId":     intent.ID.String(),
				"reference":    intent.Reference,
				"entriesCount": len(entries),
			}); err != nil {
				return err
			}
		}

		result = &Result{Entries: entries, Message: "Payment settled"}
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if err != nil {
		if errors.Is(err, ErrInvalidStatusForSettlement) {
			metrics.RecordSettlement("invalid_status")
		} else {
			metrics.RecordSettlement("error")
		}
		return nil, err
	}
	if result.Message == "Payment already settled" {
		metrics.RecordSettlement("already_settled")
	} else {
		metrics.RecordSettlement("settled")
	}
	return result, nil
}

// emitLegs appends the primary credit and, when the intent carries a
// discount, the marketing-wallet debit and escrow subsidy credit — in that
// exact order, so the primary credit is observed at a strictly lower
// walletSeq on PLATFORM_ESCROW than the subsidy credit.
func (o *Orchestrator) emitLegs(tx *gorm.DB, intent *paymentintent.PaymentIntent) ([]ledger.LedgerEntry, error) {
	primaryDesc := fmt.Sprintf("Payment received for order %s", intent.OrderID)
	primary, err := o.engine.Append(tx, ledger.AppendInput{
		Reference:   intent.Reference,
		OrderID:     &intent.OrderID,
		AccountID:   ledger.AccountPlatformEscrow,
		EntryType:   ledger.Credit,
		Amount:      intent.Amount,
		Description: &primaryDesc,
	})
	if err != nil {
		return nil, err
	}

	entries := []ledger.LedgerEntry{*primary}

	if intent.DiscountAmount.IsPositive() {
		discountCode := ""
		if intent.DiscountCode != nil {
			discountCode = *intent.DiscountCode
		}

		debitDesc := fmt.Sprintf("Discount subsidy for order %s (%s)", intent.OrderID, discountCode)
		debit, err := o.engine.Append(tx, ledger.AppendInput{
			Reference:   reference.DiscountReference(intent.Reference),
			OrderID:     &intent.OrderID,
			AccountID:   ledger.AccountMarketingWallet,
			EntryType:   ledger.Debit,
			Amount:      intent.DiscountAmount,
			Description: &debitDesc,
		})
		if err != nil {
			return nil, err
		}
		entries = append(entries, *debit)

		creditDesc := fmt.Sprintf("Discount subsidy credit for order %s", intent.OrderID)
		credit, err := o.engine.Append(tx, ledger.AppendInput{
			Reference:   reference.DiscountEscrowReference(intent.Reference),
			OrderID:     &intent.OrderID,
			AccountID:   ledger.AccountPlatformEscrow,
			EntryType:   ledger.Credit,
			Amount:      intent.DiscountAmount,
			Description: &creditDesc,
		})
		if err != nil {
			return nil, err
		}
		entries = append(entries, *credit)
	}

	return entries, nil
}

func loadIntentForUpdate(tx *gorm.DB, intentID string) (*paymentintent.PaymentIntent, error) {
	var intent paymentintent.PaymentIntent
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", intentID).First(&intent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrIntentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &intent, nil
}

// existingSettlementEntries returns every ledger entry belonging to an
// already-settled intent: the primary reference plus its discount legs, if
// any were emitted.
func existingSettlementEntries(tx *gorm.DB, ref string) ([]ledger.LedgerEntry, error) {
	var entries []ledger.LedgerEntry
	err := tx.Where(
		"reference = ? OR reference = ? OR reference = ?",
		ref, reference.DiscountReference(ref), reference.DiscountEscrowReference(ref),
	).Order("created_at ASC").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
