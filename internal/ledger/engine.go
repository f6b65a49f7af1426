// Package ledger implements an append-only, hash-chained ledger with a
// reconstructable per-account balance cache. Engine.Append is the only write
// path — and the only caller permitted to invoke it is the Settlement
// Orchestrator (internal/settlement); every other component holds a
// read-only Reader.
package ledger

import (
	"fmt"
	"time"

	"github.com/flowsettle/ledgercore/pkg/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Engine implements the append/verify/recompute operations. It holds no
// database handle of its own — every method takes the caller's transaction,
// because the sole-writer invariant means appends only ever happen inside
// the Settlement Orchestrator's single transaction.
type Engine struct {
	repo repository
}

// NewEngine constructs a ledger Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// AppendInput is the input to Append.
type AppendInput struct {
	Reference   string
	OrderID     *string
	AccountID   string
	EntryType   EntryType
	Amount      decimal.Decimal
	Description *string
}

// Append inserts one ledger entry under tx and maintains the account's
// balance cache atomically. It must run inside a transaction strong enough
// to serialize concurrent appenders on the same account (the tail lock below
// plus the caller's serializable isolation).
func (e *Engine) Append(tx *gorm.DB, in AppendInput) (*LedgerEntry, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("ledger: amount must be strictly positive, got %s", in.Amount)
	}

	// Step 1: idempotency probe.
	existing, err := e.repo.findByReference(tx, in.AccountID, in.Reference)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		metrics.RecordLedgerAppend("idempotent_hit")
		return existing, nil
	}

	// Step 2: tail lock.
	tail, err := e.repo.lockTail(tx, in.AccountID)
	if err != nil {
		return nil, err
	}

	var prevHash *string
	var walletSeq int64 = 1
	if tail != nil {
		h := tail.EntryHash
		prevHash = &h
		walletSeq = tail.WalletSeq + 1
	}

	// Step 3/4: compute the canonical hash.
	entryHash := ComputeEntryHash(prevHash, in.AccountID, walletSeq, in.Reference, in.EntryType, in.Amount, in.Description)

	entry := &LedgerEntry{
		ID:          uuid.New(),
		AccountID:   in.AccountID,
		WalletSeq:   walletSeq,
		Reference:   in.Reference,
		OrderID:     in.OrderID,
		EntryType:   in.EntryType,
		Amount:      in.Amount,
		Description: in.Description,
		PrevHash:    prevHash,
		EntryHash:   entryHash,
		CreatedAt:   time.Now().UTC(),
	}

	// Step 5: insert.
	if err := e.repo.insert(tx, entry); err != nil {
		return nil, err
	}

	// Step 6: balance update.
	bal, err := e.repo.lockBalance(tx, in.AccountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	switch {
	case bal == nil && in.EntryType == Debit:
		metrics.RecordLedgerAppend("debit_on_non_existent_wallet")
		return nil, ErrDebitOnNonExistentWallet
	case bal == nil:
		if err := e.repo.createBalance(tx, &WalletBalanceCache{
			AccountID:     in.AccountID,
			Balance:       in.Amount,
			Currency:      "NGN",
			LastEntrySeq:  walletSeq,
			LastUpdatedAt: now,
		}); err != nil {
			return nil, err
		}
	default:
		newBalance := bal.Balance
		if in.EntryType == Credit {
			newBalance = newBalance.Add(in.Amount)
		} else {
			newBalance = newBalance.Sub(in.Amount)
		}
		if newBalance.IsNegative() {
			metrics.RecordLedgerAppend("insufficient_balance")
			return nil, ErrInsufficientBalance
		}
		bal.Balance = newBalance
		bal.LastEntrySeq = walletSeq
		bal.LastUpdatedAt = now
		if err := e.repo.updateBalance(tx, bal); err != nil {
			return nil, err
		}
	}

	metrics.RecordLedgerAppend("ok")
	return entry, nil
}

// VerifyChainResult is the outcome of VerifyChain.
type VerifyChainResult struct {
	Valid           bool
	EntriesVerified int
	BrokenAtSeq     int64
	ExpectedHash    string
	ActualHash      string
	Message         string
}

// VerifyChain recomputes and checks every entry's hash and prevHash linkage
// over [fromSeq, toSeq] (either zero means unbounded on that side).
func (e *Engine) VerifyChain(tx *gorm.DB, accountID string, fromSeq, toSeq int64) (VerifyChainResult, error) {
	var expectedPrev *string
	if fromSeq > 1 {
		bootstrap, err := e.repo.entryBySeq(tx, accountID, fromSeq-1)
		if err != nil {
			return VerifyChainResult{}, err
		}
		if bootstrap != nil {
			h := bootstrap.EntryHash
			expectedPrev = &h
		}
	}

	entries, err := e.repo.entriesInRange(tx, accountID, fromSeq, toSeq)
	if err != nil {
		return VerifyChainResult{}, err
	}

	result := verifyEntries(entries, expectedPrev)
	if !result.Valid {
		metrics.RecordChainVerifyFailure()
	}
	return result, nil
}

// verifyEntries is the pure core of VerifyChain: given entries already
// fetched in ascending walletSeq order and the expected prevHash to
// bootstrap from, it recomputes and checks each entry's hash and linkage.
// Factored out so the algorithm is unit-testable without a database.
func verifyEntries(entries []LedgerEntry, expectedPrev *string) VerifyChainResult {
	verified := 0
	for _, entry := range entries {
		expectedHash := ComputeEntryHash(entry.PrevHash, entry.AccountID, entry.WalletSeq, entry.Reference, entry.EntryType, entry.Amount, entry.Description)
		if expectedHash != entry.EntryHash {
			return VerifyChainResult{
				Valid:           false,
				EntriesVerified: verified,
				BrokenAtSeq:     entry.WalletSeq,
				ExpectedHash:    expectedHash,
				ActualHash:      entry.EntryHash,
				Message:         fmt.Sprintf("Chain broken at sequence %d", entry.WalletSeq),
			}
		}

		if !sameHash(entry.PrevHash, expectedPrev) {
			return VerifyChainResult{
				Valid:           false,
				EntriesVerified: verified,
				BrokenAtSeq:     entry.WalletSeq,
				ExpectedHash:    derefOrEmpty(expectedPrev),
				ActualHash:      derefOrEmpty(entry.PrevHash),
				Message:         "Previous hash mismatch",
			}
		}

		h := entry.EntryHash
		expectedPrev = &h
		verified++
	}

	return VerifyChainResult{
		Valid:           true,
		EntriesVerified: verified,
		Message:         "Chain integrity verified",
	}
}

// RecomputeBalance reduces every entry on accountID to a balance, for
// cache-vs-chain audits. It must equal the cached balance.
func (e *Engine) RecomputeBalance(tx *gorm.DB, accountID string) (decimal.Decimal, error) {
	entries, err := e.repo.entriesInRange(tx, accountID, 0, 0)
	if err != nil {
		return decimal.Decimal{}, err
	}
	balance := decimal.Zero
	for _, entry := range entries {
		if entry.EntryType == Credit {
			balance = balance.Add(entry.Amount)
		} else {
			balance = balance.Sub(entry.Amount)
		}
	}
	return balance, nil
}

func sameHash(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
