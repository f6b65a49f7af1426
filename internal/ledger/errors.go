package ledger

import "errors"

// Failure taxonomy for the ledger engine.
var (
	// ErrInsufficientBalance is returned when a DEBIT would drive the
	// account's cached balance below zero. The append transaction must be
	// rolled back by the caller.
	ErrInsufficientBalance = errors.New("ledger: insufficient balance")

	// ErrDebitOnNonExistentWallet is returned when a DEBIT targets an
	// account with no balance cache row. Genesis aside, a wallet is born on
	// its first CREDIT; debiting before that is fatal.
	ErrDebitOnNonExistentWallet = errors.New("ledger: debit on non-existent wallet")

	// ErrSerializationFailure names the retryable storage-level conflict
	// from serializable isolation (or the tail lock). No code in this module
	// maps a driver error to it: such conflicts reach callers as the storage
	// driver's own error.
	ErrSerializationFailure = errors.New("ledger: serialization failure")

	// ErrChainBroken names the broken-chain failure. VerifyChain does not
	// return it: a recomputed-hash or prevHash-linkage mismatch is reported
	// as a VerifyChainResult with Valid=false.
	ErrChainBroken = errors.New("ledger: chain broken")
)
