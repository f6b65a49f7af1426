package webhook

import "errors"

// ErrSignatureInvalid is returned by a Verifier when the payload's signature
// does not match. It is not retryable; the caller persists the entry as
// FAILED for audit and replay.
var ErrSignatureInvalid = errors.New("webhook: signature invalid")

// ErrUnknownProvider names the case where no Verifier is registered for a
// provider name. Service does not return it: outside dev mode an
// unregistered provider fails verification, and its inbox entry is stored
// FAILED with ErrSignatureInvalid's message.
var ErrUnknownProvider = errors.New("webhook: unknown provider")

// ErrNotFound is returned when a replay targets an id with no inbox row.
var ErrNotFound = errors.New("webhook: inbox entry not found")
