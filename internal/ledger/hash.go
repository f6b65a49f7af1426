package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/flowsettle/ledgercore/pkg/money"
	"github.com/shopspring/decimal"
)

// ComputeEntryHash serializes an entry byte for byte into a fixed-order
// object {prevHash, accountId, walletSeq, reference, entryType, amount,
// description}, with prevHash/description serializing as JSON null when
// absent, amount as its scale-4 canonical string, and entryType as the bare
// literal, then hashes it. This is hand-written rather than routed through
// encoding/json on a map because key order and the null-vs-omitted
// distinction must never drift between runs. It is exported because the
// hash format is part of the external contract: auditors reproduce it
// independently.
func ComputeEntryHash(prevHash *string, accountID string, walletSeq int64, ref string, entryType EntryType, amount decimal.Decimal, description *string) string {
	var b strings.Builder
	b.WriteByte('{')

	b.WriteString(`"prevHash":`)
	writeJSONStringOrNull(&b, prevHash)
	b.WriteByte(',')

	b.WriteString(`"accountId":`)
	writeJSONString(&b, accountID)
	b.WriteByte(',')

	b.WriteString(`"walletSeq":`)
	b.WriteString(strconv.FormatInt(walletSeq, 10))
	b.WriteByte(',')

	b.WriteString(`"reference":`)
	writeJSONString(&b, ref)
	b.WriteByte(',')

	b.WriteString(`"entryType":`)
	writeJSONString(&b, string(entryType))
	b.WriteByte(',')

	b.WriteString(`"amount":`)
	writeJSONString(&b, money.Canonical(amount))
	b.WriteByte(',')

	b.WriteString(`"description":`)
	writeJSONStringOrNull(&b, description)

	b.WriteByte('}')

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func writeJSONStringOrNull(b *strings.Builder, s *string) {
	if s == nil {
		b.WriteString("null")
		return
	}
	writeJSONString(b, *s)
}

// writeJSONString escapes s as a JSON string literal. Account ids,
// references, the fixed entry-type literals and canonical decimal strings
// stay within `[A-Za-z0-9_.-]`, but descriptions are free text (settlement
// writes ones with spaces and parentheses, and one could carry quotes), so
// every string goes through the same escaping.
func writeJSONString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				b.WriteString("\\u")
				const hexdigits = "0123456789abcdef"
				b.WriteByte(hexdigits[(r>>12)&0xF])
				b.WriteByte(hexdigits[(r>>8)&0xF])
				b.WriteByte(hexdigits[(r>>4)&0xF])
				b.WriteByte(hexdigits[r&0xF])
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
}
