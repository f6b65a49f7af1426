// Package money wraps shopspring/decimal with the scale-4 conventions the
// ledger's canonical hash and wire format depend on.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Scale is the fixed number of fractional digits every amount in the ledger
// is stored and hashed at.
const Scale = 4

// Zero is the additive identity at the ledger's scale.
var Zero = decimal.New(0, 0).Round(Scale)

// ParsePositive parses s as a decimal and requires it to be strictly
// positive, rounding to Scale. Ledger entry amounts are never zero or
// negative — sign is carried by EntryType instead.
func ParsePositive(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("money: invalid amount %q: %w", s, err)
	}
	d = d.Round(Scale)
	if !d.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("money: amount %q must be strictly positive", s)
	}
	return d, nil
}

// Canonical renders d as the exact scale-4 string used by the ledger's
// canonical hash input and wire format, e.g. "1000.0000".
func Canonical(d decimal.Decimal) string {
	return d.StringFixed(Scale)
}
