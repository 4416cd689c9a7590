package service

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Amounts are bounded so every accepted value fits in an int64 and renders
// in constant time.
const (
	maxAmountInputLen   = 64
	maxAmountIntDigits  = 18
	maxAmountFracDigits = 8
)

// FormatAmount renders an amount with thousands separators, e.g. 2,500,000.
func FormatAmount(d decimal.Decimal) string {
	whole := humanize.BigComma(d.Truncate(0).BigInt())
	if d.Sign() < 0 && !strings.HasPrefix(whole, "-") {
		whole = "-" + whole
	}

	s := d.String()
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return whole + s[i:]
	}
	return whole
}

// ParseAmount turns user input into an amount. Surrounding whitespace is
// ignored; anything else that is not a plain decimal number within range is
// rejected.
func ParseAmount(input string) (decimal.Decimal, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if len(s) > maxAmountInputLen {
		return decimal.Zero, fmt.Errorf("%w: too long", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, input)
	}
	if err := checkAmount(d); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", err, input)
	}
	return d, nil
}

// checkAmount works on the coefficient and exponent only, so an input such
// as 1e5000000 is rejected without being expanded.
func checkAmount(d decimal.Decimal) error {
	exp := int64(d.Exponent())
	if exp < -maxAmountFracDigits {
		return fmt.Errorf("%w: more than %d decimal places", ErrInvalidAmount, maxAmountFracDigits)
	}

	digits := int64(len(new(big.Int).Abs(d.Coefficient()).Text(10)))
	if digits+exp > maxAmountIntDigits {
		return fmt.Errorf("%w: out of range", ErrInvalidAmount)
	}
	return nil
}
