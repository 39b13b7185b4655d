// Package pricing implements the currency-prefixed price format used on the
// wire by the learning platform (e.g. "VND1,000.00") and exact arithmetic
// over it. Amounts are held as integer minor units so arithmetic never goes
// through floating point.
package pricing

import (
	"errors"
	"fmt"
	"strings"
)

// Price is a (currency, amount) pair. Amount is in minor units — hundredths
// of the major unit, matching the two fractional digits of the wire format.
type Price struct {
	Currency string
	Amount   int64
}

// ErrMalformed is returned by Parse for strings that do not match the
// CCY#,###.## wire format.
var ErrMalformed = errors.New("malformed price string")

// Parse splits a wire price string into its 3-letter currency prefix and
// decimal amount. Grouping separators are stripped; at most two fractional
// digits are accepted.
func Parse(s string) (Price, error) {
	if len(s) < 4 {
		return Price{}, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	currency := s[:3]
	for _, r := range currency {
		if r < 'A' || r > 'Z' {
			return Price{}, fmt.Errorf("%w: bad currency code in %q", ErrMalformed, s)
		}
	}

	rest := strings.ReplaceAll(s[3:], ",", "")
	negative := false
	if strings.HasPrefix(rest, "-") {
		negative = true
		rest = rest[1:]
	}

	intPart := rest
	fracPart := ""
	if dot := strings.IndexByte(rest, '.'); dot >= 0 {
		intPart, fracPart = rest[:dot], rest[dot+1:]
	}
	if intPart == "" || len(fracPart) > 2 {
		return Price{}, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	// Pad to exactly two fractional digits.
	for len(fracPart) < 2 {
		fracPart += "0"
	}

	var amount int64
	for _, r := range intPart + fracPart {
		if r < '0' || r > '9' {
			return Price{}, fmt.Errorf("%w: %q", ErrMalformed, s)
		}
		amount = amount*10 + int64(r-'0')
	}
	if negative {
		amount = -amount
	}
	return Price{Currency: currency, Amount: amount}, nil
}

// MustParse is Parse that panics on error. For literals in wiring and tests.
func MustParse(s string) Price {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String renders the wire format: currency prefix, thousands-grouped integer
// part, exactly two fractional digits.
func (p Price) String() string {
	amount := p.Amount
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	intPart := fmt.Sprintf("%d", amount/100)
	frac := amount % 100

	var b strings.Builder
	b.WriteString(p.Currency)
	b.WriteString(sign)
	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteByte(',')
		b.WriteString(intPart[i : i+3])
	}
	fmt.Fprintf(&b, ".%02d", frac)
	return b.String()
}

// Sub returns p minus q. The operands must share a currency; a mismatch is a
// data-integrity violation upstream and panics rather than coercing.
func (p Price) Sub(q Price) Price {
	if p.Currency != q.Currency {
		panic(fmt.Sprintf("pricing: currency mismatch %s vs %s", p.Currency, q.Currency))
	}
	return Price{Currency: p.Currency, Amount: p.Amount - q.Amount}
}

// PercentOff returns p reduced by percent (0–100). The reduced amount is
// rounded half-up on minor units, so an exact half rounds to the larger value.
func (p Price) PercentOff(percent int) Price {
	// Amount in half-minor-units keeps the .5 boundary exact.
	amount := (p.Amount*int64(100-percent)*2 + 100) / 200
	return Price{Currency: p.Currency, Amount: amount}
}

// MarshalJSON emits the wire string format.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// UnmarshalJSON parses the wire string format.
func (p *Price) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("%w: %s", ErrMalformed, data)
	}
	parsed, err := Parse(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
