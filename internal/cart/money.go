package cart

import (
	"fmt"
	"strings"

	"github.com/desertthunder/tix/internal/shared"
)

// Amount is a currency value in cents. Arithmetic on ticket and product
// prices stays integral so totals never drift the way binary floats do.
type Amount int64

// ParseAmount parses a decimal literal ("12", "12.5", "12.50") into cents.
//
// More than two fraction digits, an empty string, or any non-numeric input
// is an error. Prices are never coerced to zero.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", shared.ErrInvalidAmount)
	}

	negative := false
	if s[0] == '-' || s[0] == '+' {
		negative = s[0] == '-'
		s = s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("%w: %q", shared.ErrInvalidAmount, s)
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("%w: %q has more than two fraction digits", shared.ErrInvalidAmount, s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	var cents int64
	for _, r := range whole + frac {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q", shared.ErrInvalidAmount, s)
		}
		cents = cents*10 + int64(r-'0')
	}

	if negative {
		cents = -cents
	}

	return Amount(cents), nil
}

// UnmarshalJSON accepts both JSON numbers and numeric strings, since the
// platform serializes prices inconsistently across endpoints.
func (a *Amount) UnmarshalJSON(data []byte) error {
	literal := strings.Trim(string(data), `"`)
	if literal == "null" {
		return fmt.Errorf("%w: null price", shared.ErrInvalidAmount)
	}

	parsed, err := ParseAmount(literal)
	if err != nil {
		return err
	}

	*a = parsed
	return nil
}

// MarshalJSON renders the amount as a decimal string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// Mul scales the amount by an integer quantity.
func (a Amount) Mul(quantity int64) Amount {
	return Amount(int64(a) * quantity)
}

// String renders the amount with two fraction digits.
func (a Amount) String() string {
	cents := int64(a)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
