package bookstore

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Cents is a price in hundredths of the currency unit. Prices are kept as
// integers so that quantity × price never drifts.
type Cents int64

// ParsePrice reads a decimal price such as "24.99", "$5" or "3.5".
// At most two fractional digits are accepted.
func ParsePrice(s string) (Cents, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimPrefix(raw, "$")
	if raw == "" {
		return 0, fmt.Errorf("invalid price %q", s)
	}

	neg := false
	if raw[0] == '-' || raw[0] == '+' {
		neg = raw[0] == '-'
		raw = raw[1:]
	}

	whole, frac, hasFrac := strings.Cut(raw, ".")
	if whole == "" && (!hasFrac || frac == "") {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("invalid price %q: more than two decimal places", s)
	}

	var units int64
	if whole != "" {
		if !digitsOnly(whole) {
			return 0, fmt.Errorf("invalid price %q", s)
		}
		v, err := strconv.ParseInt(whole, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid price %q: %w", s, err)
		}
		if v > (math.MaxInt64-99)/100 {
			return 0, fmt.Errorf("invalid price %q: out of range", s)
		}
		units = v
	}

	var cents int64
	if frac != "" {
		if !digitsOnly(frac) {
			return 0, fmt.Errorf("invalid price %q", s)
		}
		for len(frac) < 2 {
			frac += "0"
		}
		v, _ := strconv.ParseInt(frac, 10, 64)
		cents = v
	}

	total := Cents(units*100 + cents)
	if neg {
		total = -total
	}
	return total, nil
}

// MustParsePrice is ParsePrice for literals known to be valid.
func MustParsePrice(s string) Cents {
	c, err := ParsePrice(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Times returns the price of qty units. It fails with ErrInvalid when the
// product does not fit in Cents.
func (c Cents) Times(qty int) (Cents, error) {
	if c == 0 || qty == 0 {
		return 0, nil
	}
	p := c * Cents(qty)
	if p/Cents(qty) != c || (qty == -1 && c == math.MinInt64) {
		return 0, fmt.Errorf("%s x %d: total out of range: %w", c, qty, ErrInvalid)
	}
	return p, nil
}

// String formats the price with two decimals, e.g. "74.97".
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
