package domain

import (
	"fmt"
	"strings"
)

// Decimal column shapes, as (integer digits, fractional digits).
var (
	PriceShape      = DecimalShape{IntDigits: 10, Places: 2}
	AreaShape       = DecimalShape{IntDigits: 5, Places: 2}
	CoordinateShape = DecimalShape{IntDigits: 3, Places: 6, Signed: true}
)

// DecimalShape mirrors a NUMERIC(precision, scale) column.
type DecimalShape struct {
	IntDigits int
	Places    int
	Signed    bool
}

// Check returns a user-facing message when raw does not fit the shape, or "".
func (s DecimalShape) Check(raw string) string {
	if raw == "" {
		return "A valid number is required."
	}
	if strings.HasPrefix(raw, "-") {
		if !s.Signed {
			return "Ensure this value is greater than or equal to 0."
		}
		raw = raw[1:]
	}

	intPart, frac, _ := strings.Cut(raw, ".")
	if intPart == "" || !allDigits(intPart) || !allDigits(frac) {
		return "A valid number is required."
	}
	intPart = strings.TrimLeft(intPart, "0")
	if len(intPart) > s.IntDigits {
		return fmt.Sprintf("Ensure that there are no more than %d digits before the decimal point.", s.IntDigits)
	}
	if len(frac) > s.Places {
		return fmt.Sprintf("Ensure that there are no more than %d decimal places.", s.Places)
	}
	return ""
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
