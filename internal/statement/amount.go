package statement

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/dailyspend/internal/model"
)

// ParseAmount reads a withdrawal amount from a currency formatted cell such as
// "₹1,200.50", "Rs. 50" or "INR 50". Everything except ASCII digits and '.'
// is dropped, as is a '.' that closes an abbreviation, and the leading number
// is used ("1.2.3" reads as 1.2). ok is false when no
// number remains or the amount is not positive.
func ParseAmount(c model.Cell) (decimal.Decimal, bool) {
	var text string
	switch c.Kind {
	case model.CellText:
		text = c.Text
	default:
		// Empty, or a decoded date in the amount column: never a spend.
		return decimal.Zero, false
	}

	var b strings.Builder
	prev := rune(0)
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !unicode.IsLetter(prev):
			// A dot right after a letter ends a symbol such as "Rs.".
			b.WriteRune(r)
		}
		prev = r
	}
	stripped := b.String()

	num := leadingNumber(stripped)
	if num == "" {
		return decimal.Zero, false
	}

	amount, err := decimal.NewFromString(num)
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, false
	}
	return amount, true
}

// leadingNumber returns the longest prefix of s of the form digits[.digits]
// containing at least one digit, or "".
func leadingNumber(s string) string {
	end := 0
	digits := 0
	seenDot := false
	for end < len(s) {
		ch := s[end]
		if ch == '.' {
			if seenDot {
				break
			}
			seenDot = true
		} else {
			digits++
		}
		end++
	}
	if digits == 0 {
		return ""
	}
	num := strings.TrimSuffix(s[:end], ".")
	if strings.HasPrefix(num, ".") {
		num = "0" + num
	}
	return num
}
