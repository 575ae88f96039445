package invoicedoc

import (
	"fmt"
	"strconv"
)

// FormatAmount renders a whole FCFA amount with space-separated thousands,
// the way the printed tickets always showed it: 3000 -> "3 000".
func FormatAmount(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}

	var out []byte
	for i, digit := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ' ')
		}
		out = append(out, digit)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

// FormatNumber zero-pads an invoice number to four digits.
func FormatNumber(n int64) string {
	return fmt.Sprintf("%04d", n)
}

var frMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}
