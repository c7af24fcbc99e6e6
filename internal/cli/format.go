package cli

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"gachaledger/internal/model"
)

// FormatMoney renders an amount with its currency symbol and thousands
// separators. Whole amounts print without a fraction; fractional ones
// keep two digits, as card statements show them.
func FormatMoney(amount float64, currency model.Currency) string {
	if amount == float64(int64(amount)) {
		return string(currency) + humanize.Comma(int64(amount))
	}
	return string(currency) + humanize.CommafWithDigits(amount, 2)
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// FormatMonth turns a YYYY-MM key into a short human label like
// "2024년 3월".
func FormatMonth(key string) string {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return key
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return key
	}
	return parts[0] + "년 " + strconv.Itoa(month) + "월"
}
