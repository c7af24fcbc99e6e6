// Package parse extracts amounts and calendar dates from the free-text
// fields of the platform exports.
package parse

import (
	"strconv"
	"strings"

	"gachaledger/internal/model"
)

// FreeMarker is the literal the invoice export uses for no-charge items.
// Callers check for it and skip the record before asking for a price.
const FreeMarker = "무료"

var currencySymbols = []model.Currency{
	model.Won,
	model.Dollar,
	model.Yen,
	model.Euro,
}

// Price extracts a numeric amount and currency symbol from a free-text
// price string such as "₩5,500" or "US$9.26". Malformed or empty input
// yields 0 rather than an error: a corrupt line must never abort a whole
// ingestion. The currency defaults to the won sign when no recognized
// symbol appears.
func Price(s string) (float64, model.Currency) {
	cur := model.Won
	for _, sym := range currencySymbols {
		if strings.Contains(s, string(sym)) {
			cur = sym
			break
		}
	}

	var b strings.Builder
	seenPoint := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenPoint:
			seenPoint = true
			b.WriteRune(r)
		}
	}

	amount, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || amount < 0 {
		return 0, cur
	}
	return amount, cur
}
