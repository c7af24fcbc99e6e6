package recap

import (
	"fmt"
	"strings"

	"gachaledger/internal/cli"
)

const receiptWidth = 38

// ReceiptText renders the whole year as a long plain-text receipt: one
// header per month with its subtotal, one row per purchase, and the year
// total at the bottom. This is the text form of the recap's saveable
// receipt; writing it to a file is the caller's business.
func (r *Recap) ReceiptText() string {
	var b strings.Builder

	center(&b, fmt.Sprintf("%d년 %s 결산", r.Year, r.App))
	rule(&b)

	for _, month := range r.Months() {
		items := r.Timeline[month]
		if len(items) == 0 {
			continue
		}
		center(&b, fmt.Sprintf("- %d월 (%s) -", month, cli.FormatMoney(r.MonthlySpent[month], r.Currency)))
		for _, item := range items {
			row(&b, item.Name, cli.FormatMoney(item.Price, r.Currency))
		}
	}

	rule(&b)
	row(&b, "1년 총계", cli.FormatMoney(r.Total, r.Currency))
	center(&b, "||| || ||| | ||||")
	return b.String()
}

func rule(b *strings.Builder) {
	b.WriteString(strings.Repeat("-", receiptWidth))
	b.WriteByte('\n')
}

func center(b *strings.Builder, text string) {
	pad := (receiptWidth - len([]rune(text))) / 2
	if pad < 0 {
		pad = 0
	}
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteString(text)
	b.WriteByte('\n')
}

func row(b *strings.Builder, name, price string) {
	gap := receiptWidth - len([]rune(name)) - len([]rune(price))
	if gap < 1 {
		gap = 1
	}
	b.WriteString(name)
	b.WriteString(strings.Repeat(" ", gap))
	b.WriteString(price)
	b.WriteByte('\n')
}
