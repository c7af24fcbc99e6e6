// Package model defines the canonical transaction shape shared by every
// layer of the application.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Currency is the literal symbol a price was expressed in. Amounts in
// different currencies are never summed together.
type Currency string

// Recognized currency symbols. Won is the home currency of both source
// platforms and the fallback when a price string carries no symbol.
const (
	Won    Currency = "₩"
	Dollar Currency = "$"
	Yen    Currency = "¥"
	Euro   Currency = "€"
)

// Platform identifies which store export a transaction came from.
type Platform string

const (
	// GooglePlay is the JSON order-history export.
	GooglePlay Platform = "google"
	// AppStore is the HTML invoice export.
	AppStore Platform = "apple"
)

// OtherApp is the catch-all identity for purchases that match no keyword.
const OtherApp = "기타"

// Transaction is one purchase line-item, normalized from either platform.
// Date carries a calendar date at midnight in the reference timezone; no
// time-of-day survives parsing. Price is the net amount (refunds already
// subtracted) and is always > 0 on records emitted by the parsers.
type Transaction struct {
	Date     time.Time
	Title    string
	App      string
	Price    float64
	Currency Currency
	Store    Platform
}

// Hash returns the duplicate-detection key. Store and currency are
// deliberately excluded: re-uploading the same platform file is the
// duplication case that matters.
func (t *Transaction) Hash() string {
	data := fmt.Sprintf("%s:%s:%.2f",
		t.Date.Format("2006-01-02"),
		t.Title,
		t.Price)
	sum := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", sum)
}

// DateKey returns the calendar-date portion used for display and grouping.
func (t *Transaction) DateKey() string {
	return t.Date.Format("2006-01-02")
}

// MonthKey returns the YYYY-MM bucket key for monthly aggregation.
func (t *Transaction) MonthKey() string {
	return t.Date.Format("2006-01")
}
