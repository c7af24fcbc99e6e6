// Package googleplay parses the Google Play order-history JSON export.
package googleplay

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"gachaledger/internal/classify"
	"gachaledger/internal/model"
	"gachaledger/internal/parse"
)

// OrderRecord is one element of the exported order array.
type OrderRecord struct {
	OrderHistory *OrderHistory `json:"orderHistory"`
}

// OrderHistory carries the fields of a single order that matter here. The
// export has many more; they are ignored on purpose.
type OrderHistory struct {
	TotalPrice   string     `json:"totalPrice"`
	RefundAmount string     `json:"refundAmount"`
	CreationTime string     `json:"creationTime"`
	LineItem     []LineItem `json:"lineItem"`
}

// LineItem is one purchased document within an order.
type LineItem struct {
	Doc Doc `json:"doc"`
}

// Doc names the purchased product.
type Doc struct {
	Title string `json:"title"`
}

// Parser converts the order export into canonical transactions.
type Parser struct {
	classifier *classify.Classifier
}

// NewParser creates a parser that classifies titles with the given classifier.
func NewParser(classifier *classify.Classifier) *Parser {
	return &Parser{classifier: classifier}
}

// ParseFile decodes and converts a whole export. A file that is not valid
// JSON fails as a unit; individual orders that cannot be used (no line
// items, zero or refunded-away net price, unparseable timestamp, excluded
// titles) are skipped without error.
func (p *Parser) ParseFile(r io.Reader) ([]model.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read order export: %w", err)
	}

	var orders []OrderRecord
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("failed to parse order export: %w", err)
	}

	return p.ParseOrders(orders), nil
}

// ParseOrders converts decoded order records.
func (p *Parser) ParseOrders(orders []OrderRecord) []model.Transaction {
	var transactions []model.Transaction
	skipped := 0

	for _, record := range orders {
		txn, ok := p.convertOrder(record)
		if !ok {
			skipped++
			continue
		}
		transactions = append(transactions, txn)
	}

	slog.Info("Parsed order export",
		"orders", len(orders),
		"transactions", len(transactions),
		"skipped", skipped)

	return transactions
}

func (p *Parser) convertOrder(record OrderRecord) (model.Transaction, bool) {
	order := record.OrderHistory
	if order == nil || len(order.LineItem) == 0 {
		return model.Transaction{}, false
	}

	total, currency := parse.Price(order.TotalPrice)
	refund, _ := parse.Price(order.RefundAmount)
	net := total - refund
	if net <= 0 {
		return model.Transaction{}, false
	}

	date, ok := parse.InstantDate(order.CreationTime)
	if !ok {
		return model.Transaction{}, false
	}

	title := order.LineItem[0].Doc.Title

	// This export carries no publisher, so the title fills both slots.
	app, ok := p.classifier.Classify(title, title)
	if !ok {
		return model.Transaction{}, false
	}

	return model.Transaction{
		Date:     date,
		Title:    title,
		App:      app,
		Price:    net,
		Currency: currency,
		Store:    model.GooglePlay,
	}, true
}
