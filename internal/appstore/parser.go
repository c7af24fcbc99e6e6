// Package appstore parses the Apple "report a problem" invoice HTML export.
package appstore

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"gachaledger/internal/classify"
	"gachaledger/internal/model"
	"gachaledger/internal/parse"
)

// Parser converts the invoice markup into canonical transactions.
type Parser struct {
	classifier *classify.Classifier
}

// NewParser creates a parser that classifies line items with the given
// classifier.
func NewParser(classifier *classify.Classifier) *Parser {
	return &Parser{classifier: classifier}
}

// ParseFile walks the invoice document. Purchase groups without a
// parseable invoice date are skipped whole; line items that are free,
// priced at zero, or excluded by classification are skipped one by one.
// Only a document that cannot be tokenized at all is an error.
func (p *Parser) ParseFile(r io.Reader) ([]model.Transaction, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse invoice document: %w", err)
	}

	var transactions []model.Transaction
	groups := 0

	doc.Find(".purchase").Each(func(_ int, purchase *goquery.Selection) {
		groups++

		dateText := strings.TrimSpace(purchase.Find(".invoice-date").First().Text())
		date, ok := parse.KoreanDate(dateText)
		if !ok {
			return
		}

		purchase.Find("li.pli").Each(func(_ int, item *goquery.Selection) {
			if txn, itemOK := p.convertItem(item, date); itemOK {
				transactions = append(transactions, txn)
			}
		})
	})

	slog.Info("Parsed invoice export",
		"purchase_groups", groups,
		"transactions", len(transactions))

	return transactions, nil
}

func (p *Parser) convertItem(item *goquery.Selection, date time.Time) (model.Transaction, bool) {
	titleEl := item.Find(".pli-title div").First()
	if titleEl.Length() == 0 {
		return model.Transaction{}, false
	}

	// Visible titles are truncated; the aria-label attribute carries the
	// full text and is preferred.
	title, ok := titleEl.Attr("aria-label")
	if !ok || strings.TrimSpace(title) == "" {
		title = titleEl.Text()
	}
	title = strings.TrimSpace(title)

	priceText := strings.TrimSpace(item.Find(".pli-price").First().Text())
	if priceText == "" || priceText == parse.FreeMarker {
		return model.Transaction{}, false
	}

	amount, currency := parse.Price(priceText)
	if amount <= 0 {
		return model.Transaction{}, false
	}

	publisher := strings.TrimSpace(item.Find(".pli-publisher").First().Text())

	app, ok := p.classifier.Classify(title, publisher)
	if !ok {
		return model.Transaction{}, false
	}

	return model.Transaction{
		Date:     date,
		Title:    title,
		App:      app,
		Price:    amount,
		Currency: currency,
		Store:    model.AppStore,
	}, true
}
