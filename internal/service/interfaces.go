// Package service defines the interfaces for the application's collaborators.
package service

import (
	"context"

	"gachaledger/internal/model"
)

// AppTotal is one app's spending total in a single currency.
type AppTotal struct {
	App   string
	Total float64
}

// Storage is the combined transaction store. It owns every transaction
// that survives parsing; parsers hand their output to it and discard it.
// The store lives for one session only and is cleared on reset or when
// the raw sources are replaced.
type Storage interface {
	// SaveTransactions merges parsed transactions into the store,
	// discarding duplicates (same date, title and price).
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error

	// Ledgers returns every app's transactions, each list ordered by
	// ascending date with arrival order breaking ties.
	Ledgers(ctx context.Context) (map[string][]model.Transaction, error)

	// Ledger returns one app's ordered transactions.
	Ledger(ctx context.Context, app string) ([]model.Transaction, error)

	// GrandTotals sums every transaction, segregated by currency.
	GrandTotals(ctx context.Context) (map[model.Currency]float64, error)

	// AppTotals sums each app's transactions in one currency, ordered
	// by each app's first arrival in the store. The order is the
	// deterministic tie-break for top-spender and series selection.
	AppTotals(ctx context.Context, currency model.Currency) ([]AppTotal, error)

	// MonthlyTotals buckets one app's transactions in one currency by
	// YYYY-MM key.
	MonthlyTotals(ctx context.Context, app string, currency model.Currency) (map[string]float64, error)

	// TransactionCount reports how many transactions the store holds.
	TransactionCount(ctx context.Context) (int, error)

	// Clear empties the store.
	Clear(ctx context.Context) error

	// Migrate brings the backing schema up to date.
	Migrate(ctx context.Context) error

	Close() error
}
