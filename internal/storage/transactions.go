package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gachaledger/internal/model"
	"gachaledger/internal/parse"
	"gachaledger/internal/service"
)

const dateLayout = "2006-01-02"

// SaveTransactions merges parsed transactions into the store. Duplicates
// (same date, title and price as an existing row) are silently discarded,
// so re-uploading the same export file is idempotent.
func (s *SQLiteStore) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (
			hash, date, title, app, price, currency, store
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range transactions {
		txn := &transactions[i]
		if _, err := stmt.ExecContext(ctx,
			txn.Hash(),
			txn.Date.Format(dateLayout),
			txn.Title,
			txn.App,
			txn.Price,
			string(txn.Currency),
			string(txn.Store),
		); err != nil {
			return fmt.Errorf("failed to save transaction %q: %w", txn.Title, err)
		}
	}

	return tx.Commit()
}

// Ledgers returns every app's transactions keyed by app identity. Each
// list is ordered by ascending date; rows sharing a date keep their
// arrival order (insert id).
func (s *SQLiteStore) Ledgers(ctx context.Context) (map[string][]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, title, app, price, currency, store
		FROM transactions
		ORDER BY date, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledgers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	ledgers := make(map[string][]model.Transaction)
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		ledgers[txn.App] = append(ledgers[txn.App], txn)
	}
	return ledgers, rows.Err()
}

// Ledger returns one app's transactions in ledger order.
func (s *SQLiteStore) Ledger(ctx context.Context, app string) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, title, app, price, currency, store
		FROM transactions
		WHERE app = ?
		ORDER BY date, id
	`, app)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ledger []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		ledger = append(ledger, txn)
	}
	return ledger, rows.Err()
}

// GrandTotals sums all transactions, segregated by currency. Amounts in
// different currencies are never combined.
func (s *SQLiteStore) GrandTotals(ctx context.Context) (map[model.Currency]float64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT currency, SUM(price)
		FROM transactions
		GROUP BY currency
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query grand totals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	totals := make(map[model.Currency]float64)
	for rows.Next() {
		var currency string
		var total float64
		if err := rows.Scan(&currency, &total); err != nil {
			return nil, fmt.Errorf("failed to scan total: %w", err)
		}
		totals[model.Currency(currency)] = total
	}
	return totals, rows.Err()
}

// AppTotals sums each app's spending in one currency. Results come back
// in first-arrival order, which downstream consumers use as the
// deterministic tie-break.
func (s *SQLiteStore) AppTotals(ctx context.Context, currency model.Currency) ([]service.AppTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT app, SUM(price)
		FROM transactions
		WHERE currency = ?
		GROUP BY app
		ORDER BY MIN(id)
	`, string(currency))
	if err != nil {
		return nil, fmt.Errorf("failed to query app totals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var totals []service.AppTotal
	for rows.Next() {
		var at service.AppTotal
		if err := rows.Scan(&at.App, &at.Total); err != nil {
			return nil, fmt.Errorf("failed to scan app total: %w", err)
		}
		totals = append(totals, at)
	}
	return totals, rows.Err()
}

// MonthlyTotals buckets one app's spending in one currency by YYYY-MM.
func (s *SQLiteStore) MonthlyTotals(ctx context.Context, app string, currency model.Currency) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT substr(date, 1, 7), SUM(price)
		FROM transactions
		WHERE app = ? AND currency = ?
		GROUP BY substr(date, 1, 7)
	`, app, string(currency))
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly totals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	totals := make(map[string]float64)
	for rows.Next() {
		var month string
		var total float64
		if err := rows.Scan(&month, &total); err != nil {
			return nil, fmt.Errorf("failed to scan monthly total: %w", err)
		}
		totals[month] = total
	}
	return totals, rows.Err()
}

// TransactionCount reports the number of stored transactions.
func (s *SQLiteStore) TransactionCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// Clear removes every transaction, returning the store to its initial
// empty state. Used on reset and before reclassification.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM transactions"); err != nil {
		return fmt.Errorf("failed to clear store: %w", err)
	}
	return nil
}

func scanTransaction(rows *sql.Rows) (model.Transaction, error) {
	var txn model.Transaction
	var date, currency, store string

	if err := rows.Scan(&date, &txn.Title, &txn.App, &txn.Price, &currency, &store); err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan transaction: %w", err)
	}

	parsed, err := time.ParseInLocation(dateLayout, date, parse.KST)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to parse stored date %q: %w", date, err)
	}

	txn.Date = parsed
	txn.Currency = model.Currency(currency)
	txn.Store = model.Platform(store)
	return txn, nil
}
