// Package report computes the summary views over the combined store:
// grand totals, top spender, monthly buckets, half-year cumulative series
// and the keyword-group sub-reports. It produces plain data; rendering
// happens elsewhere.
package report

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gachaledger/internal/model"
	"gachaledger/internal/service"
)

// SeriesLimit is how many apps the comparative half-year series covers,
// picked by descending total.
const SeriesLimit = 7

// TopSpender is the app with the largest same-currency total.
type TopSpender struct {
	App      string
	Total    float64
	Currency model.Currency
}

// Overview is the store-wide summary for one selected currency.
type Overview struct {
	GrandTotals map[model.Currency]float64
	TopSpender  *TopSpender
	// AppsByTotal lists apps with spending in the selected currency,
	// descending by total, arrival order breaking ties.
	AppsByTotal []service.AppTotal
	Currency    model.Currency
}

// MonthBucket is one month's transactions for a single app.
type MonthBucket struct {
	Month string
	Total float64
	Items []model.Transaction
}

// Aggregator derives summaries from the combined store.
type Aggregator struct {
	store service.Storage
}

// NewAggregator creates an aggregator reading from the given store.
func NewAggregator(store service.Storage) *Aggregator {
	return &Aggregator{store: store}
}

// Overview computes the grand totals and the per-app ranking for the
// selected currency.
func (a *Aggregator) Overview(ctx context.Context, currency model.Currency) (*Overview, error) {
	grand, err := a.store.GrandTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute grand totals: %w", err)
	}

	totals, err := a.store.AppTotals(ctx, currency)
	if err != nil {
		return nil, fmt.Errorf("failed to compute app totals: %w", err)
	}

	overview := &Overview{
		GrandTotals: grand,
		Currency:    currency,
		AppsByTotal: rankByTotal(totals),
	}

	// Strict greater-than keeps the first-encountered app on ties.
	for _, at := range totals {
		if overview.TopSpender == nil || at.Total > overview.TopSpender.Total {
			overview.TopSpender = &TopSpender{
				App:      at.App,
				Total:    at.Total,
				Currency: currency,
			}
		}
	}

	return overview, nil
}

// MonthlyReport groups one app's transactions into sorted month buckets,
// restricted to the selected currency.
func (a *Aggregator) MonthlyReport(ctx context.Context, app string, currency model.Currency) ([]MonthBucket, error) {
	ledger, err := a.store.Ledger(ctx, app)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	totals, err := a.store.MonthlyTotals(ctx, app, currency)
	if err != nil {
		return nil, fmt.Errorf("failed to compute monthly totals: %w", err)
	}

	byMonth := make(map[string][]model.Transaction)
	for _, txn := range ledger {
		if txn.Currency != currency {
			continue
		}
		key := txn.MonthKey()
		byMonth[key] = append(byMonth[key], txn)
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	buckets := make([]MonthBucket, 0, len(months))
	for _, month := range months {
		buckets = append(buckets, MonthBucket{
			Month: month,
			Total: totals[month],
			Items: byMonth[month],
		})
	}
	return buckets, nil
}

// History returns every transaction in the selected currency, newest
// first. Apps are visited in arrival order so same-day rows across apps
// come back in a stable order.
func (a *Aggregator) History(ctx context.Context, currency model.Currency) ([]model.Transaction, error) {
	ledgers, err := a.store.Ledgers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledgers: %w", err)
	}
	order, err := a.store.AppTotals(ctx, currency)
	if err != nil {
		return nil, fmt.Errorf("failed to compute app totals: %w", err)
	}

	var all []model.Transaction
	for _, at := range order {
		for _, txn := range ledgers[at.App] {
			if txn.Currency == currency {
				all = append(all, txn)
			}
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[j].Date.Before(all[i].Date)
	})
	return all, nil
}

// FilterByTitle returns the ledger entries whose title contains the
// search term, case-insensitively. An empty term matches everything.
func FilterByTitle(ledger []model.Transaction, term string) []model.Transaction {
	if term == "" {
		return ledger
	}
	needle := strings.ToLower(term)
	var out []model.Transaction
	for _, txn := range ledger {
		if strings.Contains(strings.ToLower(txn.Title), needle) {
			out = append(out, txn)
		}
	}
	return out
}

// rankByTotal orders app totals descending; the stable sort preserves
// arrival order among equal totals.
func rankByTotal(totals []service.AppTotal) []service.AppTotal {
	ranked := make([]service.AppTotal, len(totals))
	copy(ranked, totals)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total > ranked[j].Total
	})
	return ranked
}
