package report

import (
	"context"
	"fmt"
	"time"

	"gachaledger/internal/model"
)

// Period is a half-year bucket: months January-June are H1, July-December
// H2 of their calendar year.
type Period struct {
	Year int
	Half int
}

// PeriodOf buckets a date.
func PeriodOf(t time.Time) Period {
	half := 1
	if t.Month() > time.June {
		half = 2
	}
	return Period{Year: t.Year(), Half: half}
}

// Key returns the period's stable identifier, e.g. "2024-H1".
func (p Period) Key() string {
	return fmt.Sprintf("%d-H%d", p.Year, p.Half)
}

// Before reports whether p precedes q.
func (p Period) Before(q Period) bool {
	if p.Year != q.Year {
		return p.Year < q.Year
	}
	return p.Half < q.Half
}

// Next returns the following half-year.
func (p Period) Next() Period {
	if p.Half == 1 {
		return Period{Year: p.Year, Half: 2}
	}
	return Period{Year: p.Year + 1, Half: 1}
}

// SeriesLine is one app's running cumulative total across the series
// periods. Cumulative[i] corresponds to Periods[i] of the owning series.
type SeriesLine struct {
	App        string
	Cumulative []float64
}

// HalfYearSeries is the comparative long-range trend: every half-year
// period between the earliest and latest transaction (gaps zero-filled)
// and a cumulative line per top app.
type HalfYearSeries struct {
	Currency model.Currency
	Periods  []Period
	Lines    []SeriesLine
}

// HalfYearSeries builds the cumulative series for the selected currency,
// covering the top SeriesLimit apps by total.
func (a *Aggregator) HalfYearSeries(ctx context.Context, currency model.Currency) (*HalfYearSeries, error) {
	ledgers, err := a.store.Ledgers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledgers: %w", err)
	}

	totals, err := a.store.AppTotals(ctx, currency)
	if err != nil {
		return nil, fmt.Errorf("failed to compute app totals: %w", err)
	}

	top := rankByTotal(totals)
	if len(top) > SeriesLimit {
		top = top[:SeriesLimit]
	}

	periods := periodRange(ledgers, currency)
	series := &HalfYearSeries{Currency: currency, Periods: periods}
	if len(periods) == 0 {
		return series, nil
	}

	index := make(map[Period]int, len(periods))
	for i, p := range periods {
		index[p] = i
	}

	for _, at := range top {
		perPeriod := make([]float64, len(periods))
		for _, txn := range ledgers[at.App] {
			if txn.Currency != currency {
				continue
			}
			if i, ok := index[PeriodOf(txn.Date)]; ok {
				perPeriod[i] += txn.Price
			}
		}

		cumulative := make([]float64, len(periods))
		running := 0.0
		for i, v := range perPeriod {
			running += v
			cumulative[i] = running
		}
		series.Lines = append(series.Lines, SeriesLine{App: at.App, Cumulative: cumulative})
	}

	return series, nil
}

// periodRange returns every half-year between the earliest and latest
// transaction in the given currency, inclusive, empty halves included.
func periodRange(ledgers map[string][]model.Transaction, currency model.Currency) []Period {
	var minDate, maxDate time.Time
	seen := false
	for _, ledger := range ledgers {
		for _, txn := range ledger {
			if txn.Currency != currency {
				continue
			}
			if !seen || txn.Date.Before(minDate) {
				minDate = txn.Date
			}
			if !seen || txn.Date.After(maxDate) {
				maxDate = txn.Date
			}
			seen = true
		}
	}
	if !seen {
		return nil
	}

	var periods []Period
	last := PeriodOf(maxDate)
	for p := PeriodOf(minDate); !last.Before(p); p = p.Next() {
		periods = append(periods, p)
	}
	return periods
}
