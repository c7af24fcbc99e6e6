package report

import (
	"context"
	"fmt"
	"strings"

	"gachaledger/internal/model"
)

// KeywordGroup names a family of line items summed by a sub-report.
type KeywordGroup struct {
	Name     string
	Keywords []string
}

// Contains reports whether the title belongs to the group.
func (g KeywordGroup) Contains(title string) bool {
	for _, kw := range g.Keywords {
		if kw != "" && strings.Contains(title, kw) {
			return true
		}
	}
	return false
}

// SpecialtyApp is the app the built-in sub-reports target. The mechanism
// itself is generic: any app plus any keyword group works.
const SpecialtyApp = "트릭컬 리바이브"

// Built-in sub-report groups for the specialty app.
var (
	DailyGroup = KeywordGroup{
		Name:     "데일리 3종",
		Keywords: []string{"데일리 왕사탕 공물", "데일리 엘리프 공물", "데일리 별사탕 공물"},
	}
	PassGroup = KeywordGroup{
		Name:     "리바이브/트릭컬 패스",
		Keywords: []string{"리바이브 패스", "트릭컬 패스"},
	}
	CosmeticPassGroup = KeywordGroup{
		Name:     "사복 패스",
		Keywords: []string{"사복 패스", "사복패스"},
	}
)

// DefaultGroups returns the built-in sub-report groups in display order.
func DefaultGroups() []KeywordGroup {
	return []KeywordGroup{DailyGroup, PassGroup, CosmeticPassGroup}
}

// GroupTotal sums the ledger entries whose titles fall in the group,
// restricted to one currency.
func GroupTotal(ledger []model.Transaction, group KeywordGroup, currency model.Currency) float64 {
	total := 0.0
	for _, txn := range ledger {
		if txn.Currency == currency && group.Contains(txn.Title) {
			total += txn.Price
		}
	}
	return total
}

// SubReport is one keyword-group sum for an app.
type SubReport struct {
	Group KeywordGroup
	Total float64
}

// SubReports computes every default group's total over one app's ledger.
// The results recompute from the live ledger on every call.
func (a *Aggregator) SubReports(ctx context.Context, app string, currency model.Currency) ([]SubReport, error) {
	ledger, err := a.store.Ledger(ctx, app)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	groups := DefaultGroups()
	reports := make([]SubReport, 0, len(groups))
	for _, g := range groups {
		reports = append(reports, SubReport{
			Group: g,
			Total: GroupTotal(ledger, g, currency),
		})
	}
	return reports, nil
}
