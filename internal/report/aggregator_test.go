package report

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gachaledger/internal/model"
	"gachaledger/internal/parse"
	"gachaledger/internal/storage"
)

func newTestAggregator(t *testing.T, transactions []model.Transaction) *Aggregator {
	t.Helper()

	store, err := storage.NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.SaveTransactions(ctx, transactions))

	return NewAggregator(store)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, parse.KST)
}

func won(app, title string, date time.Time, price float64) model.Transaction {
	return model.Transaction{
		Date:     date,
		Title:    title,
		App:      app,
		Price:    price,
		Currency: model.Won,
		Store:    model.GooglePlay,
	}
}

func TestOverview(t *testing.T) {
	agg := newTestAggregator(t, []model.Transaction{
		won("트릭컬 리바이브", "리바이브 패스", day(2024, time.March, 5), 11000),
		won("쿠키런: 킹덤", "크리스탈", day(2024, time.March, 7), 22000),
		won("트릭컬 리바이브", "데일리 왕사탕 공물", day(2024, time.April, 1), 1200),
		{
			Date:     day(2024, time.April, 2),
			Title:    "Gems",
			App:      "기타",
			Price:    4.99,
			Currency: model.Dollar,
			Store:    model.AppStore,
		},
	})

	overview, err := agg.Overview(context.Background(), model.Won)
	require.NoError(t, err)

	assert.Equal(t, 34200.0, overview.GrandTotals[model.Won])
	assert.Equal(t, 4.99, overview.GrandTotals[model.Dollar])

	require.NotNil(t, overview.TopSpender)
	assert.Equal(t, "쿠키런: 킹덤", overview.TopSpender.App)
	assert.Equal(t, 22000.0, overview.TopSpender.Total)
	assert.Equal(t, model.Won, overview.TopSpender.Currency)

	require.Len(t, overview.AppsByTotal, 2)
	assert.Equal(t, "쿠키런: 킹덤", overview.AppsByTotal[0].App)
	assert.Equal(t, "트릭컬 리바이브", overview.AppsByTotal[1].App)
	assert.Equal(t, 12200.0, overview.AppsByTotal[1].Total)
}

func TestOverviewTopSpenderTieBreak(t *testing.T) {
	// Equal totals keep the app that arrived in the store first.
	agg := newTestAggregator(t, []model.Transaction{
		won("블루 아카이브", "청휘석", day(2024, time.January, 10), 5500),
		won("트릭컬 리바이브", "리바이브 패스", day(2024, time.January, 2), 5500),
	})

	overview, err := agg.Overview(context.Background(), model.Won)
	require.NoError(t, err)
	require.NotNil(t, overview.TopSpender)
	assert.Equal(t, "블루 아카이브", overview.TopSpender.App)

	require.Len(t, overview.AppsByTotal, 2)
	assert.Equal(t, "블루 아카이브", overview.AppsByTotal[0].App)
}

func TestOverviewEmptyStore(t *testing.T) {
	agg := newTestAggregator(t, nil)

	overview, err := agg.Overview(context.Background(), model.Won)
	require.NoError(t, err)
	assert.Nil(t, overview.TopSpender)
	assert.Empty(t, overview.AppsByTotal)
	assert.Empty(t, overview.GrandTotals)
}

func TestMonthlyReport(t *testing.T) {
	agg := newTestAggregator(t, []model.Transaction{
		won("트릭컬 리바이브", "데일리 왕사탕 공물", day(2024, time.March, 28), 1200),
		won("트릭컬 리바이브", "리바이브 패스", day(2024, time.March, 5), 11000),
		won("트릭컬 리바이브", "데일리 별사탕 공물", day(2024, time.May, 2), 1200),
		won("쿠키런: 킹덤", "크리스탈", day(2024, time.March, 5), 22000),
		{
			Date:     day(2024, time.March, 9),
			Title:    "Candy",
			App:      "트릭컬 리바이브",
			Price:    2.99,
			Currency: model.Dollar,
			Store:    model.AppStore,
		},
	})

	buckets, err := agg.MonthlyReport(context.Background(), "트릭컬 리바이브", model.Won)
	require.NoError(t, err)

	// April has no transactions and is simply absent; other apps and
	// other currencies never leak in.
	require.Len(t, buckets, 2)
	assert.Equal(t, "2024-03", buckets[0].Month)
	assert.Equal(t, 12200.0, buckets[0].Total)
	assert.Len(t, buckets[0].Items, 2)
	assert.Equal(t, "2024-05", buckets[1].Month)
	assert.Equal(t, 1200.0, buckets[1].Total)
}

func TestFilterByTitle(t *testing.T) {
	ledger := []model.Transaction{
		won("트릭컬 리바이브", "데일리 왕사탕 공물", day(2024, time.March, 1), 1200),
		won("트릭컬 리바이브", "리바이브 패스", day(2024, time.March, 5), 11000),
		won("기타", "Stardust Pack", day(2024, time.March, 9), 5500),
	}

	matched := FilterByTitle(ledger, "패스")
	require.Len(t, matched, 1)
	assert.Equal(t, "리바이브 패스", matched[0].Title)

	matched = FilterByTitle(ledger, "STARDUST")
	require.Len(t, matched, 1)
	assert.Equal(t, "Stardust Pack", matched[0].Title)

	assert.Len(t, FilterByTitle(ledger, ""), 3)
	assert.Empty(t, FilterByTitle(ledger, "없는 검색어"))
}

func TestHistoryNewestFirst(t *testing.T) {
	agg := newTestAggregator(t, []model.Transaction{
		won("트릭컬 리바이브", "리바이브 패스", day(2024, time.March, 5), 11000),
		won("쿠키런: 킹덤", "크리스탈", day(2024, time.May, 1), 22000),
		won("트릭컬 리바이브", "데일리 왕사탕 공물", day(2024, time.April, 1), 1200),
	})

	all, err := agg.History(context.Background(), model.Won)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "크리스탈", all[0].Title)
	assert.Equal(t, "데일리 왕사탕 공물", all[1].Title)
	assert.Equal(t, "리바이브 패스", all[2].Title)
}

func TestPeriodOf(t *testing.T) {
	tests := []struct {
		date time.Time
		want Period
	}{
		{day(2024, time.January, 1), Period{2024, 1}},
		{day(2024, time.June, 30), Period{2024, 1}},
		{day(2024, time.July, 1), Period{2024, 2}},
		{day(2024, time.December, 31), Period{2024, 2}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PeriodOf(tt.date), tt.date.Format("2006-01-02"))
	}

	assert.Equal(t, "2024-H1", Period{2024, 1}.Key())
	assert.Equal(t, Period{2024, 2}, Period{2024, 1}.Next())
	assert.Equal(t, Period{2025, 1}, Period{2024, 2}.Next())
	assert.True(t, Period{2024, 2}.Before(Period{2025, 1}))
	assert.False(t, Period{2024, 2}.Before(Period{2024, 2}))
}

func TestHalfYearSeries(t *testing.T) {
	// 2024 H1 and 2025 H2 have spending; the 2024 H2 and 2025 H1 gaps
	// must still appear as periods with flat cumulative values.
	agg := newTestAggregator(t, []model.Transaction{
		won("트릭컬 리바이브", "리바이브 패스", day(2024, time.March, 5), 11000),
		won("트릭컬 리바이브", "사복 패스", day(2024, time.April, 2), 20000),
		won("쿠키런: 킹덤", "크리스탈", day(2024, time.May, 1), 5500),
		won("트릭컬 리바이브", "데일리 왕사탕 공물", day(2025, time.August, 9), 1200),
	})

	series, err := agg.HalfYearSeries(context.Background(), model.Won)
	require.NoError(t, err)

	wantPeriods := []Period{{2024, 1}, {2024, 2}, {2025, 1}, {2025, 2}}
	assert.Equal(t, wantPeriods, series.Periods)

	require.Len(t, series.Lines, 2)
	assert.Equal(t, "트릭컬 리바이브", series.Lines[0].App)
	assert.Equal(t, []float64{31000, 31000, 31000, 32200}, series.Lines[0].Cumulative)
	assert.Equal(t, "쿠키런: 킹덤", series.Lines[1].App)
	assert.Equal(t, []float64{5500, 5500, 5500, 5500}, series.Lines[1].Cumulative)

	for _, line := range series.Lines {
		require.Len(t, line.Cumulative, len(series.Periods))
		for i := 1; i < len(line.Cumulative); i++ {
			assert.GreaterOrEqual(t, line.Cumulative[i], line.Cumulative[i-1])
		}
	}
}

func TestHalfYearSeriesLimit(t *testing.T) {
	var transactions []model.Transaction
	for i := 0; i < SeriesLimit+3; i++ {
		app := fmt.Sprintf("앱-%02d", i)
		price := float64(1000 * (i + 1))
		transactions = append(transactions, won(app, "패키지", day(2024, time.March, i+1), price))
	}
	agg := newTestAggregator(t, transactions)

	series, err := agg.HalfYearSeries(context.Background(), model.Won)
	require.NoError(t, err)

	require.Len(t, series.Lines, SeriesLimit)
	// Descending by total: the most expensive app leads the series.
	assert.Equal(t, fmt.Sprintf("앱-%02d", SeriesLimit+2), series.Lines[0].App)
}

func TestHalfYearSeriesEmpty(t *testing.T) {
	agg := newTestAggregator(t, nil)

	series, err := agg.HalfYearSeries(context.Background(), model.Won)
	require.NoError(t, err)
	assert.Empty(t, series.Periods)
	assert.Empty(t, series.Lines)
}
