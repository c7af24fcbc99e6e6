package recap

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gachaledger/internal/common"
	"gachaledger/internal/model"
	"gachaledger/internal/parse"
)

const app = "트릭컬 리바이브"

func txn(title string, month time.Month, day int, price float64) model.Transaction {
	return model.Transaction{
		Date:     time.Date(2024, month, day, 0, 0, 0, 0, parse.KST),
		Title:    title,
		App:      app,
		Price:    price,
		Currency: model.Won,
		Store:    model.GooglePlay,
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "suffix stripped", title: "리바이브 패스 (트릭컬 리바이브)", want: "리바이브 패스"},
		{name: "suffix with spaces", title: "왕사탕 x10  ( 트릭컬 리바이브 )", want: "왕사탕 x10"},
		{name: "no suffix", title: "데일리 별사탕 공물", want: "데일리 별사탕 공물"},
		{name: "cosmetic alias", title: "사복 패스", want: "에르핀 사복 패스"},
		{name: "cosmetic alias no space", title: "사복패스", want: "에르핀 사복 패스"},
		{name: "february cosmetic alias", title: "2월 사복 패스", want: "에르핀 사복 패스"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanTitle(tt.title, app))
		})
	}
}

func TestBuildEmptyYear(t *testing.T) {
	ledger := []model.Transaction{txn("리바이브 패스", time.March, 5, 11000)}

	_, err := Build(app, 2023, model.Won, ledger)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNoTransactions))

	var userErr *common.UserError
	require.True(t, errors.As(err, &userErr))
}

func TestBuildStats(t *testing.T) {
	ledger := []model.Transaction{
		txn("데일리 왕사탕 공물 (트릭컬 리바이브)", time.January, 3, 1200),
		txn("데일리 왕사탕 공물", time.February, 3, 1200),
		txn("데일리 별사탕 공물", time.February, 10, 2400),
		txn("리바이브 패스", time.March, 5, 11000),
		txn("트릭컬 패스", time.March, 20, 5500),
		txn("사복 패스", time.April, 2, 22000),
		txn("엘리프 선물 세트", time.May, 1, 7700),
		// Other years and currencies never contribute.
		{
			Date:     time.Date(2023, time.March, 5, 0, 0, 0, 0, parse.KST),
			Title:    "리바이브 패스",
			App:      app,
			Price:    11000,
			Currency: model.Won,
			Store:    model.GooglePlay,
		},
		{
			Date:     time.Date(2024, time.March, 9, 0, 0, 0, 0, parse.KST),
			Title:    "Daily Candy",
			App:      app,
			Price:    0.99,
			Currency: model.Dollar,
			Store:    model.AppStore,
		},
	}

	r, err := Build(app, 2024, model.Won, ledger)
	require.NoError(t, err)

	assert.Equal(t, 51000.0, r.Total)
	assert.Equal(t, Stat{Count: 2, Sum: 2400}, r.Daily["데일리 왕사탕"])
	assert.Equal(t, Stat{Count: 1, Sum: 2400}, r.Daily["데일리 별사탕"])
	// The short form matches too: the gift set contains 엘리프.
	assert.Equal(t, Stat{Count: 1, Sum: 7700}, r.Daily["데일리 엘리프"])

	assert.Equal(t, Stat{Count: 2, Sum: 16500}, r.PassMonthly[3])

	require.Len(t, r.Cosmetics, 1)
	assert.Equal(t, "에르핀 사복 패스", r.Cosmetics[0].Title)
	require.Len(t, r.CosmeticMonthly[4], 1)

	assert.Equal(t, 4, r.MaxMonth)
	assert.Equal(t, 22000.0, r.MaxMonthAmount)
	require.Len(t, r.MaxMonthItems(), 1)

	assert.Equal(t, []int{1, 2, 3, 4, 5}, r.Months())
}

func TestPremiumRule(t *testing.T) {
	assert.False(t, Stat{Count: 1, Sum: 11000}.Premium())
	assert.True(t, Stat{Count: 2, Sum: 100}.Premium())
	assert.True(t, Stat{Count: 1, Sum: 12001}.Premium())
	assert.False(t, Stat{Count: 1, Sum: 12000}.Premium(), "the premium threshold is strict")
}

func TestSlideSequenceFull(t *testing.T) {
	ledger := []model.Transaction{
		txn("데일리 왕사탕 공물", time.January, 3, 1200),
		txn("리바이브 패스", time.March, 5, 11000),
		txn("사복 패스", time.April, 2, 22000),
	}

	r, err := Build(app, 2024, model.Won, ledger)
	require.NoError(t, err)

	kinds := make([]Kind, len(r.Slides))
	for i, s := range r.Slides {
		kinds[i] = s.Kind
	}
	assert.Equal(t, []Kind{
		KindIntro, KindTotal, KindDailyReceipt, KindPassReceipt,
		KindCosmeticGallery, KindCosmeticReceipt,
		KindMonthlyTimeline, KindMaxMonthReceipt, KindOutro,
	}, kinds)
}

func TestSlideSequenceSkipsEmptySections(t *testing.T) {
	ledger := []model.Transaction{txn("스페셜 패키지", time.June, 1, 33000)}

	r, err := Build(app, 2024, model.Won, ledger)
	require.NoError(t, err)

	kinds := make([]Kind, len(r.Slides))
	for i, s := range r.Slides {
		kinds[i] = s.Kind
	}
	assert.Equal(t, []Kind{
		KindIntro, KindTotal,
		KindMonthlyTimeline, KindMaxMonthReceipt, KindOutro,
	}, kinds)
}

func TestTimelineTitleTruncation(t *testing.T) {
	long := strings.Repeat("왕", 25)
	ledger := []model.Transaction{txn(long, time.July, 1, 1000)}

	r, err := Build(app, 2024, model.Won, ledger)
	require.NoError(t, err)

	require.Len(t, r.Timeline[7], 1)
	name := r.Timeline[7][0].Name
	assert.Equal(t, strings.Repeat("왕", 18)+"..", name)
}

func TestReceiptText(t *testing.T) {
	ledger := []model.Transaction{
		txn("데일리 왕사탕 공물", time.January, 3, 1200),
		txn("리바이브 패스", time.March, 5, 11000),
	}

	r, err := Build(app, 2024, model.Won, ledger)
	require.NoError(t, err)

	text := r.ReceiptText()
	assert.Contains(t, text, "2024년 트릭컬 리바이브 결산")
	assert.Contains(t, text, "- 1월 (₩1,200) -")
	assert.Contains(t, text, "- 3월 (₩11,000) -")
	assert.Contains(t, text, "1년 총계")
	assert.Contains(t, text, "₩12,200")
}

func TestReceiptTextDollarCurrency(t *testing.T) {
	purchase := txn("스타터 팩", time.March, 5, 4.99)
	purchase.Currency = model.Dollar

	r, err := Build(app, 2024, model.Dollar, []model.Transaction{purchase})
	require.NoError(t, err)

	text := r.ReceiptText()
	assert.Contains(t, text, "- 3월 ($4.99) -")
	assert.Contains(t, text, "$4.99")
	assert.NotContains(t, text, "₩")
}
