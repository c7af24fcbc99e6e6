package appstore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gachaledger/internal/classify"
	"gachaledger/internal/model"
)

func newTestParser() *Parser {
	return NewParser(classify.NewClassifier(classify.DefaultTable()))
}

const sampleInvoice = `<html><body>
<div class="purchase">
  <span class="invoice-date">2024년 2월 14일</span>
  <ul>
    <li class="pli">
      <div class="pli-title"><div aria-label="트릭컬 리바이브 - 에르핀 사복 패스">트릭컬 리바이브 - 에르핀...</div></div>
      <div class="pli-publisher">EPIDGames</div>
      <div class="pli-price">₩22,000</div>
    </li>
    <li class="pli">
      <div class="pli-title"><div aria-label="블루 아카이브 - 월간 청휘석 패키지">블루 아카이브 - 월간...</div></div>
      <div class="pli-publisher">NEXON Games</div>
      <div class="pli-price">무료</div>
    </li>
  </ul>
</div>
<div class="purchase">
  <span class="invoice-date">지난달 언젠가</span>
  <ul>
    <li class="pli">
      <div class="pli-title"><div aria-label="원신 - 축복">원신 - 축복</div></div>
      <div class="pli-price">₩6,500</div>
    </li>
  </ul>
</div>
<div class="purchase">
  <span class="invoice-date">2024년 3월 1일</span>
  <ul>
    <li class="pli">
      <div class="pli-title"><div>Limbus Company 단죄의 달...</div></div>
      <div class="pli-publisher">ProjectMoon</div>
      <div class="pli-price">US$9.26</div>
    </li>
  </ul>
</div>
</body></html>`

func TestParseFile(t *testing.T) {
	txns, err := newTestParser().ParseFile(strings.NewReader(sampleInvoice))
	require.NoError(t, err)
	require.Len(t, txns, 2)

	first := txns[0]
	assert.Equal(t, "트릭컬 리바이브", first.App)
	assert.Equal(t, "트릭컬 리바이브 - 에르핀 사복 패스", first.Title,
		"full title must come from the aria-label attribute")
	assert.Equal(t, 22000.0, first.Price)
	assert.Equal(t, model.Won, first.Currency)
	assert.Equal(t, model.AppStore, first.Store)
	assert.Equal(t, "2024-02-14", first.DateKey())

	second := txns[1]
	assert.Equal(t, "Limbus Company", second.App,
		"visible text is the fallback when the aria-label is missing")
	assert.InDelta(t, 9.26, second.Price, 0.0001)
	assert.Equal(t, model.Dollar, second.Currency)
	assert.Equal(t, "2024-03-01", second.DateKey())
}

func TestParseFileSkipsFreeItems(t *testing.T) {
	txns, err := newTestParser().ParseFile(strings.NewReader(sampleInvoice))
	require.NoError(t, err)
	for _, txn := range txns {
		assert.NotContains(t, txn.Title, "청휘석",
			"the free line item must not be emitted")
		assert.Greater(t, txn.Price, 0.0)
	}
}

func TestParseFileSkipsUndatedGroups(t *testing.T) {
	txns, err := newTestParser().ParseFile(strings.NewReader(sampleInvoice))
	require.NoError(t, err)
	for _, txn := range txns {
		assert.NotEqual(t, "원신", txn.App,
			"items in a group without a parseable date must be skipped")
	}
}

func TestParseFilePublisherBeatsTitle(t *testing.T) {
	invoice := `<html><body>
	<div class="purchase">
	  <span class="invoice-date">2024년 4월 10일</span>
	  <li class="pli">
	    <div class="pli-title"><div aria-label="스페셜 패키지 (트릭컬 리바이브)">스페셜 패키지</div></div>
	    <div class="pli-publisher">블루 아카이브</div>
	    <div class="pli-price">₩11,000</div>
	  </li>
	</div>
	</body></html>`

	txns, err := newTestParser().ParseFile(strings.NewReader(invoice))
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "블루 아카이브", txns[0].App)
}

func TestParseFileEmptyDocument(t *testing.T) {
	txns, err := newTestParser().ParseFile(strings.NewReader("<html><body></body></html>"))
	require.NoError(t, err)
	assert.Empty(t, txns)
}
