package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gachaledger/internal/model"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name     string
		want     string
		amount   float64
		currency model.Currency
	}{
		{name: "won thousands", amount: 11000, currency: model.Won, want: "₩11,000"},
		{name: "won small", amount: 1200, currency: model.Won, want: "₩1,200"},
		{name: "dollar cents", amount: 4.99, currency: model.Dollar, want: "$4.99"},
		{name: "dollar whole", amount: 5, currency: model.Dollar, want: "$5"},
		{name: "zero", amount: 0, currency: model.Won, want: "₩0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(tt.amount, tt.currency))
		})
	}
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "42", FormatCount(42))
	assert.Equal(t, "1,234", FormatCount(1234))
}

func TestFormatMonth(t *testing.T) {
	assert.Equal(t, "2024년 3월", FormatMonth("2024-03"))
	assert.Equal(t, "2024년 12월", FormatMonth("2024-12"))
	assert.Equal(t, "garbage", FormatMonth("garbage"))
}
