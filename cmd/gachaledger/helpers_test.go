package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gachaledger/internal/model"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    model.Currency
		wantErr bool
	}{
		{name: "default won", input: "", want: model.Won},
		{name: "won symbol", input: "₩", want: model.Won},
		{name: "krw code", input: "KRW", want: model.Won},
		{name: "dollar", input: "$", want: model.Dollar},
		{name: "usd lowercase", input: "usd", want: model.Dollar},
		{name: "yen", input: "¥", want: model.Yen},
		{name: "euro", input: "EUR", want: model.Euro},
		{name: "nonsense", input: "gold", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCurrency(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTruncateCell(t *testing.T) {
	assert.Equal(t, "short", truncateCell("short", 10))
	assert.Equal(t, "아주아주아주아주굉…", truncateCell("아주아주아주아주굉장히긴이름", 10))
}
