package domain_test

import (
	"encoding/json"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
	"testing"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name  string
		money domain.Money
		want  string
	}{
		{
			name:  "usd two decimals",
			money: domain.Money{Amount: decimal.RequireFromString("30"), Currency: currency.USD},
			want:  "$30.00",
		},
		{
			name:  "usd rounding",
			money: domain.Money{Amount: decimal.RequireFromString("19.999"), Currency: currency.USD},
			want:  "$20.00",
		},
		{
			name:  "usd grouping",
			money: domain.Money{Amount: decimal.RequireFromString("1234.5"), Currency: currency.USD},
			want:  "$1,234.50",
		},
		{
			name:  "negative",
			money: domain.Money{Amount: decimal.RequireFromString("-5"), Currency: currency.USD},
			want:  "-$5.00",
		},
		{
			name:  "large amount keeps every digit",
			money: domain.Money{Amount: decimal.RequireFromString("99999999999999.99"), Currency: currency.USD},
			want:  "$99,999,999,999,999.99",
		},
		{
			name:  "amount beyond float precision",
			money: domain.Money{Amount: decimal.RequireFromString("123456789012345678.91"), Currency: currency.USD},
			want:  "$123,456,789,012,345,678.91",
		},
		{
			name:  "sub-unit amount",
			money: domain.Money{Amount: decimal.RequireFromString("0.5"), Currency: currency.USD},
			want:  "$0.50",
		},
		{
			name:  "jpy no fraction digits",
			money: domain.Money{Amount: decimal.RequireFromString("1234567"), Currency: currency.JPY},
			want:  "¥1,234,567",
		},
		{
			name:  "exactly three digits",
			money: domain.Money{Amount: decimal.RequireFromString("999"), Currency: currency.USD},
			want:  "$999.00",
		},
		{
			name:  "zero value currency defaults to usd",
			money: domain.Money{Amount: decimal.Zero},
			want:  "$0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.FormatMoney(tt.money))
		})
	}
}

func TestParseMoney(t *testing.T) {
	m, err := domain.ParseMoney("10.00", "USD")
	require.NoError(t, err)
	assert.True(t, m.Amount.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "USD", m.Currency.String())

	_, err = domain.ParseMoney("ten", "USD")
	require.Error(t, err)

	_, err = domain.ParseMoney("10.00", "XXXX")
	require.Error(t, err)
}

func TestMoneyJSON(t *testing.T) {
	in := domain.Money{Amount: decimal.RequireFromString("12.5"), Currency: currency.EUR}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"12.5","currencyCode":"EUR"}`, string(data))

	var out domain.Money
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, in.Amount.Equal(out.Amount))
	assert.Equal(t, in.Currency, out.Currency)

	err = json.Unmarshal([]byte(`{"amount":"1","currencyCode":"NOPE"}`), &out)
	require.Error(t, err)
}
