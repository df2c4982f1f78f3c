package domain

import (
	"encoding/json"
	"fmt"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"strings"
)

// DefaultCurrency is used for totals of an empty cart.
var DefaultCurrency = currency.USD

// formatLocale is the fixed locale for all price formatting.
var formatLocale = language.AmericanEnglish

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

type moneyJSON struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{
		Amount:       m.Amount.String(),
		CurrencyCode: m.Currency.String(),
	})
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := ParseMoney(raw.Amount, raw.CurrencyCode)
	if err != nil {
		return err
	}

	*m = parsed
	return nil
}

// ParseMoney builds Money from the wire representation: a decimal string and an ISO 4217 code.
func ParseMoney(amount, currencyCode string) (Money, error) {
	parsedAmount, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, fmt.Errorf("amount[%s] is not valid: %w", amount, err)
	}

	parsedCurrency, err := currency.ParseISO(strings.TrimSpace(currencyCode))
	if err != nil {
		return Money{}, fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
	}

	return Money{Amount: parsedAmount, Currency: parsedCurrency}, nil
}

// FormatMoney renders m in en-US currency style, e.g. "$1,234.50".
// The number of fraction digits follows the ISO currency (2 for USD, 0 for JPY).
// Rounding and digits use decimal arithmetic only.
func FormatMoney(m Money) string {
	unit := m.Currency
	if unit == (currency.Unit{}) {
		unit = DefaultCurrency
	}

	p := message.NewPrinter(formatLocale)
	symbol := p.Sprint(currency.Symbol(unit))

	scale, _ := currency.Standard.Rounding(unit)
	amount := m.Amount.Round(int32(scale))

	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}

	return sign + symbol + groupThousands(amount.StringFixed(int32(scale)))
}

// groupThousands inserts en-US grouping separators into a fixed-point string
// such as "1234567.50". The digits come from the decimal itself, so large
// amounts keep every digit.
func groupThousands(fixed string) string {
	intPart, fracPart, hasFrac := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	if hasFrac {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}
