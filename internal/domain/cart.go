package domain

import (
	"github.com/shopspring/decimal"
)

// CartItem is one cart line, keyed by VariantID.
type CartItem struct {
	VariantID        string           `json:"variantId"`
	ProductID        string           `json:"productId"`
	ProductHandle    string           `json:"productHandle"`
	Title            string           `json:"title"`
	VariantTitle     string           `json:"variantTitle"`
	Quantity         int              `json:"quantity"`
	Price            Money            `json:"price"`
	CompareAtPrice   *Money           `json:"compareAtPrice,omitempty"`
	Image            *Image           `json:"image,omitempty"`
	SelectedOptions  []SelectedOption `json:"selectedOptions"`
	AvailableForSale bool             `json:"availableForSale"`
}

// LineTotal is unit price times quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Amount.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// TotalItems sums quantities over items.
func TotalItems(items []CartItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// TotalAmount sums line totals in the currency of the first item.
// Amounts in other currencies are added as is; there is no conversion.
func TotalAmount(items []CartItem) Money {
	total := Money{Amount: decimal.Zero, Currency: DefaultCurrency}
	if len(items) > 0 {
		total.Currency = items[0].Price.Currency
	}

	for _, item := range items {
		total.Amount = total.Amount.Add(item.LineTotal())
	}

	return total
}

// TotalPrice is TotalAmount formatted for display.
func TotalPrice(items []CartItem) string {
	return FormatMoney(TotalAmount(items))
}

func IsEmpty(items []CartItem) bool {
	return len(items) == 0
}

// CloneItems returns a deep copy so callers cannot alias store state.
func CloneItems(items []CartItem) []CartItem {
	if items == nil {
		return nil
	}

	out := make([]CartItem, len(items))
	for i, item := range items {
		out[i] = item.clone()
	}
	return out
}

func (i CartItem) clone() CartItem {
	out := i
	if i.CompareAtPrice != nil {
		compareAt := *i.CompareAtPrice
		out.CompareAtPrice = &compareAt
	}
	if i.Image != nil {
		image := *i.Image
		out.Image = &image
	}
	if i.SelectedOptions != nil {
		out.SelectedOptions = append([]SelectedOption(nil), i.SelectedOptions...)
	}
	return out
}
