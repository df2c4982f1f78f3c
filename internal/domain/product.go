package domain

import "errors"

var (
	ErrVariantNotFound  = errors.New("variant not found")
	ErrVariantNotOnSale = errors.New("variant is not available for sale")
)

type Product struct {
	ID               string
	Title            string
	Handle           string
	Description      string
	AvailableForSale bool
	Tags             []string
	Vendor           string
	ProductType      string
	Images           []Image
	Variants         []Variant
	PriceRange       PriceRange
}

type Image struct {
	ID      string `json:"id,omitempty"`
	URL     string `json:"url"`
	AltText string `json:"altText"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

type Variant struct {
	ID               string
	Title            string
	AvailableForSale bool
	Price            Money
	CompareAtPrice   *Money
	SelectedOptions  []SelectedOption
}

type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type PriceRange struct {
	Min Money
	Max Money
}

// PageInfo carries the opaque pagination markers of a list query.
type PageInfo struct {
	HasNextPage     bool
	HasPreviousPage bool
	StartCursor     string
	EndCursor       string
}

type ProductPage struct {
	Products []Product
	PageInfo PageInfo
}

type Collection struct {
	ID          string
	Title       string
	Description string
}

type CollectionPage struct {
	Collection Collection
	Products   []Product
	PageInfo   PageInfo
}

// FirstImage reports the product's first image, if any.
func (p Product) FirstImage() (Image, bool) {
	if len(p.Images) == 0 {
		return Image{}, false
	}
	return p.Images[0], true
}

func (p Product) MinPrice() Money {
	return p.PriceRange.Min
}

func (p Product) MaxPrice() Money {
	return p.PriceRange.Max
}

// IsOnSale is true when any variant carries a compare-at price.
func (p Product) IsOnSale() bool {
	for _, v := range p.Variants {
		if v.CompareAtPrice != nil {
			return true
		}
	}
	return false
}

func (p Product) Variant(variantID string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == variantID {
			return v, true
		}
	}
	return Variant{}, false
}

// LineItemFromVariant builds the cart line for one variant of p with quantity 1.
func LineItemFromVariant(p Product, variantID string) (CartItem, error) {
	v, ok := p.Variant(variantID)
	if !ok {
		return CartItem{}, ErrVariantNotFound
	}
	if !v.AvailableForSale {
		return CartItem{}, ErrVariantNotOnSale
	}

	item := CartItem{
		VariantID:        v.ID,
		ProductID:        p.ID,
		ProductHandle:    p.Handle,
		Title:            p.Title,
		VariantTitle:     v.Title,
		Quantity:         1,
		Price:            v.Price,
		SelectedOptions:  append([]SelectedOption(nil), v.SelectedOptions...),
		AvailableForSale: v.AvailableForSale,
	}
	if v.CompareAtPrice != nil {
		compareAt := *v.CompareAtPrice
		item.CompareAtPrice = &compareAt
	}
	if image, ok := p.FirstImage(); ok {
		image.ID = ""
		item.Image = &image
	}

	return item, nil
}
