package main

import (
	"github.com/nikolayk812/storefront/internal/cart"
	"github.com/nikolayk812/storefront/internal/domain"
)

type productSummary struct {
	Handle   string `json:"handle"`
	Title    string `json:"title"`
	Price    string `json:"price"`
	OnSale   bool   `json:"onSale,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type productListView struct {
	Collection  *domain.Collection `json:"collection,omitempty"`
	Products    []productSummary   `json:"products"`
	HasNextPage bool               `json:"hasNextPage"`
	EndCursor   string             `json:"endCursor,omitempty"`
}

type homeView struct {
	Products   productListView    `json:"products"`
	Collection *domain.Collection `json:"collection,omitempty"`
	Featured   productListView    `json:"featured"`
	Errors     []string           `json:"errors,omitempty"`
}

type variantView struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Price          string `json:"price"`
	CompareAtPrice string `json:"compareAtPrice,omitempty"`
	Available      bool   `json:"availableForSale"`
}

type productDetailView struct {
	productSummary
	Description string        `json:"description,omitempty"`
	Vendor      string        `json:"vendor,omitempty"`
	MaxPrice    string        `json:"maxPrice"`
	Variants    []variantView `json:"variants"`
}

type cartLineView struct {
	VariantID string `json:"variantId"`
	Title     string `json:"title"`
	Variant   string `json:"variant,omitempty"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	LineTotal string `json:"lineTotal"`
}

type cartSummaryView struct {
	Items      []cartLineView `json:"items"`
	TotalItems int            `json:"totalItems"`
	TotalPrice string         `json:"totalPrice"`
	IsEmpty    bool           `json:"isEmpty"`
}

func summarize(p domain.Product) productSummary {
	s := productSummary{
		Handle: p.Handle,
		Title:  p.Title,
		Price:  domain.FormatMoney(p.MinPrice()),
		OnSale: p.IsOnSale(),
	}
	if image, ok := p.FirstImage(); ok {
		s.ImageURL = image.URL
	}
	return s
}

func productList(products []domain.Product, hasNextPage bool, endCursor string) productListView {
	view := productListView{
		Products:    make([]productSummary, 0, len(products)),
		HasNextPage: hasNextPage,
		EndCursor:   endCursor,
	}
	for _, p := range products {
		view.Products = append(view.Products, summarize(p))
	}
	return view
}

func productView(p domain.Product) productDetailView {
	view := productDetailView{
		productSummary: summarize(p),
		Description:    p.Description,
		Vendor:         p.Vendor,
		MaxPrice:       domain.FormatMoney(p.MaxPrice()),
		Variants:       make([]variantView, 0, len(p.Variants)),
	}
	for _, v := range p.Variants {
		vv := variantView{
			ID:        v.ID,
			Title:     v.Title,
			Price:     domain.FormatMoney(v.Price),
			Available: v.AvailableForSale,
		}
		if v.CompareAtPrice != nil {
			vv.CompareAtPrice = domain.FormatMoney(*v.CompareAtPrice)
		}
		view.Variants = append(view.Variants, vv)
	}
	return view
}

func cartView(s cart.Snapshot) cartSummaryView {
	view := cartSummaryView{
		Items:      make([]cartLineView, 0, len(s.Items)),
		TotalItems: s.TotalItems,
		TotalPrice: s.TotalPrice,
		IsEmpty:    s.IsEmpty,
	}
	for _, item := range s.Items {
		view.Items = append(view.Items, cartLineView{
			VariantID: item.VariantID,
			Title:     item.Title,
			Variant:   item.VariantTitle,
			Quantity:  item.Quantity,
			Price:     domain.FormatMoney(item.Price),
			LineTotal: domain.FormatMoney(domain.Money{Amount: item.LineTotal(), Currency: item.Price.Currency}),
		})
	}
	return view
}
