package catalog

import (
	"fmt"
	"github.com/nikolayk812/storefront/internal/domain"
)

func mapProductToDomain(p productDTO) (domain.Product, error) {
	minPrice, err := mapMoneyToDomain(p.PriceRange.MinVariantPrice)
	if err != nil {
		return domain.Product{}, fmt.Errorf("minVariantPrice: %w", err)
	}

	maxPrice, err := mapMoneyToDomain(p.PriceRange.MaxVariantPrice)
	if err != nil {
		return domain.Product{}, fmt.Errorf("maxVariantPrice: %w", err)
	}

	images := make([]domain.Image, 0, len(p.Images.Edges))
	for _, edge := range p.Images.Edges {
		images = append(images, mapImageToDomain(edge.Node))
	}

	variants := make([]domain.Variant, 0, len(p.Variants.Edges))
	for _, edge := range p.Variants.Edges {
		v, err := mapVariantToDomain(edge.Node)
		if err != nil {
			return domain.Product{}, fmt.Errorf("variant[%s]: %w", edge.Node.ID, err)
		}
		variants = append(variants, v)
	}

	return domain.Product{
		ID:               p.ID,
		Title:            p.Title,
		Handle:           p.Handle,
		Description:      p.Description,
		AvailableForSale: p.AvailableForSale,
		Tags:             p.Tags,
		Vendor:           p.Vendor,
		ProductType:      p.ProductType,
		Images:           images,
		Variants:         variants,
		PriceRange:       domain.PriceRange{Min: minPrice, Max: maxPrice},
	}, nil
}

// mapConnectionToDomain flattens edges to nodes; per-edge cursors are dropped.
func mapConnectionToDomain(conn productConnectionDTO) ([]domain.Product, domain.PageInfo, error) {
	products := make([]domain.Product, 0, len(conn.Edges))
	for _, edge := range conn.Edges {
		p, err := mapProductToDomain(edge.Node)
		if err != nil {
			return nil, domain.PageInfo{}, fmt.Errorf("mapProductToDomain[%s]: %w", edge.Node.Handle, err)
		}
		products = append(products, p)
	}

	return products, mapPageInfoToDomain(conn.PageInfo), nil
}

func mapVariantToDomain(v variantDTO) (domain.Variant, error) {
	price, err := mapMoneyToDomain(v.Price)
	if err != nil {
		return domain.Variant{}, fmt.Errorf("price: %w", err)
	}

	var compareAt *domain.Money
	if v.CompareAtPrice != nil {
		m, err := mapMoneyToDomain(*v.CompareAtPrice)
		if err != nil {
			return domain.Variant{}, fmt.Errorf("compareAtPrice: %w", err)
		}
		compareAt = &m
	}

	options := make([]domain.SelectedOption, 0, len(v.SelectedOptions))
	for _, o := range v.SelectedOptions {
		options = append(options, domain.SelectedOption{Name: o.Name, Value: o.Value})
	}

	return domain.Variant{
		ID:               v.ID,
		Title:            v.Title,
		AvailableForSale: v.AvailableForSale,
		Price:            price,
		CompareAtPrice:   compareAt,
		SelectedOptions:  options,
	}, nil
}

func mapImageToDomain(i imageDTO) domain.Image {
	image := domain.Image{
		ID:     i.ID,
		URL:    i.URL,
		Width:  i.Width,
		Height: i.Height,
	}
	if i.AltText != nil {
		image.AltText = *i.AltText
	}
	return image
}

func mapMoneyToDomain(m moneyDTO) (domain.Money, error) {
	return domain.ParseMoney(m.Amount, m.CurrencyCode)
}

func mapPageInfoToDomain(p pageInfoDTO) domain.PageInfo {
	info := domain.PageInfo{
		HasNextPage:     p.HasNextPage,
		HasPreviousPage: p.HasPreviousPage,
	}
	if p.StartCursor != nil {
		info.StartCursor = *p.StartCursor
	}
	if p.EndCursor != nil {
		info.EndCursor = *p.EndCursor
	}
	return info
}
