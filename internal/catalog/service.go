package catalog

import (
	"context"
	"errors"
	"fmt"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/storefront"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 250
)

// ErrEmptyHandle rejects a lookup without a handle before any request is sent.
var ErrEmptyHandle = errors.New("handle is empty")

// Doer sends one GraphQL operation; *storefront.Client implements it.
type Doer interface {
	Do(ctx context.Context, op storefront.Operation, variables map[string]any, out any) error
}

// Service is the catalog query layer. It neither retries nor caches;
// request failures come back as *storefront.RequestError.
type Service struct {
	client Doer
}

var _ port.Catalog = (*Service)(nil)

func NewService(client Doer) *Service {
	return &Service{client: client}
}

func (s *Service) FetchProducts(ctx context.Context, first int, after, filter string) (domain.ProductPage, error) {
	variables := map[string]any{"first": pageSize(first)}
	if after != "" {
		variables["after"] = after
	}
	if strings.TrimSpace(filter) != "" {
		variables["query"] = filter
	}

	var data productsData
	if err := s.client.Do(ctx, getProductsOp, variables, &data); err != nil {
		return domain.ProductPage{}, err
	}

	products, pageInfo, err := mapConnectionToDomain(data.Products)
	if err != nil {
		return domain.ProductPage{}, fmt.Errorf("mapConnectionToDomain: %w", err)
	}

	return domain.ProductPage{Products: products, PageInfo: pageInfo}, nil
}

// FetchProduct returns nil, nil when no product has the handle.
func (s *Service) FetchProduct(ctx context.Context, handle string) (*domain.Product, error) {
	if strings.TrimSpace(handle) == "" {
		return nil, ErrEmptyHandle
	}

	var data productData
	if err := s.client.Do(ctx, getProductOp, map[string]any{"handle": handle}, &data); err != nil {
		return nil, err
	}

	if data.ProductByHandle == nil {
		return nil, nil
	}

	p, err := mapProductToDomain(*data.ProductByHandle)
	if err != nil {
		return nil, fmt.Errorf("mapProductToDomain: %w", err)
	}

	return &p, nil
}

// FetchCollectionProducts returns nil, nil when the collection handle does not resolve.
func (s *Service) FetchCollectionProducts(ctx context.Context, handle string, first int, after string) (*domain.CollectionPage, error) {
	if strings.TrimSpace(handle) == "" {
		return nil, ErrEmptyHandle
	}

	variables := map[string]any{
		"handle": handle,
		"first":  pageSize(first),
	}
	if after != "" {
		variables["after"] = after
	}

	var data collectionProductsData
	if err := s.client.Do(ctx, getCollectionProductsOp, variables, &data); err != nil {
		return nil, err
	}

	c := data.CollectionByHandle
	if c == nil {
		return nil, nil
	}

	products, pageInfo, err := mapConnectionToDomain(c.Products)
	if err != nil {
		return nil, fmt.Errorf("mapConnectionToDomain: %w", err)
	}

	return &domain.CollectionPage{
		Collection: domain.Collection{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
		},
		Products: products,
		PageInfo: pageInfo,
	}, nil
}

// pageSize defaults non-positive sizes and caps the rest at the API maximum.
func pageSize(first int) int {
	switch {
	case first <= 0:
		return DefaultPageSize
	case first > MaxPageSize:
		return MaxPageSize
	default:
		return first
	}
}
