package port

import (
	"context"
	"github.com/nikolayk812/storefront/internal/domain"
)

// Catalog is the read side of the remote commerce API.
// Lookups by handle return nil, nil when nothing matches.
type Catalog interface {
	FetchProducts(ctx context.Context, first int, after, filter string) (domain.ProductPage, error)
	FetchProduct(ctx context.Context, handle string) (*domain.Product, error)
	FetchCollectionProducts(ctx context.Context, handle string, first int, after string) (*domain.CollectionPage, error)
}
