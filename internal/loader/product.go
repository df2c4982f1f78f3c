package loader

import (
	"context"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"log/slog"
)

// ProductState holds a single product lookup. Product stays nil when the
// handle is unknown.
type ProductState struct {
	Status  Status
	Handle  string
	Product *domain.Product
	Error   string
}

type ProductLoader struct {
	catalog port.Catalog

	tracker
	state ProductState
}

func NewProductLoader(catalog port.Catalog, logger *slog.Logger) *ProductLoader {
	l := &ProductLoader{catalog: catalog}
	l.init(logger, "product")
	return l
}

// Load fetches the product by handle. An empty handle leaves the loader idle
// without a fetch.
func (l *ProductLoader) Load(ctx context.Context, handle string) ProductState {
	l.mu.Lock()
	if l.closed {
		defer l.mu.Unlock()
		return l.state
	}
	gen := l.restart()
	if handle == "" {
		l.state = ProductState{Status: StatusIdle}
		l.mu.Unlock()
		return ProductState{Status: StatusIdle}
	}
	l.begin()
	l.state = ProductState{Status: StatusLoading, Handle: handle}
	l.mu.Unlock()

	product, err := l.catalog.FetchProduct(ctx, handle)

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.finish(gen) {
		return l.state
	}

	if err != nil {
		l.logger.WarnContext(ctx, "fetch product failed", slog.String("handle", handle), slog.Any("err", err))
		l.state.Status = StatusError
		l.state.Error = errorMessage(err, msgFetchProduct)
		return l.state
	}

	l.state.Status = StatusSuccess
	l.state.Product = product
	return l.state
}

func (l *ProductLoader) State() ProductState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *ProductLoader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.close()
}
