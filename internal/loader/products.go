package loader

import (
	"context"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"log/slog"
)

type ProductsState struct {
	Status      Status
	Filter      string
	Products    []domain.Product
	HasNextPage bool
	EndCursor   string
	Error       string
}

// ProductsLoader pages through the product list, optionally filtered.
type ProductsLoader struct {
	catalog port.Catalog
	first   int

	tracker
	state ProductsState
}

func NewProductsLoader(catalog port.Catalog, first int, logger *slog.Logger) *ProductsLoader {
	l := &ProductsLoader{catalog: catalog, first: first}
	l.init(logger, "products")
	return l
}

// Load resets the state for filter and fetches the first page.
func (l *ProductsLoader) Load(ctx context.Context, filter string) ProductsState {
	l.mu.Lock()
	if l.closed {
		defer l.mu.Unlock()
		return l.snapshot()
	}
	gen := l.restart()
	l.begin()
	l.state = ProductsState{Status: StatusLoading, Filter: filter}
	l.mu.Unlock()

	page, err := l.catalog.FetchProducts(ctx, l.first, "", filter)

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.finish(gen) {
		return l.snapshot()
	}

	if err != nil {
		l.logger.WarnContext(ctx, "fetch products failed", slog.String("filter", filter), slog.Any("err", err))
		l.state.Status = StatusError
		l.state.Error = errorMessage(err, msgFetchProducts)
		return l.snapshot()
	}

	l.state.Status = StatusSuccess
	l.state.Products = page.Products
	l.state.HasNextPage = page.PageInfo.HasNextPage
	l.state.EndCursor = page.PageInfo.EndCursor
	return l.snapshot()
}

// LoadMore appends the next page after the server's end cursor. It does
// nothing and returns false when there is no next page or a fetch is in flight.
func (l *ProductsLoader) LoadMore(ctx context.Context) bool {
	l.mu.Lock()
	if l.closed || l.inFlight || !l.state.HasNextPage {
		l.mu.Unlock()
		return false
	}
	gen := l.generation
	after, filter := l.state.EndCursor, l.state.Filter
	l.begin()
	l.state.Status = StatusLoading
	l.mu.Unlock()

	page, err := l.catalog.FetchProducts(ctx, l.first, after, filter)

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.finish(gen) {
		return true
	}

	if err != nil {
		l.logger.WarnContext(ctx, "load more products failed", slog.String("after", after), slog.Any("err", err))
		l.state.Status = StatusError
		l.state.Error = errorMessage(err, msgLoadMoreProducts)
		return true
	}

	l.state.Status = StatusSuccess
	l.state.Products = append(l.state.Products, page.Products...)
	l.state.HasNextPage = page.PageInfo.HasNextPage
	l.state.EndCursor = page.PageInfo.EndCursor
	return true
}

func (l *ProductsLoader) State() ProductsState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}

// Close stops the loader; results arriving afterwards are dropped.
func (l *ProductsLoader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.close()
}

func (l *ProductsLoader) snapshot() ProductsState {
	s := l.state
	s.Products = append([]domain.Product(nil), l.state.Products...)
	return s
}
