package loader

import (
	"context"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"log/slog"
)

type CollectionState struct {
	Status      Status
	Handle      string
	Collection  *domain.Collection
	Products    []domain.Product
	HasNextPage bool
	EndCursor   string
	Error       string
}

// CollectionLoader pages through the products of one collection.
type CollectionLoader struct {
	catalog port.Catalog
	first   int

	tracker
	state CollectionState
}

func NewCollectionLoader(catalog port.Catalog, first int, logger *slog.Logger) *CollectionLoader {
	l := &CollectionLoader{catalog: catalog, first: first}
	l.init(logger, "collection")
	return l
}

// Load fetches the first page of the collection. An unknown handle ends in
// the error state; an empty handle leaves the loader idle.
func (l *CollectionLoader) Load(ctx context.Context, handle string) CollectionState {
	l.mu.Lock()
	if l.closed {
		defer l.mu.Unlock()
		return l.snapshot()
	}
	gen := l.restart()
	if handle == "" {
		defer l.mu.Unlock()
		l.state = CollectionState{Status: StatusIdle}
		return l.snapshot()
	}
	l.begin()
	l.state = CollectionState{Status: StatusLoading, Handle: handle}
	l.mu.Unlock()

	page, err := l.catalog.FetchCollectionProducts(ctx, handle, l.first, "")

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.finish(gen) {
		return l.snapshot()
	}

	switch {
	case err != nil:
		l.logger.WarnContext(ctx, "fetch collection failed", slog.String("handle", handle), slog.Any("err", err))
		l.state.Status = StatusError
		l.state.Error = errorMessage(err, msgFetchCollection)
	case page == nil:
		l.logger.InfoContext(ctx, "collection not found", slog.String("handle", handle))
		l.state.Status = StatusError
		l.state.Error = msgCollectionNotFound
	default:
		collection := page.Collection
		l.state.Status = StatusSuccess
		l.state.Collection = &collection
		l.state.Products = page.Products
		l.state.HasNextPage = page.PageInfo.HasNextPage
		l.state.EndCursor = page.PageInfo.EndCursor
	}
	return l.snapshot()
}

// LoadMore appends the next page of a loaded collection. It returns false
// without fetching when nothing is loaded, no next page exists or a fetch is
// already in flight.
func (l *CollectionLoader) LoadMore(ctx context.Context) bool {
	l.mu.Lock()
	if l.closed || l.inFlight || l.state.Collection == nil || !l.state.HasNextPage {
		l.mu.Unlock()
		return false
	}
	gen := l.generation
	handle, after := l.state.Handle, l.state.EndCursor
	l.begin()
	l.state.Status = StatusLoading
	l.mu.Unlock()

	page, err := l.catalog.FetchCollectionProducts(ctx, handle, l.first, after)

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.finish(gen) {
		return true
	}

	switch {
	case err != nil:
		l.logger.WarnContext(ctx, "load more collection products failed", slog.String("handle", handle), slog.Any("err", err))
		l.state.Status = StatusError
		l.state.Error = errorMessage(err, msgLoadMoreProducts)
	case page == nil:
		l.state.Status = StatusError
		l.state.Error = msgCollectionNotFound
	default:
		l.state.Status = StatusSuccess
		l.state.Products = append(l.state.Products, page.Products...)
		l.state.HasNextPage = page.PageInfo.HasNextPage
		l.state.EndCursor = page.PageInfo.EndCursor
	}
	return true
}

func (l *CollectionLoader) State() CollectionState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}

func (l *CollectionLoader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.close()
}

func (l *CollectionLoader) snapshot() CollectionState {
	s := l.state
	s.Products = append([]domain.Product(nil), l.state.Products...)
	if l.state.Collection != nil {
		c := *l.state.Collection
		s.Collection = &c
	}
	return s
}
