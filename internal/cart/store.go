// Package cart holds the shopping cart state: an ordered list of line items
// plus a visibility flag, persisted through a port.KeyValueStorage.
package cart

import (
	"context"
	"errors"
	"fmt"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"log/slog"
	"slices"
	"sync"
)

// Snapshot is a consistent read of the cart with its derived values.
type Snapshot struct {
	Items      []domain.CartItem
	IsOpen     bool
	TotalItems int
	TotalPrice string
	IsEmpty    bool
}

// Store is safe for concurrent use. Every item mutation is applied and
// persisted under one lock; totals are computed on each read.
type Store struct {
	storage port.KeyValueStorage
	logger  *slog.Logger

	mu     sync.Mutex
	items  []domain.CartItem
	isOpen bool
}

// NewStore seeds the cart from storage. A missing record starts an empty
// cart, as does a record that cannot be decoded.
func NewStore(ctx context.Context, storage port.KeyValueStorage, logger *slog.Logger) (*Store, error) {
	if storage == nil {
		return nil, errors.New("storage is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		storage: storage,
		logger:  logger.With("component", "cart"),
	}

	data, err := storage.Get(ctx, StorageKey)
	if errors.Is(err, port.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage.Get: %w", err)
	}

	items, err := decodeItems(data)
	if err != nil {
		s.logger.WarnContext(ctx, "persisted cart discarded", slog.String("key", StorageKey), slog.Any("err", err))
		return s, nil
	}

	s.items = items
	s.logger.DebugContext(ctx, "cart restored", slog.Int("lines", len(items)))
	return s, nil
}

// AddToCart adds item.Quantity units of the variant, at least one. An
// existing line for the same variant is incremented instead of duplicated.
// The cart is opened.
func (s *Store) AddToCart(ctx context.Context, item domain.CartItem) {
	qty := item.Quantity
	if qty <= 0 {
		qty = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.isOpen = true

	if i := s.indexOf(item.VariantID); i >= 0 {
		s.items[i].Quantity += qty
	} else {
		added := domain.CloneItems([]domain.CartItem{item})[0]
		added.Quantity = qty
		s.items = append(s.items, added)
	}

	s.persist(ctx)
}

func (s *Store) RemoveFromCart(ctx context.Context, variantID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.remove(ctx, variantID)
}

// UpdateQuantity sets the quantity exactly. qty <= 0 removes the line; an
// unknown variant is ignored.
func (s *Store) UpdateQuantity(ctx context.Context, variantID string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if qty <= 0 {
		s.remove(ctx, variantID)
		return
	}

	i := s.indexOf(variantID)
	if i < 0 {
		return
	}
	s.items[i].Quantity = qty

	s.persist(ctx)
}

// ClearCart empties the cart and closes it.
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.isOpen = false

	s.persist(ctx)
}

func (s *Store) ToggleCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = !s.isOpen
}

func (s *Store) OpenCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = true
}

func (s *Store) CloseCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = false
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneItems(s.items)
}

func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isOpen
}

func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.TotalItems(s.items)
}

func (s *Store) TotalPrice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.TotalPrice(s.items)
}

func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.IsEmpty(s.items)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Items:      domain.CloneItems(s.items),
		IsOpen:     s.isOpen,
		TotalItems: domain.TotalItems(s.items),
		TotalPrice: domain.TotalPrice(s.items),
		IsEmpty:    domain.IsEmpty(s.items),
	}
}

func (s *Store) indexOf(variantID string) int {
	return slices.IndexFunc(s.items, func(item domain.CartItem) bool {
		return item.VariantID == variantID
	})
}

// remove must be called with mu held.
func (s *Store) remove(ctx context.Context, variantID string) {
	i := s.indexOf(variantID)
	if i < 0 {
		return
	}
	s.items = slices.Delete(s.items, i, i+1)

	s.persist(ctx)
}

// persist writes the items record. Failures are logged, never returned.
func (s *Store) persist(ctx context.Context) {
	data, err := encodeItems(s.items)
	if err != nil {
		s.logger.ErrorContext(ctx, "encode cart failed", slog.Any("err", err))
		return
	}

	if err := s.storage.Put(ctx, StorageKey, data); err != nil {
		s.logger.ErrorContext(ctx, "persist cart failed", slog.String("key", StorageKey), slog.Any("err", err))
	}
}
