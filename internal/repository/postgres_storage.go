package repository

import (
	"context"
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/port"
)

type postgresStorage struct {
	q *db.Queries
}

func NewPostgresStorage(pool *pgxpool.Pool) port.KeyValueStorage {
	return &postgresStorage{
		q: db.New(pool),
	}
}

// NewStorageWithTx binds the storage to a caller-owned transaction.
func NewStorageWithTx(tx pgx.Tx) port.KeyValueStorage {
	return &postgresStorage{
		q: db.New(tx),
	}
}

func (s *postgresStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("key is empty")
	}

	entry, err := s.q.GetEntry(ctx, key)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("q.GetEntry: %w", err)
	}

	return entry.Value, nil
}

func (s *postgresStorage) Put(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}
	if value == nil {
		value = []byte{}
	}

	err := s.q.UpsertEntry(ctx, db.UpsertEntryParams{
		Key:   key,
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("q.UpsertEntry: %w", err)
	}

	return nil
}

func (s *postgresStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	if _, err := s.q.DeleteEntry(ctx, key); err != nil {
		return fmt.Errorf("q.DeleteEntry: %w", err)
	}

	return nil
}
