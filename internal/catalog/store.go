package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("item not found")

// Store keeps the catalog in the items table as JSONB documents. Catalog
// order is the position column.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// List returns every item in catalog order.
func (s *Store) List(ctx context.Context) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT json(data) FROM items ORDER BY position, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var it Item
		if err := json.Unmarshal([]byte(data), &it); err != nil {
			return nil, fmt.Errorf("decoding item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Item, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT json(data) FROM items WHERE id = ?`, id,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return Item{}, ErrNotFound
	}
	if err != nil {
		return Item{}, err
	}
	var it Item
	if err := json.Unmarshal([]byte(data), &it); err != nil {
		return Item{}, fmt.Errorf("decoding item %q: %w", id, err)
	}
	return it, nil
}

// Put inserts or replaces an item. New items are appended to the end of the
// catalog; replaced items keep their position.
func (s *Store) Put(ctx context.Context, it Item) error {
	data, err := json.Marshal(it)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO items (id, position, category, data)
		 VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM items), ?, jsonb(?))
		 ON CONFLICT(id) DO UPDATE SET category = excluded.category, data = excluded.data`,
		it.ID, string(it.Category), string(data),
	)
	if err != nil {
		return fmt.Errorf("storing item %q: %w", it.ID, err)
	}
	return nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n)
	return n, err
}

// Seed loads the demo catalog when the table is empty. It reports whether
// anything was inserted.
func (s *Store) Seed(ctx context.Context) (bool, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("counting items: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	for _, it := range DemoItems() {
		if err := s.Put(ctx, it); err != nil {
			return false, err
		}
	}
	return true, nil
}
