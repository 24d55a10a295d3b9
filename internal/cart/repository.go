// Package cart persists the shopping cart: one line per item ID with a
// quantity and a JSON snapshot of the item, stored in the cart_lines table
// of the shared pokeshop database.
package cart

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"nathanbeddoewebdev/pokeshop/internal/database"
	"nathanbeddoewebdev/pokeshop/internal/domain"
)

// Repository defines the persistence interface for the cart.
type Repository interface {
	// Contains reports whether the item has a cart line.
	Contains(id int) (bool, error)

	// Add puts qty units of item in the cart, incrementing an existing line.
	Add(item domain.CatalogItem, qty int) error

	// SetQty replaces the quantity of a line. qty <= 0 removes the line.
	SetQty(id, qty int) error

	// Remove deletes a line. It returns domain.ErrNotFound if absent.
	Remove(id int) error

	// Clear empties the cart.
	Clear() error

	// List returns cart lines in the order they were first added.
	List() ([]Line, error)

	// Close releases database resources.
	Close() error
}

// Compile-time check that SQLiteRepository satisfies Repository.
var _ Repository = (*SQLiteRepository)(nil)

// SQLiteRepository implements Repository backed by a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

const ddl = `
	CREATE TABLE IF NOT EXISTS cart_lines (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		item_id    INTEGER NOT NULL UNIQUE,
		name       TEXT NOT NULL DEFAULT '',
		item_json  TEXT NOT NULL,
		qty        INTEGER NOT NULL CHECK (qty > 0),
		added_at   TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
`

// Open creates or opens the repository at the default database path.
func Open() (*SQLiteRepository, error) {
	path, err := database.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("cart: %w", err)
	}
	return OpenAt(path)
}

// OpenAt creates or opens the repository in the database at path.
func OpenAt(path string) (*SQLiteRepository, error) {
	db, err := database.OpenMigrated("cart", path, ddl)
	if err != nil {
		return nil, err
	}
	return &SQLiteRepository{db: db}, nil
}

// Contains reports whether the item has a cart line.
func (r *SQLiteRepository) Contains(id int) (bool, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM cart_lines WHERE item_id = ?`, id).Scan(&n); err != nil {
		return false, fmt.Errorf("cart: query failed: %w", err)
	}
	return n > 0, nil
}

// Add puts qty units of item in the cart. The first snapshot of an item is
// kept; later adds only raise the quantity.
func (r *SQLiteRepository) Add(item domain.CatalogItem, qty int) error {
	if !item.Valid() {
		return fmt.Errorf("cart: %w", domain.ErrInvalidItem)
	}
	if qty <= 0 {
		return fmt.Errorf("cart: quantity must be positive, got %d", qty)
	}

	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("cart: encode failed: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = r.db.Exec(`
		INSERT INTO cart_lines (item_id, name, item_json, qty, added_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(item_id) DO UPDATE SET
			qty = cart_lines.qty + excluded.qty,
			updated_at = excluded.updated_at`,
		item.ID, item.Name, string(payload), qty, now, now)
	if err != nil {
		return fmt.Errorf("cart: insert failed: %w", err)
	}
	return nil
}

// SetQty replaces the quantity of the line for id.
func (r *SQLiteRepository) SetQty(id, qty int) error {
	if qty <= 0 {
		return r.Remove(id)
	}

	result, err := r.db.Exec(`
		UPDATE cart_lines SET qty = ?, updated_at = ? WHERE item_id = ?`,
		qty, time.Now().UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		return fmt.Errorf("cart: update failed: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("cart: item %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Remove deletes the line for id.
func (r *SQLiteRepository) Remove(id int) error {
	result, err := r.db.Exec(`DELETE FROM cart_lines WHERE item_id = ?`, id)
	if err != nil {
		return fmt.Errorf("cart: delete failed: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("cart: item %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Clear empties the cart.
func (r *SQLiteRepository) Clear() error {
	if _, err := r.db.Exec(`DELETE FROM cart_lines`); err != nil {
		return fmt.Errorf("cart: delete failed: %w", err)
	}
	return nil
}

// List returns cart lines in the order they were first added.
func (r *SQLiteRepository) List() ([]Line, error) {
	rows, err := r.db.Query(`SELECT item_json, qty, added_at FROM cart_lines ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("cart: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// Close releases database resources.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func scanRows(rows *sql.Rows) ([]Line, error) {
	lines := []Line{}
	for rows.Next() {
		var line Line
		var payload, addedStr string
		if err := rows.Scan(&payload, &line.Qty, &addedStr); err != nil {
			return nil, fmt.Errorf("cart: scan failed: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &line.Item); err != nil {
			return nil, fmt.Errorf("cart: corrupt item snapshot: %w", err)
		}
		line.AddedAt, _ = time.Parse(time.RFC3339Nano, addedStr)
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cart: query failed: %w", err)
	}
	return lines, nil
}
