// Package favorites persists the user's favorite catalog items.
//
// Items are stored as a JSON snapshot keyed by item ID in the favorites
// table of the shared pokeshop database, so they can be listed and priced
// without refetching from the catalog source.
package favorites

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"nathanbeddoewebdev/pokeshop/internal/database"
	"nathanbeddoewebdev/pokeshop/internal/domain"
)

// Repository defines the persistence interface for favorites.
type Repository interface {
	// Contains reports whether the item is a favorite.
	Contains(id int) (bool, error)

	// Toggle adds item if absent or removes it if present, and reports
	// whether it is a favorite afterwards.
	Toggle(item domain.CatalogItem) (bool, error)

	// Add saves item. Adding an existing favorite is a no-op.
	Add(item domain.CatalogItem) error

	// Remove deletes a favorite. It returns domain.ErrNotFound if absent.
	Remove(id int) error

	// List returns favorites in the order they were added.
	List() ([]Favorite, error)

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
	CREATE TABLE IF NOT EXISTS favorites (
		seq       INTEGER PRIMARY KEY AUTOINCREMENT,
		item_id   INTEGER NOT NULL UNIQUE,
		name      TEXT NOT NULL DEFAULT '',
		item_json TEXT NOT NULL,
		added_at  TEXT NOT NULL
	);
`

// Open creates or opens the repository at the default database path.
func Open() (*SQLiteRepository, error) {
	path, err := database.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("favorites: %w", err)
	}
	return OpenAt(path)
}

// OpenAt creates or opens the repository in the database at path.
func OpenAt(path string) (*SQLiteRepository, error) {
	db, err := database.OpenMigrated("favorites", path, ddl)
	if err != nil {
		return nil, err
	}
	return &SQLiteRepository{db: db}, nil
}

// Contains reports whether the item is a favorite.
func (r *SQLiteRepository) Contains(id int) (bool, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM favorites WHERE item_id = ?`, id).Scan(&n); err != nil {
		return false, fmt.Errorf("favorites: query failed: %w", err)
	}
	return n > 0, nil
}

// Toggle flips the favorite state of item in a single transaction.
func (r *SQLiteRepository) Toggle(item domain.CatalogItem) (bool, error) {
	if !item.Valid() {
		return false, fmt.Errorf("favorites: %w", domain.ErrInvalidItem)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return false, fmt.Errorf("favorites: begin failed: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`DELETE FROM favorites WHERE item_id = ?`, item.ID)
	if err != nil {
		return false, fmt.Errorf("favorites: delete failed: %w", err)
	}
	removed, _ := result.RowsAffected()

	if removed == 0 {
		if err := insert(tx, item); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("favorites: commit failed: %w", err)
	}
	return removed == 0, nil
}

// Add saves item unless it is already a favorite.
func (r *SQLiteRepository) Add(item domain.CatalogItem) error {
	if !item.Valid() {
		return fmt.Errorf("favorites: %w", domain.ErrInvalidItem)
	}
	return insert(r.db, item)
}

// Remove deletes the favorite with the given item ID.
func (r *SQLiteRepository) Remove(id int) error {
	result, err := r.db.Exec(`DELETE FROM favorites WHERE item_id = ?`, id)
	if err != nil {
		return fmt.Errorf("favorites: delete failed: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("favorites: item %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// List returns favorites in the order they were added.
func (r *SQLiteRepository) List() ([]Favorite, error) {
	rows, err := r.db.Query(`SELECT item_json, added_at FROM favorites ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("favorites: query failed: %w", err)
	}
	defer rows.Close()

	favs := []Favorite{}
	for rows.Next() {
		var payload, addedStr string
		if err := rows.Scan(&payload, &addedStr); err != nil {
			return nil, fmt.Errorf("favorites: scan failed: %w", err)
		}
		var fav Favorite
		if err := json.Unmarshal([]byte(payload), &fav.Item); err != nil {
			return nil, fmt.Errorf("favorites: corrupt item snapshot: %w", err)
		}
		fav.AddedAt, _ = time.Parse(time.RFC3339Nano, addedStr)
		favs = append(favs, fav)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("favorites: query failed: %w", err)
	}
	return favs, nil
}

// Close releases database resources.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insert(db execer, item domain.CatalogItem) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("favorites: encode failed: %w", err)
	}
	_, err = db.Exec(`
		INSERT INTO favorites (item_id, name, item_json, added_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(item_id) DO NOTHING`,
		item.ID, item.Name, string(payload), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("favorites: insert failed: %w", err)
	}
	return nil
}
