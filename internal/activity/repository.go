package activity

import (
	"database/sql"
	"fmt"
	"time"

	"nathanbeddoewebdev/pokeshop/internal/database"
)

// Repository defines the persistence interface for activity entries.
type Repository interface {
	Save(entry *Entry) error
	List(limit int) ([]Entry, error)
	ListByItem(itemID, limit int) ([]Entry, error)
	Prune(olderThan time.Duration) (int64, error)
	Close() error
}

var _ Repository = (*SQLiteRepository)(nil)

// SQLiteRepository implements Repository backed by a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

const ddl = `
	CREATE TABLE IF NOT EXISTS activity (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp   TEXT    NOT NULL,
		action      TEXT    NOT NULL,
		origin      TEXT    NOT NULL DEFAULT '',
		item_id     INTEGER NOT NULL DEFAULT 0,
		item_name   TEXT    NOT NULL DEFAULT '',
		qty         INTEGER NOT NULL DEFAULT 0,
		outcome     TEXT    NOT NULL DEFAULT '',
		detail      TEXT    NOT NULL DEFAULT '',
		duration_ms INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_activity_timestamp ON activity(timestamp);
	CREATE INDEX IF NOT EXISTS idx_activity_item ON activity(item_id);
`

// tsLayout is fixed-width so timestamps sort lexicographically.
const tsLayout = "2006-01-02T15:04:05.000000000Z"

const selectColumns = `
	SELECT id, timestamp, action, origin, item_id, item_name, qty, outcome, detail, duration_ms
	FROM activity`

// Open creates or opens the repository at the default database path.
func Open() (*SQLiteRepository, error) {
	path, err := database.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("activity: %w", err)
	}
	return OpenAt(path)
}

// OpenAt creates or opens the repository in the database at path.
func OpenAt(path string) (*SQLiteRepository, error) {
	db, err := database.OpenMigrated("activity", path, ddl)
	if err != nil {
		return nil, err
	}
	return &SQLiteRepository{db: db}, nil
}

// Save inserts a new entry and assigns its ID.
func (r *SQLiteRepository) Save(entry *Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	result, err := r.db.Exec(`
		INSERT INTO activity (timestamp, action, origin, item_id, item_name, qty, outcome, detail, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.Timestamp.UTC().Format(tsLayout), entry.Action, entry.Origin,
		entry.ItemID, entry.ItemName, entry.Qty, entry.Outcome, entry.Detail, entry.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("activity: insert failed: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("activity: failed to get last insert ID: %w", err)
	}
	entry.ID = id
	return nil
}

// List returns the most recent entries, newest first.
func (r *SQLiteRepository) List(limit int) ([]Entry, error) {
	rows, err := r.db.Query(selectColumns+` ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("activity: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// ListByItem returns the most recent entries for one item, newest first.
func (r *SQLiteRepository) ListByItem(itemID, limit int) ([]Entry, error) {
	rows, err := r.db.Query(selectColumns+` WHERE item_id = ? ORDER BY timestamp DESC, id DESC LIMIT ?`, itemID, limit)
	if err != nil {
		return nil, fmt.Errorf("activity: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// Prune deletes entries older than olderThan.
func (r *SQLiteRepository) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan).Format(tsLayout)
	result, err := r.db.Exec(`DELETE FROM activity WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("activity: delete failed: %w", err)
	}
	return result.RowsAffected()
}

// Close releases database resources.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func scanRows(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts string
		err := rows.Scan(&e.ID, &ts, &e.Action, &e.Origin, &e.ItemID, &e.ItemName,
			&e.Qty, &e.Outcome, &e.Detail, &e.DurationMs)
		if err != nil {
			return nil, fmt.Errorf("activity: scan failed: %w", err)
		}
		e.Timestamp, _ = time.Parse(tsLayout, ts)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
