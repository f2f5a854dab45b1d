package vizstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/teranos/qntx-braket/errors"
)

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 50

// Entry is one saved visualization.
type Entry struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	BaseName    string    `json:"base_name"`
	Path        string    `json:"path"`
	Description string    `json:"description,omitempty"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

// Catalog stores Entries in the visualizations table.
type Catalog struct {
	db *sql.DB
}

// NewCatalog wraps a migrated database.
func NewCatalog(db *sql.DB) *Catalog {
	return &Catalog{db: db}
}

// Record inserts e.
func (c *Catalog) Record(ctx context.Context, e Entry) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO visualizations (id, kind, base_name, path, description, size_bytes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Kind, e.BaseName, e.Path, e.Description, e.SizeBytes, e.CreatedAt.UTC(),
	)
	if err != nil {
		return errors.MarkVisualization(errors.Wrapf(err, "record visualization %s", e.ID))
	}
	return nil
}

// List returns the newest entries first. kind filters when non-empty;
// limit <= 0 means DefaultListLimit.
func (c *Catalog) List(ctx context.Context, kind string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := `SELECT id, kind, base_name, path, description, size_bytes, created_at
		FROM visualizations`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY created_at DESC, id LIMIT ?`
	args = append(args, limit)

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.MarkVisualization(errors.Wrap(err, "list visualizations"))
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Kind, &e.BaseName, &e.Path, &e.Description, &e.SizeBytes, &e.CreatedAt); err != nil {
			return nil, errors.MarkVisualization(errors.Wrap(err, "scan visualization"))
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.MarkVisualization(errors.Wrap(err, "iterate visualizations"))
	}
	return entries, nil
}
