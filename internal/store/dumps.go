package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a dump id does not exist.
var ErrNotFound = errors.New("store: dump not found")

// Dump is one saved IR dump.
type Dump struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// DumpSummary is a listing entry: everything but the content, which can
// be large.
type DumpSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveDump stores the given dump text under a fresh uuid and returns
// the saved record. An empty title defaults to "Untitled dump".
func (s *Store) SaveDump(ctx context.Context, title, content string) (*Dump, error) {
	if title == "" {
		title = "Untitled dump"
	}
	d := &Dump{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO dumps (id, title, content, created_at)
		VALUES (?, ?, ?, ?)
	`, d.ID, d.Title, d.Content, d.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("save dump: %w", err)
	}

	return d, nil
}

// GetDump loads a saved dump by id. Returns ErrNotFound for unknown
// ids.
func (s *Store) GetDump(ctx context.Context, id string) (*Dump, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, content, created_at
		FROM dumps
		WHERE id = ?
	`, id)

	var d Dump
	var createdAt string
	if err := row.Scan(&d.ID, &d.Title, &d.Content, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get dump: %w", err)
	}

	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("get dump: parse created_at: %w", err)
	}
	d.CreatedAt = t

	return &d, nil
}

// ListDumps returns summaries of all saved dumps, newest first.
func (s *Store) ListDumps(ctx context.Context) ([]DumpSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, created_at
		FROM dumps
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list dumps: %w", err)
	}
	defer rows.Close()

	summaries := []DumpSummary{}
	for rows.Next() {
		var d DumpSummary
		var createdAt string
		if err := rows.Scan(&d.ID, &d.Title, &createdAt); err != nil {
			return nil, fmt.Errorf("list dumps: %w", err)
		}
		t, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("list dumps: parse created_at: %w", err)
		}
		d.CreatedAt = t
		summaries = append(summaries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list dumps: %w", err)
	}

	return summaries, nil
}

// DeleteDump removes a saved dump. Deleting an unknown id returns
// ErrNotFound.
func (s *Store) DeleteDump(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM dumps WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete dump: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete dump: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
