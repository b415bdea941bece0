package postgres

import (
	"context"
	"database/sql"
	"errors"

	"locationbot/internal/repository"
)

// ListRepo implements repository.ListRepository on a place_entries table.
// The head of the list is the row with the highest id.
type ListRepo struct {
	db *sql.DB
}

// NewListRepo creates a new list repository
func NewListRepo(db *sql.DB) *ListRepo {
	return &ListRepo{db: db}
}

// PushFront inserts a new head entry
func (r *ListRepo) PushFront(ctx context.Context, userID int64, value string) error {
	query := `
		INSERT INTO place_entries (user_id, entry)
		VALUES ($1, $2)
	`
	_, err := r.db.ExecContext(ctx, query, userID, value)
	return err
}

// PopFront deletes the head entry and returns it
func (r *ListRepo) PopFront(ctx context.Context, userID int64) (string, error) {
	query := `
		DELETE FROM place_entries
		WHERE id = (
			SELECT id FROM place_entries
			WHERE user_id = $1
			ORDER BY id DESC
			LIMIT 1
		)
		RETURNING entry
	`
	var entry string
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&entry)

	if errors.Is(err, sql.ErrNoRows) {
		return "", repository.ErrEmptyList
	}
	if err != nil {
		return "", err
	}

	return entry, nil
}

// Range returns up to count entries, newest first, skipping start entries
func (r *ListRepo) Range(ctx context.Context, userID int64, start, count int) ([]string, error) {
	if count <= 0 || start < 0 {
		return []string{}, nil
	}

	query := `
		SELECT entry
		FROM place_entries
		WHERE user_id = $1
		ORDER BY id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, userID, count, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []string{}
	for rows.Next() {
		var entry string
		if err := rows.Scan(&entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Length returns number of entries stored for user
func (r *ListRepo) Length(ctx context.Context, userID int64) (int, error) {
	query := `SELECT COUNT(*) FROM place_entries WHERE user_id = $1`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&count)
	return count, err
}

// Delete removes all entries of the user
func (r *ListRepo) Delete(ctx context.Context, userID int64) error {
	query := `DELETE FROM place_entries WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

// Ping checks database connection
func (r *ListRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
