// Package memo manages image memos: metadata records paired with an object
// stored in the external object store.
package memo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Memo pairs a stored object with its descriptive fields and owner.
// ObjectKey is never serialized: clients address images only through the
// memo id, and the key is immutable once set.
type Memo struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ObjectKey   string    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ErrNotFound is returned when a memo does not exist or is not owned by the
// caller. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("memo not found")

// Repository handles all memo database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts a new memo and returns the created record.
func (r *Repository) Create(ctx context.Context, ownerID, title, description, objectKey string) (*Memo, error) {
	m := &Memo{}
	err := r.db.QueryRow(ctx,
		`INSERT INTO memos (user_id, title, description, object_key)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, user_id, title, description, object_key, created_at, updated_at`,
		ownerID, title, description, objectKey,
	).Scan(&m.ID, &m.OwnerID, &m.Title, &m.Description, &m.ObjectKey, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create memo: %w", err)
	}
	return m, nil
}

// GetByIDAndOwner fetches a memo by id, scoped to its owner. Ownership is
// part of the query predicate, so a wrong owner yields ErrNotFound exactly
// like a nonexistent id.
func (r *Repository) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*Memo, error) {
	m := &Memo{}
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, title, description, object_key, created_at, updated_at
		 FROM memos WHERE id = $1 AND user_id = $2`,
		id, ownerID,
	).Scan(&m.ID, &m.OwnerID, &m.Title, &m.Description, &m.ObjectKey, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get memo: %w", err)
	}
	return m, nil
}

// ListByOwner returns one page of the owner's memos, newest first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]*Memo, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, title, description, object_key, created_at, updated_at
		 FROM memos
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 OFFSET $2 LIMIT $3`,
		ownerID, offset, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list memos: %w", err)
	}
	defer rows.Close()

	memos := []*Memo{}
	for rows.Next() {
		m := &Memo{}
		if err := rows.Scan(&m.ID, &m.OwnerID, &m.Title, &m.Description, &m.ObjectKey, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan memo: %w", err)
		}
		memos = append(memos, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list memos: %w", err)
	}
	return memos, nil
}

// CountByOwner returns the owner's total memo count, for pagination.
func (r *Repository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM memos WHERE user_id = $1`,
		ownerID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count memos: %w", err)
	}
	return count, nil
}

// Delete removes the memo row. The row-level predicate doubles as the
// synchronization point between two concurrent deletes of the same memo:
// whichever commits second sees zero rows affected.
func (r *Repository) Delete(ctx context.Context, id, ownerID string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM memos WHERE id = $1 AND user_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("delete memo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
