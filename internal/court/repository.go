package court

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrCourtNotFoundOrUnchanged = errors.New("court not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name string, maxCapacity int) (*Court, error) {
	query := `
		INSERT INTO courts (name, max_capacity, status)
		VALUES ($1, $2, 'available')
		RETURNING id, name, max_capacity, status, created_at
	`

	var court Court
	err := r.db.GetContext(ctx, &court, query, name, maxCapacity)
	if err != nil {
		return nil, err
	}

	return &court, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Court, error) {
	query := `
		SELECT id, name, max_capacity, status, created_at
		FROM courts
		WHERE id = $1
	`

	var court Court
	err := r.db.GetContext(ctx, &court, query, id)
	if err != nil {
		return nil, err
	}

	return &court, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Court, error) {
	query := `
		SELECT id, name, max_capacity, status, created_at
		FROM courts
		ORDER BY max_capacity DESC, name ASC
	`

	var courts []Court
	err := r.db.SelectContext(ctx, &courts, query)
	if err != nil {
		return nil, err
	}

	return courts, nil
}

func (r *repository) ListAvailable(ctx context.Context) ([]Court, error) {
	query := `
		SELECT id, name, max_capacity, status, created_at
		FROM courts
		WHERE status = 'available'
		ORDER BY max_capacity DESC, name ASC
	`

	var courts []Court
	err := r.db.SelectContext(ctx, &courts, query)
	if err != nil {
		return nil, err
	}

	return courts, nil
}

// LockTx takes row locks on the given courts inside tx. Ordering by id
// keeps concurrent booking transactions from deadlocking on each other.
func (r *repository) LockTx(ctx context.Context, tx *sqlx.Tx, ids []int) error {
	query := `
		SELECT id
		FROM courts
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE
	`

	var locked []int
	return tx.SelectContext(ctx, &locked, query, pq.Array(ids))
}

func (r *repository) UpdateStatus(ctx context.Context, id int, status string) (*Court, error) {
	query := `
		UPDATE courts
		SET status = $2
		WHERE id = $1
		RETURNING id, name, max_capacity, status, created_at
	`

	var court Court
	err := r.db.GetContext(ctx, &court, query, id, status)
	if err != nil {
		return nil, err
	}

	return &court, nil
}
