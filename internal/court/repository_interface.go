package court

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Create(ctx context.Context, name string, maxCapacity int) (*Court, error)
	GetByID(ctx context.Context, id int) (*Court, error)
	ListAll(ctx context.Context) ([]Court, error)
	ListAvailable(ctx context.Context) ([]Court, error)
	UpdateStatus(ctx context.Context, id int, status string) (*Court, error)
	LockTx(ctx context.Context, tx *sqlx.Tx, ids []int) error
}
