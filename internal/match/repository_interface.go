package match

import (
	"context"

	"github.com/jmoiron/sqlx"

	"courtly/internal/schedule"
)

type Repository interface {
	schedule.EventSource

	CreateTx(ctx context.Context, tx *sqlx.Tx, m *ChampionshipMatch) (*ChampionshipMatch, error)
	RescheduleTx(ctx context.Context, tx *sqlx.Tx, m *ChampionshipMatch) (*ChampionshipMatch, error)
	GetByID(ctx context.Context, id int) (*ChampionshipMatch, error)
	UpdateStatus(ctx context.Context, id int, from []string, to string) (*ChampionshipMatch, error)
	ListByChampionship(ctx context.Context, championshipID int) ([]ChampionshipMatch, error)
	ListByDate(ctx context.Context, date string) ([]ChampionshipMatch, error)
}
