package training

import (
	"context"

	"github.com/jmoiron/sqlx"

	"courtly/internal/schedule"
)

type Repository interface {
	schedule.EventSource

	CreateTx(ctx context.Context, tx *sqlx.Tx, s *TrainingSession) (*TrainingSession, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, s *TrainingSession) (*TrainingSession, error)
	Update(ctx context.Context, s *TrainingSession) (*TrainingSession, error)
	GetByID(ctx context.Context, id int) (*TrainingSession, error)
	Delete(ctx context.Context, id int) error
	ListByDate(ctx context.Context, date string) ([]TrainingSession, error)
	ListByCoach(ctx context.Context, coachID int) ([]TrainingSession, error)
}
