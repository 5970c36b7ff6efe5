package reservation

import (
	"context"

	"github.com/jmoiron/sqlx"

	"courtly/internal/schedule"
)

type Repository interface {
	schedule.EventSource

	CreateTx(ctx context.Context, tx *sqlx.Tx, r *Reservation, participantIDs []int) (*Reservation, error)
	GetByID(ctx context.Context, id int) (*Reservation, error)
	UpdateStatus(ctx context.Context, id int, from []string, to string) (*Reservation, error)
	ListByOwner(ctx context.Context, ownerID int) ([]Reservation, error)
	ListByCourtAndDate(ctx context.Context, courtID int, date string) ([]Reservation, error)
	ParticipantIDs(ctx context.Context, reservationID int) ([]int, error)
	CountUsersTx(ctx context.Context, tx *sqlx.Tx, userIDs []int) (int, error)
}
