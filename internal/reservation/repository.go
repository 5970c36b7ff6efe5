package reservation

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"courtly/internal/schedule"
)

const reservationColumns = `
	id, court_id, owner_id, date::text AS date,
	to_char(start_time, 'HH24:MI') AS start_time,
	to_char(end_time, 'HH24:MI') AS end_time,
	status, created_at
`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateTx(ctx context.Context, tx *sqlx.Tx, res *Reservation, participantIDs []int) (*Reservation, error) {
	query := `
		INSERT INTO reservations (court_id, owner_id, date, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5, 'pending')
		RETURNING ` + reservationColumns

	var created Reservation
	err := tx.GetContext(ctx, &created, query, res.CourtID, res.OwnerID, res.Date, res.StartTime, res.EndTime)
	if err != nil {
		return nil, err
	}

	if len(participantIDs) > 0 {
		participantsQuery := `
			INSERT INTO reservation_participants (reservation_id, user_id)
			SELECT $1, unnest($2::int[])
		`
		if _, err := tx.ExecContext(ctx, participantsQuery, created.ID, pq.Array(participantIDs)); err != nil {
			return nil, err
		}
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	var res Reservation
	err := r.db.GetContext(ctx, &res, query, id)
	if err != nil {
		return nil, err
	}

	return &res, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int, from []string, to string) (*Reservation, error) {
	query := `
		UPDATE reservations
		SET status = $3
		WHERE id = $1 AND status = ANY($2)
		RETURNING ` + reservationColumns

	var res Reservation
	err := r.db.GetContext(ctx, &res, query, id, pq.Array(from), to)
	if err != nil {
		return nil, err
	}

	return &res, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID int) ([]Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE owner_id = $1
		ORDER BY date DESC, start_time DESC
	`

	var reservations []Reservation
	err := r.db.SelectContext(ctx, &reservations, query, ownerID)
	if err != nil {
		return nil, err
	}

	return reservations, nil
}

func (r *repository) ListByCourtAndDate(ctx context.Context, courtID int, date string) ([]Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE court_id = $1 AND date = $2
		ORDER BY start_time ASC
	`

	var reservations []Reservation
	err := r.db.SelectContext(ctx, &reservations, query, courtID, date)
	if err != nil {
		return nil, err
	}

	return reservations, nil
}

func (r *repository) ParticipantIDs(ctx context.Context, reservationID int) ([]int, error) {
	query := `
		SELECT user_id
		FROM reservation_participants
		WHERE reservation_id = $1
		ORDER BY user_id ASC
	`

	var ids []int
	err := r.db.SelectContext(ctx, &ids, query, reservationID)
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *repository) CountUsersTx(ctx context.Context, tx *sqlx.Tx, userIDs []int) (int, error) {
	query := `SELECT COUNT(*) FROM users WHERE id = ANY($1)`

	var count int
	err := tx.GetContext(ctx, &count, query, pq.Array(userIDs))
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Only pending and approved reservations occupy their court.
const activeReservationsQuery = `
	SELECT id, court_id, date::text AS date,
	       to_char(start_time, 'HH24:MI') AS start_time,
	       to_char(end_time, 'HH24:MI') AS end_time
	FROM reservations
	WHERE court_id = ANY($1) AND date = $2 AND status IN ('pending', 'approved')
`

type eventRow struct {
	ID        int    `db:"id"`
	CourtID   int    `db:"court_id"`
	Date      string `db:"date"`
	StartTime string `db:"start_time"`
	EndTime   string `db:"end_time"`
}

func (r *repository) Kind() schedule.Kind {
	return schedule.KindReservation
}

func (r *repository) FindActive(ctx context.Context, courtIDs []int, date string) ([]schedule.Event, error) {
	var rows []eventRow
	err := r.db.SelectContext(ctx, &rows, activeReservationsQuery, pq.Array(courtIDs), date)
	if err != nil {
		return nil, err
	}
	return toEvents(rows), nil
}

func (r *repository) FindActiveForUpdate(ctx context.Context, tx *sqlx.Tx, courtIDs []int, date string) ([]schedule.Event, error) {
	var rows []eventRow
	err := tx.SelectContext(ctx, &rows, activeReservationsQuery+" FOR UPDATE", pq.Array(courtIDs), date)
	if err != nil {
		return nil, err
	}
	return toEvents(rows), nil
}

func toEvents(rows []eventRow) []schedule.Event {
	events := make([]schedule.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, schedule.Event{
			Kind:    schedule.KindReservation,
			ID:      row.ID,
			CourtID: row.CourtID,
			Window:  schedule.TimeWindow{Date: row.Date, Start: row.StartTime, End: row.EndTime},
		})
	}
	return events
}
