package training

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"courtly/internal/schedule"
)

const sessionColumns = `
	id, court_id, location, coach_id, group_name, date::text AS date,
	to_char(start_time, 'HH24:MI') AS start_time,
	to_char(end_time, 'HH24:MI') AS end_time,
	created_at
`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateTx(ctx context.Context, tx *sqlx.Tx, s *TrainingSession) (*TrainingSession, error) {
	query := `
		INSERT INTO training_sessions (court_id, location, coach_id, group_name, date, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + sessionColumns

	var created TrainingSession
	err := tx.GetContext(ctx, &created, query,
		s.CourtID, s.Location, s.CoachID, s.GroupName, s.Date, s.StartTime, s.EndTime)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

const updateSessionQuery = `
	UPDATE training_sessions
	SET court_id = $2, location = $3, group_name = $4, date = $5, start_time = $6, end_time = $7
	WHERE id = $1
	RETURNING ` + sessionColumns

func (r *repository) UpdateTx(ctx context.Context, tx *sqlx.Tx, s *TrainingSession) (*TrainingSession, error) {
	var updated TrainingSession
	err := tx.GetContext(ctx, &updated, updateSessionQuery,
		s.ID, s.CourtID, s.Location, s.GroupName, s.Date, s.StartTime, s.EndTime)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *repository) Update(ctx context.Context, s *TrainingSession) (*TrainingSession, error) {
	var updated TrainingSession
	err := r.db.GetContext(ctx, &updated, updateSessionQuery,
		s.ID, s.CourtID, s.Location, s.GroupName, s.Date, s.StartTime, s.EndTime)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*TrainingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM training_sessions WHERE id = $1`

	var s TrainingSession
	err := r.db.GetContext(ctx, &s, query, id)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM training_sessions WHERE id = $1`, id)
	return err
}

func (r *repository) ListByDate(ctx context.Context, date string) ([]TrainingSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM training_sessions
		WHERE date = $1
		ORDER BY start_time ASC
	`

	var sessions []TrainingSession
	err := r.db.SelectContext(ctx, &sessions, query, date)
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *repository) ListByCoach(ctx context.Context, coachID int) ([]TrainingSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM training_sessions
		WHERE coach_id = $1
		ORDER BY date DESC, start_time DESC
	`

	var sessions []TrainingSession
	err := r.db.SelectContext(ctx, &sessions, query, coachID)
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

// ── schedule.EventSource ──

// Off-site sessions have a null court_id and are excluded by the ANY filter.
const activeSessionsQuery = `
	SELECT id, court_id, date::text AS date,
	       to_char(start_time, 'HH24:MI') AS start_time,
	       to_char(end_time, 'HH24:MI') AS end_time
	FROM training_sessions
	WHERE court_id = ANY($1) AND date = $2
`

type eventRow struct {
	ID        int    `db:"id"`
	CourtID   int    `db:"court_id"`
	Date      string `db:"date"`
	StartTime string `db:"start_time"`
	EndTime   string `db:"end_time"`
}

func (r *repository) Kind() schedule.Kind {
	return schedule.KindSession
}

func (r *repository) FindActive(ctx context.Context, courtIDs []int, date string) ([]schedule.Event, error) {
	var rows []eventRow
	err := r.db.SelectContext(ctx, &rows, activeSessionsQuery, pq.Array(courtIDs), date)
	if err != nil {
		return nil, err
	}
	return toEvents(rows), nil
}

func (r *repository) FindActiveForUpdate(ctx context.Context, tx *sqlx.Tx, courtIDs []int, date string) ([]schedule.Event, error) {
	var rows []eventRow
	err := tx.SelectContext(ctx, &rows, activeSessionsQuery+" FOR UPDATE", pq.Array(courtIDs), date)
	if err != nil {
		return nil, err
	}
	return toEvents(rows), nil
}

func toEvents(rows []eventRow) []schedule.Event {
	events := make([]schedule.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, schedule.Event{
			Kind:    schedule.KindSession,
			ID:      row.ID,
			CourtID: row.CourtID,
			Window:  schedule.TimeWindow{Date: row.Date, Start: row.StartTime, End: row.EndTime},
		})
	}
	return events
}
