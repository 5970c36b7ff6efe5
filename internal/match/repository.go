package match

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"courtly/internal/schedule"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const matchColumns = `id, championship_id, court_id, home_team, away_team,
		date::text AS date,
		to_char(start_time, 'HH24:MI') AS start_time,
		to_char(end_time, 'HH24:MI') AS end_time,
		status, created_at::text AS created_at`

func (r *repository) CreateTx(ctx context.Context, tx *sqlx.Tx, m *ChampionshipMatch) (*ChampionshipMatch, error) {
	query := `
		INSERT INTO championship_matches (championship_id, court_id, home_team, away_team, date, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'scheduled')
		RETURNING ` + matchColumns

	var created ChampionshipMatch
	err := tx.GetContext(ctx, &created, query,
		m.ChampionshipID, m.CourtID, m.HomeTeam, m.AwayTeam, m.Date, m.StartTime, m.EndTime)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *repository) RescheduleTx(ctx context.Context, tx *sqlx.Tx, m *ChampionshipMatch) (*ChampionshipMatch, error) {
	query := `
		UPDATE championship_matches
		SET court_id = $2, date = $3, start_time = $4, end_time = $5
		WHERE id = $1 AND status = 'scheduled'
		RETURNING ` + matchColumns

	var updated ChampionshipMatch
	err := tx.GetContext(ctx, &updated, query, m.ID, m.CourtID, m.Date, m.StartTime, m.EndTime)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*ChampionshipMatch, error) {
	query := `SELECT ` + matchColumns + ` FROM championship_matches WHERE id = $1`

	var m ChampionshipMatch
	if err := r.db.GetContext(ctx, &m, query, id); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int, from []string, to string) (*ChampionshipMatch, error) {
	query := `
		UPDATE championship_matches
		SET status = $3
		WHERE id = $1 AND status = ANY($2)
		RETURNING ` + matchColumns

	var updated ChampionshipMatch
	err := r.db.GetContext(ctx, &updated, query, id, pq.Array(from), to)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *repository) ListByChampionship(ctx context.Context, championshipID int) ([]ChampionshipMatch, error) {
	query := `SELECT ` + matchColumns + `
		FROM championship_matches
		WHERE championship_id = $1
		ORDER BY date, start_time`

	matches := []ChampionshipMatch{}
	if err := r.db.SelectContext(ctx, &matches, query, championshipID); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *repository) ListByDate(ctx context.Context, date string) ([]ChampionshipMatch, error) {
	query := `SELECT ` + matchColumns + `
		FROM championship_matches
		WHERE date = $1
		ORDER BY start_time`

	matches := []ChampionshipMatch{}
	if err := r.db.SelectContext(ctx, &matches, query, date); err != nil {
		return nil, err
	}
	return matches, nil
}

// Finished and cancelled matches no longer hold their window.
const activeMatchesQuery = `
	SELECT id, court_id,
		date::text AS date,
		to_char(start_time, 'HH24:MI') AS start_time,
		to_char(end_time, 'HH24:MI') AS end_time
	FROM championship_matches
	WHERE court_id = ANY($1) AND date = $2
	  AND status IN ('scheduled', 'in_progress')`

type eventRow struct {
	ID        int    `db:"id"`
	CourtID   int    `db:"court_id"`
	Date      string `db:"date"`
	StartTime string `db:"start_time"`
	EndTime   string `db:"end_time"`
}

func toEvents(rows []eventRow) []schedule.Event {
	events := make([]schedule.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, schedule.Event{
			Kind:    schedule.KindMatch,
			ID:      row.ID,
			CourtID: row.CourtID,
			Window:  schedule.TimeWindow{Date: row.Date, Start: row.StartTime, End: row.EndTime},
		})
	}
	return events
}

func (r *repository) Kind() schedule.Kind {
	return schedule.KindMatch
}

func (r *repository) FindActive(ctx context.Context, courtIDs []int, date string) ([]schedule.Event, error) {
	rows := []eventRow{}
	if err := r.db.SelectContext(ctx, &rows, activeMatchesQuery, pq.Array(courtIDs), date); err != nil {
		return nil, err
	}
	return toEvents(rows), nil
}

func (r *repository) FindActiveForUpdate(ctx context.Context, tx *sqlx.Tx, courtIDs []int, date string) ([]schedule.Event, error) {
	rows := []eventRow{}
	if err := tx.SelectContext(ctx, &rows, activeMatchesQuery+" FOR UPDATE", pq.Array(courtIDs), date); err != nil {
		return nil, err
	}
	return toEvents(rows), nil
}
