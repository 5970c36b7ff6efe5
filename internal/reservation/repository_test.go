package reservation

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"courtly/internal/schedule"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, *sqlx.DB, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, sqlxDB, closer
}

func reservationRows(id int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "court_id", "owner_id", "date", "start_time", "end_time", "status", "created_at"}).
		AddRow(id, 2, 10, "2025-06-10", "09:00", "10:00", "pending", time.Now())
}

func TestCreateTx(t *testing.T) {
	repo, mock, sqlxDB, close := setupMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO reservations").
		WithArgs(2, 10, "2025-06-10", "09:00", "10:00").
		WillReturnRows(reservationRows(9))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reservation_participants (reservation_id, user_id)")).
		WithArgs(9, pq.Array([]int{10, 11})).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	tx, err := sqlxDB.Beginx()
	require.NoError(t, err)

	res := &Reservation{CourtID: 2, OwnerID: 10, Date: "2025-06-10", StartTime: "09:00", EndTime: "10:00"}
	created, err := repo.CreateTx(context.Background(), tx, res, []int{10, 11})
	require.NoError(t, err)
	require.Equal(t, 9, created.ID)
	require.Equal(t, "pending", created.Status)

	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	repo, mock, _, close := setupMock(t)
	defer close()

	mock.ExpectQuery("SELECT(.+)FROM reservations WHERE id = \\$1").
		WithArgs(9).
		WillReturnRows(reservationRows(9))

	got, err := repo.GetByID(context.Background(), 9)
	require.NoError(t, err)
	require.Equal(t, 9, got.ID)
	require.Equal(t, "09:00", got.StartTime)
}

func TestUpdateStatus(t *testing.T) {
	repo, mock, _, close := setupMock(t)
	defer close()

	rows := sqlmock.NewRows([]string{"id", "court_id", "owner_id", "date", "start_time", "end_time", "status", "created_at"}).
		AddRow(9, 2, 10, "2025-06-10", "09:00", "10:00", "approved", time.Now())

	mock.ExpectQuery("UPDATE reservations").
		WithArgs(9, pq.Array([]string{"pending"}), "approved").
		WillReturnRows(rows)

	got, err := repo.UpdateStatus(context.Background(), 9, []string{"pending"}, "approved")
	require.NoError(t, err)
	require.Equal(t, "approved", got.Status)
}

func TestFindActive(t *testing.T) {
	repo, mock, _, close := setupMock(t)
	defer close()

	rows := sqlmock.NewRows([]string{"id", "court_id", "date", "start_time", "end_time"}).
		AddRow(9, 2, "2025-06-10", "09:00", "10:00")

	mock.ExpectQuery("SELECT(.+)FROM reservations(.+)status IN \\('pending', 'approved'\\)").
		WithArgs(pq.Array([]int{2, 3}), "2025-06-10").
		WillReturnRows(rows)

	events, err := repo.FindActive(context.Background(), []int{2, 3}, "2025-06-10")
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, schedule.KindReservation, events[0].Kind)
	require.Equal(t, "09:00", events[0].Window.Start)
}

func TestFindActiveForUpdateLocksRows(t *testing.T) {
	repo, mock, sqlxDB, close := setupMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT(.+)FROM reservations(.+)FOR UPDATE").
		WithArgs(pq.Array([]int{2}), "2025-06-10").
		WillReturnRows(sqlmock.NewRows([]string{"id", "court_id", "date", "start_time", "end_time"}))
	mock.ExpectRollback()

	tx, err := sqlxDB.Beginx()
	require.NoError(t, err)

	events, err := repo.FindActiveForUpdate(context.Background(), tx, []int{2}, "2025-06-10")
	require.NoError(t, err)
	require.Empty(t, events)

	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}
