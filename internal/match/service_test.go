package match

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"courtly/internal/court"
	"courtly/internal/schedule"
)

type MockMatchRepo struct{ mock.Mock }

func (m *MockMatchRepo) Kind() schedule.Kind { return schedule.KindMatch }

func (m *MockMatchRepo) FindActive(ctx context.Context, courtIDs []int, date string) ([]schedule.Event, error) {
	args := m.Called(ctx, courtIDs, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schedule.Event), args.Error(1)
}

func (m *MockMatchRepo) FindActiveForUpdate(ctx context.Context, tx *sqlx.Tx, courtIDs []int, date string) ([]schedule.Event, error) {
	args := m.Called(ctx, tx, courtIDs, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schedule.Event), args.Error(1)
}

func (m *MockMatchRepo) CreateTx(ctx context.Context, tx *sqlx.Tx, match *ChampionshipMatch) (*ChampionshipMatch, error) {
	args := m.Called(ctx, tx, match)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ChampionshipMatch), args.Error(1)
}

func (m *MockMatchRepo) RescheduleTx(ctx context.Context, tx *sqlx.Tx, match *ChampionshipMatch) (*ChampionshipMatch, error) {
	args := m.Called(ctx, tx, match)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ChampionshipMatch), args.Error(1)
}

func (m *MockMatchRepo) GetByID(ctx context.Context, id int) (*ChampionshipMatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ChampionshipMatch), args.Error(1)
}

func (m *MockMatchRepo) UpdateStatus(ctx context.Context, id int, from []string, to string) (*ChampionshipMatch, error) {
	args := m.Called(ctx, id, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ChampionshipMatch), args.Error(1)
}

func (m *MockMatchRepo) ListByChampionship(ctx context.Context, championshipID int) ([]ChampionshipMatch, error) {
	args := m.Called(ctx, championshipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ChampionshipMatch), args.Error(1)
}

func (m *MockMatchRepo) ListByDate(ctx context.Context, date string) ([]ChampionshipMatch, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ChampionshipMatch), args.Error(1)
}

type MockCourtRepo struct{ mock.Mock }

func (m *MockCourtRepo) Create(ctx context.Context, name string, maxCapacity int) (*court.Court, error) {
	args := m.Called(ctx, name, maxCapacity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*court.Court), args.Error(1)
}

func (m *MockCourtRepo) GetByID(ctx context.Context, id int) (*court.Court, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*court.Court), args.Error(1)
}

func (m *MockCourtRepo) ListAll(ctx context.Context) ([]court.Court, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]court.Court), args.Error(1)
}

func (m *MockCourtRepo) ListAvailable(ctx context.Context) ([]court.Court, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]court.Court), args.Error(1)
}

func (m *MockCourtRepo) UpdateStatus(ctx context.Context, id int, status string) (*court.Court, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*court.Court), args.Error(1)
}

func (m *MockCourtRepo) LockTx(ctx context.Context, tx *sqlx.Tx, ids []int) error {
	args := m.Called(ctx, tx, ids)
	return args.Error(0)
}

type matchFixture struct {
	svc     Service
	repo    *MockMatchRepo
	sqlMock sqlmock.Sqlmock
	close   func()
}

func newFixture(t *testing.T) *matchFixture {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "sqlmock")

	repo := new(MockMatchRepo)
	courts := new(MockCourtRepo)

	principal := court.Court{ID: 1, Name: "Main Arena", MaxCapacity: 64, Status: court.StatusAvailable}
	division := court.Court{ID: 2, Name: "Division 1", MaxCapacity: 20, Status: court.StatusAvailable}
	courts.On("GetByID", mock.Anything, 1).Return(&principal, nil).Maybe()
	courts.On("GetByID", mock.Anything, 2).Return(&division, nil).Maybe()
	courts.On("ListAvailable", mock.Anything).Return([]court.Court{principal, division}, nil).Maybe()
	courts.On("LockTx", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	resolver := court.NewResolver(courts, 64)
	checker := schedule.NewChecker(courts, resolver, repo)
	booker := schedule.NewBooker(sqlxDB, checker)

	return &matchFixture{
		svc:     NewService(repo, booker),
		repo:    repo,
		sqlMock: sqlMock,
		close:   func() { sqlxDB.Close() },
	}
}

func scheduledMatch(id int) *ChampionshipMatch {
	return &ChampionshipMatch{ID: id, ChampionshipID: 3, CourtID: 2, HomeTeam: "Reds", AwayTeam: "Blues",
		Date: "2025-06-10", StartTime: "09:00", EndTime: "10:00", Status: StatusScheduled}
}

func TestScheduleMatch(t *testing.T) {
	f := newFixture(t)
	defer f.close()

	f.sqlMock.ExpectBegin()
	f.sqlMock.ExpectCommit()

	// Division match checks its own and the principal's matches.
	f.repo.On("FindActiveForUpdate", mock.Anything, mock.Anything, []int{1, 2}, "2025-06-10").
		Return([]schedule.Event{}, nil)
	f.repo.On("CreateTx", mock.Anything, mock.Anything, mock.Anything).Return(scheduledMatch(5), nil)

	got, err := f.svc.Schedule(context.Background(), ScheduleMatchRequest{
		ChampionshipID: 3,
		CourtID:        2,
		HomeTeam:       "Reds",
		AwayTeam:       "Blues",
		Date:           "2025-06-10",
		StartTime:      "09:00",
		EndTime:        "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusScheduled, got.Status)
	assert.NoError(t, f.sqlMock.ExpectationsWereMet())
}

func TestScheduleMatchConflict(t *testing.T) {
	f := newFixture(t)
	defer f.close()

	f.sqlMock.ExpectBegin()
	f.sqlMock.ExpectRollback()

	principalMatch := schedule.Event{Kind: schedule.KindMatch, ID: 8, CourtID: 1,
		Window: schedule.TimeWindow{Date: "2025-06-10", Start: "09:30", End: "11:00"}}
	f.repo.On("FindActiveForUpdate", mock.Anything, mock.Anything, []int{1, 2}, "2025-06-10").
		Return([]schedule.Event{principalMatch}, nil)

	_, err := f.svc.Schedule(context.Background(), ScheduleMatchRequest{
		ChampionshipID: 3,
		CourtID:        2,
		HomeTeam:       "Reds",
		AwayTeam:       "Blues",
		Date:           "2025-06-10",
		StartTime:      "09:00",
		EndTime:        "10:00",
	})
	var conflict *schedule.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, schedule.KindMatch, conflict.BlockingKind)
	assert.Equal(t, "Main Arena", conflict.CourtName)
}

func TestRescheduleOnlyScheduled(t *testing.T) {
	f := newFixture(t)
	defer f.close()

	finished := scheduledMatch(5)
	finished.Status = StatusFinished
	f.repo.On("GetByID", mock.Anything, 5).Return(finished, nil)

	_, err := f.svc.Reschedule(context.Background(), 5, RescheduleMatchRequest{
		CourtID: 2, Date: "2025-06-11", StartTime: "09:00", EndTime: "10:00",
	})
	assert.ErrorIs(t, err, ErrNotReschedulable)
}

func TestRescheduleExcludesOwnRow(t *testing.T) {
	f := newFixture(t)
	defer f.close()

	f.repo.On("GetByID", mock.Anything, 5).Return(scheduledMatch(5), nil)

	f.sqlMock.ExpectBegin()
	f.sqlMock.ExpectCommit()

	own := schedule.Event{Kind: schedule.KindMatch, ID: 5, CourtID: 2,
		Window: schedule.TimeWindow{Date: "2025-06-10", Start: "09:00", End: "10:00"}}
	f.repo.On("FindActiveForUpdate", mock.Anything, mock.Anything, []int{1, 2}, "2025-06-10").
		Return([]schedule.Event{own}, nil)

	moved := scheduledMatch(5)
	moved.StartTime, moved.EndTime = "09:30", "10:30"
	f.repo.On("RescheduleTx", mock.Anything, mock.Anything, mock.Anything).Return(moved, nil)

	got, err := f.svc.Reschedule(context.Background(), 5, RescheduleMatchRequest{
		CourtID: 2, Date: "2025-06-10", StartTime: "09:30", EndTime: "10:30",
	})
	require.NoError(t, err)
	assert.Equal(t, "09:30", got.StartTime)
}

func TestUpdateStatusTransitions(t *testing.T) {
	f := newFixture(t)
	defer f.close()

	inProgress := scheduledMatch(5)
	inProgress.Status = StatusInProgress
	f.repo.On("UpdateStatus", mock.Anything, 5, []string{StatusScheduled}, StatusInProgress).
		Return(inProgress, nil)

	got, err := f.svc.UpdateStatus(context.Background(), 5, StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, got.Status)
}

func TestUpdateStatusInvalidTransition(t *testing.T) {
	f := newFixture(t)
	defer f.close()

	cancelled := scheduledMatch(5)
	cancelled.Status = StatusCancelled
	f.repo.On("UpdateStatus", mock.Anything, 5, []string{StatusScheduled, StatusInProgress}, StatusFinished).
		Return(nil, sql.ErrNoRows)
	f.repo.On("GetByID", mock.Anything, 5).Return(cancelled, nil)

	_, err := f.svc.UpdateStatus(context.Background(), 5, StatusFinished)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatusToScheduledRejected(t *testing.T) {
	f := newFixture(t)
	defer f.close()

	// There is no path back to scheduled.
	_, err := f.svc.UpdateStatus(context.Background(), 5, StatusScheduled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestActive(t *testing.T) {
	m := scheduledMatch(5)
	assert.True(t, m.Active())
	m.Status = StatusInProgress
	assert.True(t, m.Active())
	m.Status = StatusFinished
	assert.False(t, m.Active())
	m.Status = StatusCancelled
	assert.False(t, m.Active())
}
