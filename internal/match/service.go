package match

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"courtly/internal/logger"
	"courtly/internal/metrics"
	"courtly/internal/schedule"
)

var (
	ErrMatchNotFound     = errors.New("championship match not found")
	ErrInvalidTransition = errors.New("invalid match status transition")
	ErrNotReschedulable  = errors.New("only scheduled matches can be rescheduled")
)

// statusTransitions lists the states each status may move to.
var statusTransitions = map[string][]string{
	StatusInProgress: {StatusScheduled},
	StatusFinished:   {StatusScheduled, StatusInProgress},
	StatusCancelled:  {StatusScheduled, StatusInProgress},
}

type Service interface {
	Schedule(ctx context.Context, req ScheduleMatchRequest) (*ChampionshipMatch, error)
	Reschedule(ctx context.Context, id int, req RescheduleMatchRequest) (*ChampionshipMatch, error)
	UpdateStatus(ctx context.Context, id int, status string) (*ChampionshipMatch, error)
	GetByID(ctx context.Context, id int) (*ChampionshipMatch, error)
	ListByChampionship(ctx context.Context, championshipID int) ([]ChampionshipMatch, error)
	ListByDate(ctx context.Context, date string) ([]ChampionshipMatch, error)
}

type service struct {
	repo   Repository
	booker *schedule.Booker
}

func NewService(repo Repository, booker *schedule.Booker) Service {
	return &service{repo: repo, booker: booker}
}

func (s *service) Schedule(ctx context.Context, req ScheduleMatchRequest) (*ChampionshipMatch, error) {
	w, err := schedule.NewTimeWindow(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	m := &ChampionshipMatch{
		ChampionshipID: req.ChampionshipID,
		CourtID:        req.CourtID,
		HomeTeam:       req.HomeTeam,
		AwayTeam:       req.AwayTeam,
		Date:           req.Date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
	}

	cand := schedule.Candidate{
		Kind:    schedule.KindMatch,
		CourtID: &req.CourtID,
		Window:  w,
	}

	var created *ChampionshipMatch
	decision, err := s.booker.Book(ctx, cand, func(tx *sqlx.Tx) error {
		var txErr error
		created, txErr = s.repo.CreateTx(ctx, tx, m)
		return txErr
	})
	if err != nil {
		metrics.RecordBooking(string(schedule.KindMatch), "error")
		return nil, err
	}
	if !decision.OK {
		metrics.RecordBooking(string(schedule.KindMatch), "conflict")
		metrics.RecordConflict(string(schedule.KindMatch), string(decision.Conflict.BlockingKind))
		return nil, decision.Conflict
	}

	metrics.RecordBooking(string(schedule.KindMatch), "created")
	logger.Info("championship match scheduled",
		"match_id", created.ID,
		"championship_id", created.ChampionshipID,
		"window", w.String(),
	)

	return created, nil
}

func (s *service) Reschedule(ctx context.Context, id int, req RescheduleMatchRequest) (*ChampionshipMatch, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrMatchNotFound
	}
	if existing.Status != StatusScheduled {
		return nil, ErrNotReschedulable
	}

	w, err := schedule.NewTimeWindow(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	cand := schedule.Candidate{
		Kind:      schedule.KindMatch,
		CourtID:   &req.CourtID,
		Window:    w,
		ExcludeID: id,
	}

	moved := &ChampionshipMatch{
		ID:        id,
		CourtID:   req.CourtID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	var result *ChampionshipMatch
	decision, err := s.booker.Book(ctx, cand, func(tx *sqlx.Tx) error {
		var txErr error
		result, txErr = s.repo.RescheduleTx(ctx, tx, moved)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	if !decision.OK {
		metrics.RecordConflict(string(schedule.KindMatch), string(decision.Conflict.BlockingKind))
		return nil, decision.Conflict
	}

	logger.Info("championship match rescheduled", "match_id", id, "window", w.String())
	return result, nil
}

func (s *service) UpdateStatus(ctx context.Context, id int, status string) (*ChampionshipMatch, error) {
	from, ok := statusTransitions[status]
	if !ok {
		return nil, ErrInvalidTransition
	}

	updated, err := s.repo.UpdateStatus(ctx, id, from, status)
	if err != nil {
		if _, getErr := s.repo.GetByID(ctx, id); getErr != nil {
			return nil, ErrMatchNotFound
		}
		return nil, ErrInvalidTransition
	}

	logger.Info("match status updated", "match_id", id, "status", status)
	return updated, nil
}

func (s *service) GetByID(ctx context.Context, id int) (*ChampionshipMatch, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrMatchNotFound
	}
	return m, nil
}

func (s *service) ListByChampionship(ctx context.Context, championshipID int) ([]ChampionshipMatch, error) {
	return s.repo.ListByChampionship(ctx, championshipID)
}

func (s *service) ListByDate(ctx context.Context, date string) ([]ChampionshipMatch, error) {
	if !schedule.ValidDate(date) {
		return nil, schedule.ErrInvalidDate
	}
	return s.repo.ListByDate(ctx, date)
}
