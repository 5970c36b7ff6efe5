package training

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"courtly/internal/logger"
	"courtly/internal/metrics"
	"courtly/internal/schedule"
)

var (
	ErrSessionNotFound        = errors.New("training session not found")
	ErrMissingCourtOrLocation = errors.New("a session requires a court or an off-site location")
	ErrNotCoach               = errors.New("only the owning coach may modify a session")
)

type Service interface {
	Create(ctx context.Context, coachID int, req CreateSessionRequest) (*TrainingSession, error)
	Update(ctx context.Context, coachID, id int, req UpdateSessionRequest) (*TrainingSession, error)
	Delete(ctx context.Context, coachID, id int) error
	GetByID(ctx context.Context, id int) (*TrainingSession, error)
	ListByDate(ctx context.Context, date string) ([]TrainingSession, error)
	ListByCoach(ctx context.Context, coachID int) ([]TrainingSession, error)
}

type service struct {
	repo   Repository
	booker *schedule.Booker
}

func NewService(repo Repository, booker *schedule.Booker) Service {
	return &service{repo: repo, booker: booker}
}

func (s *service) Create(ctx context.Context, coachID int, req CreateSessionRequest) (*TrainingSession, error) {
	w, err := schedule.NewTimeWindow(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if req.CourtID == nil && req.Location == nil {
		return nil, ErrMissingCourtOrLocation
	}

	session := &TrainingSession{
		CourtID:   req.CourtID,
		Location:  req.Location,
		CoachID:   coachID,
		GroupName: req.GroupName,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	cand := schedule.Candidate{
		Kind:    schedule.KindSession,
		CourtID: req.CourtID,
		Window:  w,
	}

	var created *TrainingSession
	decision, err := s.booker.Book(ctx, cand, func(tx *sqlx.Tx) error {
		var txErr error
		created, txErr = s.repo.CreateTx(ctx, tx, session)
		return txErr
	})
	if err != nil {
		metrics.RecordBooking(string(schedule.KindSession), "error")
		return nil, err
	}
	if !decision.OK {
		metrics.RecordBooking(string(schedule.KindSession), "conflict")
		metrics.RecordConflict(string(schedule.KindSession), string(decision.Conflict.BlockingKind))
		return nil, decision.Conflict
	}

	metrics.RecordBooking(string(schedule.KindSession), "created")
	logger.Info("training session created",
		"session_id", created.ID,
		"group", created.GroupName,
		"window", w.String(),
	)

	return created, nil
}

func (s *service) Update(ctx context.Context, coachID, id int, req UpdateSessionRequest) (*TrainingSession, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	if existing.CoachID != coachID {
		return nil, ErrNotCoach
	}

	w, err := schedule.NewTimeWindow(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if req.CourtID == nil && req.Location == nil {
		return nil, ErrMissingCourtOrLocation
	}

	updated := &TrainingSession{
		ID:        id,
		CourtID:   req.CourtID,
		Location:  req.Location,
		CoachID:   existing.CoachID,
		GroupName: req.GroupName,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	// Only a changed court/date/window needs re-validation; edits to
	// non-temporal fields skip the conflict check entirely.
	if !scheduleChanged(existing, updated) {
		return s.repo.Update(ctx, updated)
	}

	cand := schedule.Candidate{
		Kind:      schedule.KindSession,
		CourtID:   req.CourtID,
		Window:    w,
		ExcludeID: id,
	}

	var result *TrainingSession
	decision, err := s.booker.Book(ctx, cand, func(tx *sqlx.Tx) error {
		var txErr error
		result, txErr = s.repo.UpdateTx(ctx, tx, updated)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	if !decision.OK {
		metrics.RecordConflict(string(schedule.KindSession), string(decision.Conflict.BlockingKind))
		return nil, decision.Conflict
	}

	return result, nil
}

func scheduleChanged(old, new *TrainingSession) bool {
	oldCourt, newCourt := 0, 0
	if old.CourtID != nil {
		oldCourt = *old.CourtID
	}
	if new.CourtID != nil {
		newCourt = *new.CourtID
	}
	return oldCourt != newCourt ||
		old.Date != new.Date ||
		old.StartTime != new.StartTime ||
		old.EndTime != new.EndTime
}

func (s *service) Delete(ctx context.Context, coachID, id int) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ErrSessionNotFound
	}
	if existing.CoachID != coachID {
		return ErrNotCoach
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) GetByID(ctx context.Context, id int) (*TrainingSession, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *service) ListByDate(ctx context.Context, date string) ([]TrainingSession, error) {
	if !schedule.ValidDate(date) {
		return nil, schedule.ErrInvalidDate
	}
	return s.repo.ListByDate(ctx, date)
}

func (s *service) ListByCoach(ctx context.Context, coachID int) ([]TrainingSession, error) {
	return s.repo.ListByCoach(ctx, coachID)
}
