package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"courtly/internal/court"
	"courtly/internal/logger"
	"courtly/internal/metrics"
	"courtly/internal/schedule"
	"courtly/internal/user"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrNotOwner            = errors.New("only the owner may cancel a reservation")
	ErrInvalidTransition   = errors.New("reservation status does not allow this action")
	ErrCancelTooLate       = errors.New("reservations can only be cancelled at least 24 hours before start")

	// Participant cardinality failures roll back the booking transaction.
	ErrDuplicateParticipants = errors.New("participant list contains duplicate users")
	ErrUnknownParticipants   = errors.New("participant list contains unknown users")
	ErrParticipantCount      = errors.New("participant count must equal the court capacity")
)

const cancelCutoff = 24 * time.Hour

// Notifier delivers reservation decision mail; nil-safe wiring is the
// server's concern.
type Notifier interface {
	SendReservationDecision(ctx context.Context, toEmail, toName string, w schedule.TimeWindow, approved bool) error
}

type Service interface {
	CheckAvailability(ctx context.Context, courtID int, date, start, end string) (*schedule.Decision, error)
	Create(ctx context.Context, ownerID int, req CreateReservationRequest) (*Reservation, error)
	Approve(ctx context.Context, id int) (*Reservation, error)
	Reject(ctx context.Context, id int) (*Reservation, error)
	Cancel(ctx context.Context, ownerID, id int) (*Reservation, error)
	GetByID(ctx context.Context, id int) (*Reservation, []int, error)
	ListMine(ctx context.Context, ownerID int) ([]Reservation, error)
	ListByCourtAndDate(ctx context.Context, courtID int, date string) ([]Reservation, error)
}

type service struct {
	repo     Repository
	courts   court.Repository
	users    user.Repository
	checker  *schedule.Checker
	booker   *schedule.Booker
	notifier Notifier
}

func NewService(repo Repository, courts court.Repository, users user.Repository,
	checker *schedule.Checker, booker *schedule.Booker, notifier Notifier) Service {
	return &service{
		repo:     repo,
		courts:   courts,
		users:    users,
		checker:  checker,
		booker:   booker,
		notifier: notifier,
	}
}

// CheckAvailability is the advisory pre-check used by the UI; the result is
// re-validated under lock at booking time.
func (s *service) CheckAvailability(ctx context.Context, courtID int, date, start, end string) (*schedule.Decision, error) {
	w, err := schedule.NewTimeWindow(date, start, end)
	if err != nil {
		return nil, err
	}

	return s.checker.Check(ctx, schedule.Candidate{
		Kind:    schedule.KindReservation,
		CourtID: &courtID,
		Window:  w,
	})
}

func (s *service) Create(ctx context.Context, ownerID int, req CreateReservationRequest) (*Reservation, error) {
	w, err := schedule.NewTimeWindow(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	target, err := s.courts.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, schedule.ErrCourtNotFound
		}
		return nil, fmt.Errorf("fetch court %d: %w", req.CourtID, err)
	}

	res := &Reservation{
		CourtID:   req.CourtID,
		OwnerID:   ownerID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    StatusPending,
	}

	cand := schedule.Candidate{
		Kind:    schedule.KindReservation,
		CourtID: &req.CourtID,
		Window:  w,
	}

	var created *Reservation
	decision, err := s.booker.Book(ctx, cand, func(tx *sqlx.Tx) error {
		if err := s.validateParticipantsTx(ctx, tx, req.ParticipantIDs, target.MaxCapacity); err != nil {
			return err
		}

		var txErr error
		created, txErr = s.repo.CreateTx(ctx, tx, res, req.ParticipantIDs)
		return txErr
	})
	if err != nil {
		metrics.RecordBooking(string(schedule.KindReservation), "error")
		return nil, err
	}
	if !decision.OK {
		metrics.RecordBooking(string(schedule.KindReservation), "conflict")
		metrics.RecordConflict(string(schedule.KindReservation), string(decision.Conflict.BlockingKind))
		return nil, decision.Conflict
	}

	metrics.RecordBooking(string(schedule.KindReservation), "created")
	logger.Info("reservation created",
		"reservation_id", created.ID,
		"court_id", created.CourtID,
		"owner_id", ownerID,
		"window", w.String(),
	)

	return created, nil
}

// validateParticipantsTx enforces the participant invariants inside the
// booking transaction: no duplicates, all users exist, cardinality exactly
// equal to the court capacity.
func (s *service) validateParticipantsTx(ctx context.Context, tx *sqlx.Tx, participantIDs []int, capacity int) error {
	seen := make(map[int]bool, len(participantIDs))
	for _, id := range participantIDs {
		if seen[id] {
			return ErrDuplicateParticipants
		}
		seen[id] = true
	}

	if len(participantIDs) != capacity {
		return ErrParticipantCount
	}

	count, err := s.repo.CountUsersTx(ctx, tx, participantIDs)
	if err != nil {
		return err
	}
	if count != len(participantIDs) {
		return ErrUnknownParticipants
	}

	return nil
}

func (s *service) Approve(ctx context.Context, id int) (*Reservation, error) {
	return s.decide(ctx, id, StatusApproved)
}

func (s *service) Reject(ctx context.Context, id int) (*Reservation, error) {
	return s.decide(ctx, id, StatusRejected)
}

func (s *service) decide(ctx context.Context, id int, to string) (*Reservation, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, ErrReservationNotFound
	}

	res, err := s.repo.UpdateStatus(ctx, id, []string{StatusPending}, to)
	if err != nil {
		return nil, ErrInvalidTransition
	}

	s.notifyDecision(ctx, res, to == StatusApproved)

	return res, nil
}

func (s *service) notifyDecision(ctx context.Context, res *Reservation, approved bool) {
	if s.notifier == nil {
		return
	}

	owner, err := s.users.FindByID(ctx, res.OwnerID)
	if err != nil {
		logger.Error("failed to load reservation owner for notification", "owner_id", res.OwnerID, "error", err)
		return
	}

	if err := s.notifier.SendReservationDecision(ctx, owner.Email, owner.Name, res.Window(), approved); err != nil {
		logger.Error("failed to queue reservation notification", "reservation_id", res.ID, "error", err)
	}
}

func (s *service) Cancel(ctx context.Context, ownerID, id int) (*Reservation, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrReservationNotFound
	}

	if res.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	if res.Status != StatusPending && res.Status != StatusApproved {
		return nil, ErrInvalidTransition
	}

	startsAt, err := res.Window().StartsAt()
	if err != nil {
		return nil, err
	}
	if time.Until(startsAt) < cancelCutoff {
		return nil, ErrCancelTooLate
	}

	cancelled, err := s.repo.UpdateStatus(ctx, id, []string{StatusPending, StatusApproved}, StatusCancelled)
	if err != nil {
		return nil, ErrInvalidTransition
	}

	metrics.RecordReservationCancellation()

	return cancelled, nil
}

func (s *service) GetByID(ctx context.Context, id int) (*Reservation, []int, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, ErrReservationNotFound
	}

	participants, err := s.repo.ParticipantIDs(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return res, participants, nil
}

func (s *service) ListMine(ctx context.Context, ownerID int) ([]Reservation, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *service) ListByCourtAndDate(ctx context.Context, courtID int, date string) ([]Reservation, error) {
	if !schedule.ValidDate(date) {
		return nil, schedule.ErrInvalidDate
	}
	return s.repo.ListByCourtAndDate(ctx, courtID, date)
}
