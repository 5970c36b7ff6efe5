package reservation

import (
	"time"

	"courtly/internal/schedule"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
	StatusExpired   = "expired"
)

// Reservation is an ad-hoc booking of a division court by a student group.
// Only pending and approved rows occupy the court for conflict purposes.
type Reservation struct {
	ID        int       `db:"id" json:"id"`
	CourtID   int       `db:"court_id" json:"court_id"`
	OwnerID   int       `db:"owner_id" json:"owner_id"`
	Date      string    `db:"date" json:"date"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func (r *Reservation) Window() schedule.TimeWindow {
	return schedule.TimeWindow{Date: r.Date, Start: r.StartTime, End: r.EndTime}
}

type Participant struct {
	ReservationID int `db:"reservation_id" json:"reservation_id"`
	UserID        int `db:"user_id" json:"user_id"`
}

type CreateReservationRequest struct {
	CourtID        int    `json:"court_id" binding:"required"`
	Date           string `json:"date" binding:"required"`
	StartTime      string `json:"start_time" binding:"required"`
	EndTime        string `json:"end_time" binding:"required"`
	ParticipantIDs []int  `json:"participant_ids" binding:"required"`
}

type ReservationResponse struct {
	Reservation  *Reservation `json:"reservation"`
	Participants []int        `json:"participants"`
}
