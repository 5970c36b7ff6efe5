package training

import (
	"time"

	"courtly/internal/schedule"
)

// TrainingSession is a coach-owned practice block. It either occupies the
// principal court or happens off-site (Location set, CourtID null); there is
// no approval lifecycle, a persisted session occupies its court.
type TrainingSession struct {
	ID        int       `db:"id" json:"id"`
	CourtID   *int      `db:"court_id" json:"court_id"`
	Location  *string   `db:"location" json:"location"`
	CoachID   int       `db:"coach_id" json:"coach_id"`
	GroupName string    `db:"group_name" json:"group_name"`
	Date      string    `db:"date" json:"date"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func (s *TrainingSession) Window() schedule.TimeWindow {
	return schedule.TimeWindow{Date: s.Date, Start: s.StartTime, End: s.EndTime}
}

type CreateSessionRequest struct {
	CourtID   *int    `json:"court_id"`
	Location  *string `json:"location"`
	GroupName string  `json:"group_name" binding:"required"`
	Date      string  `json:"date" binding:"required"`
	StartTime string  `json:"start_time" binding:"required"`
	EndTime   string  `json:"end_time" binding:"required"`
}

type UpdateSessionRequest struct {
	CourtID   *int    `json:"court_id"`
	Location  *string `json:"location"`
	GroupName string  `json:"group_name" binding:"required"`
	Date      string  `json:"date" binding:"required"`
	StartTime string  `json:"start_time" binding:"required"`
	EndTime   string  `json:"end_time" binding:"required"`
}
