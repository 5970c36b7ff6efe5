package match

import "courtly/internal/schedule"

const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"
	StatusCancelled  = "cancelled"
)

type ChampionshipMatch struct {
	ID             int    `db:"id" json:"id"`
	ChampionshipID int    `db:"championship_id" json:"championship_id"`
	CourtID        int    `db:"court_id" json:"court_id"`
	HomeTeam       string `db:"home_team" json:"home_team"`
	AwayTeam       string `db:"away_team" json:"away_team"`
	Date           string `db:"date" json:"date"`
	StartTime      string `db:"start_time" json:"start_time"`
	EndTime        string `db:"end_time" json:"end_time"`
	Status         string `db:"status" json:"status"`
	CreatedAt      string `db:"created_at" json:"created_at"`
}

func (m *ChampionshipMatch) Window() schedule.TimeWindow {
	return schedule.TimeWindow{Date: m.Date, Start: m.StartTime, End: m.EndTime}
}

// Active reports whether the match still occupies its court. Finished
// and cancelled matches release the window.
func (m *ChampionshipMatch) Active() bool {
	return m.Status == StatusScheduled || m.Status == StatusInProgress
}

type ScheduleMatchRequest struct {
	ChampionshipID int    `json:"championship_id" binding:"required"`
	CourtID        int    `json:"court_id" binding:"required"`
	HomeTeam       string `json:"home_team" binding:"required"`
	AwayTeam       string `json:"away_team" binding:"required"`
	Date           string `json:"date" binding:"required"`
	StartTime      string `json:"start_time" binding:"required"`
	EndTime        string `json:"end_time" binding:"required"`
}

type RescheduleMatchRequest struct {
	CourtID   int    `json:"court_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type UpdateMatchStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=scheduled in_progress finished cancelled"`
}
