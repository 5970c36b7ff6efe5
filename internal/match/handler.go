package match

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"courtly/internal/api"
	"courtly/internal/schedule"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ScheduleMatch godoc
// @Summary Schedule a championship match
// @Tags matches
// @Accept json
// @Produce json
// @Param request body ScheduleMatchRequest true "Match data"
// @Success 201 {object} ChampionshipMatch
// @Failure 400 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse
// @Router /matches [post]
func (h *Handler) ScheduleMatch(c *gin.Context) {
	var req ScheduleMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	m, err := h.service.Schedule(c.Request.Context(), req)
	if err != nil {
		respondMatchError(c, err)
		return
	}

	c.JSON(http.StatusCreated, m)
}

// RescheduleMatch godoc
// @Summary Move a scheduled match to a new court or window
// @Tags matches
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param request body RescheduleMatchRequest true "New placement"
// @Success 200 {object} ChampionshipMatch
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse
// @Router /matches/{id}/reschedule [put]
func (h *Handler) RescheduleMatch(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid match id"})
		return
	}

	var req RescheduleMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	m, err := h.service.Reschedule(c.Request.Context(), id, req)
	if err != nil {
		respondMatchError(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

// UpdateMatchStatus godoc
// @Summary Update a match status
// @Tags matches
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param request body UpdateMatchStatusRequest true "New status"
// @Success 200 {object} ChampionshipMatch
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Failure 422 {object} api.ErrorResponse
// @Router /matches/{id}/status [put]
func (h *Handler) UpdateMatchStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid match id"})
		return
	}

	var req UpdateMatchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	m, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondMatchError(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

// GetMatch godoc
// @Summary Get a match by ID
// @Tags matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} ChampionshipMatch
// @Failure 404 {object} api.ErrorResponse
// @Router /matches/{id} [get]
func (h *Handler) GetMatch(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid match id"})
		return
	}

	m, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, m)
}

// ListMatches godoc
// @Summary List matches by championship or date
// @Tags matches
// @Produce json
// @Param championshipId query int false "Championship ID"
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {array} ChampionshipMatch
// @Failure 400 {object} api.ErrorResponse
// @Router /matches [get]
func (h *Handler) ListMatches(c *gin.Context) {
	if raw := c.Query("championshipId"); raw != "" {
		championshipID, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid championship id"})
			return
		}
		matches, err := h.service.ListByChampionship(c.Request.Context(), championshipID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, matches)
		return
	}

	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "championshipId or date is required"})
		return
	}

	matches, err := h.service.ListByDate(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, matches)
}

func respondMatchError(c *gin.Context, err error) {
	var conflict *schedule.ConflictError

	switch {
	case schedule.IsValidationError(err):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrMatchNotFound), errors.Is(err, schedule.ErrCourtNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrNotReschedulable):
		c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, schedule.ErrCourtUnavailable):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: conflict.Error()})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
	}
}
