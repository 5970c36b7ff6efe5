package training

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"courtly/internal/api"
	"courtly/internal/auth"
	"courtly/internal/schedule"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateSession godoc
// @Summary Schedule a training session
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body CreateSessionRequest true "Session data"
// @Success 201 {object} TrainingSession
// @Failure 400 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse
// @Router /sessions [post]
func (h *Handler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	coachID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	session, err := h.service.Create(c.Request.Context(), coachID, req)
	if err != nil {
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// UpdateSession godoc
// @Summary Update a training session
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path int true "Session ID"
// @Param request body UpdateSessionRequest true "Session data"
// @Success 200 {object} TrainingSession
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse
// @Router /sessions/{id} [put]
func (h *Handler) UpdateSession(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid session id"})
		return
	}

	var req UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	coachID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	session, err := h.service.Update(c.Request.Context(), coachID, id, req)
	if err != nil {
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// DeleteSession godoc
// @Summary Delete a training session
// @Tags sessions
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {object} api.MessageResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /sessions/{id} [delete]
func (h *Handler) DeleteSession(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid session id"})
		return
	}

	coachID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), coachID, id); err != nil {
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "session deleted"})
}

// GetSession godoc
// @Summary Get a training session by ID
// @Tags sessions
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {object} TrainingSession
// @Failure 404 {object} api.ErrorResponse
// @Router /sessions/{id} [get]
func (h *Handler) GetSession(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid session id"})
		return
	}

	session, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, session)
}

// ListSessions godoc
// @Summary List training sessions for a date
// @Tags sessions
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} TrainingSession
// @Failure 400 {object} api.ErrorResponse
// @Router /sessions [get]
func (h *Handler) ListSessions(c *gin.Context) {
	date := c.Query("date")
	if date != "" {
		sessions, err := h.service.ListByDate(c.Request.Context(), date)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, sessions)
		return
	}

	coachID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	sessions, err := h.service.ListByCoach(c.Request.Context(), coachID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func respondSessionError(c *gin.Context, err error) {
	var conflict *schedule.ConflictError

	switch {
	case schedule.IsValidationError(err), errors.Is(err, ErrMissingCourtOrLocation):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, schedule.ErrCourtNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrNotCoach):
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, schedule.ErrCourtUnavailable),
		errors.Is(err, schedule.ErrSessionOffPrincipal),
		errors.Is(err, schedule.ErrReservationOnPrincipal):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: conflict.Error()})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
	}
}
