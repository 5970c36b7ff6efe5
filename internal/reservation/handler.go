package reservation

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"courtly/internal/auth"
	"courtly/internal/schedule"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateReservation godoc
// @Summary      Create reservation
// @Description  Books a division court for the requested window. The slot is validated under lock; on conflict the blocking event is named.
// @Tags         reservations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateReservationRequest  true  "Reservation data"
// @Success      201      {object}  Reservation
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Failure      422      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /reservations [post]
func (h *Handler) CreateReservation(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

// CheckAvailability godoc
// @Summary      Check reservation availability
// @Description  Advisory check whether a window is free. Re-validated at booking time.
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        court_id    query     int     true  "Court ID"
// @Param        date        query     string  true  "Date (YYYY-MM-DD)"
// @Param        start_time  query     string  true  "Start (HH:MM)"
// @Param        end_time    query     string  true  "End (HH:MM)"
// @Success      200         {object}  api.AvailabilityResponse
// @Failure      400         {object}  gin.H
// @Router       /reservations/check [get]
func (h *Handler) CheckAvailability(c *gin.Context) {
	courtID, err := strconv.Atoi(c.Query("court_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid court ID"})
		return
	}

	decision, err := h.service.CheckAvailability(c.Request.Context(),
		courtID, c.Query("date"), c.Query("start_time"), c.Query("end_time"))
	if err != nil {
		respondBookingError(c, err)
		return
	}

	var reason *string
	if !decision.OK {
		reason = &decision.Reason
	}
	c.JSON(http.StatusOK, gin.H{"available": decision.OK, "reason": reason})
}

// ApproveReservation godoc
// @Summary      Approve reservation
// @Description  Staff approval of a pending reservation. Admin only.
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        reservationID  path      int  true  "Reservation ID"
// @Success      200            {object}  Reservation
// @Failure      400            {object}  gin.H
// @Failure      404            {object}  gin.H
// @Router       /admin/reservations/{reservationID}/approve [post]
func (h *Handler) ApproveReservation(c *gin.Context) {
	h.decide(c, h.service.Approve)
}

// RejectReservation godoc
// @Summary      Reject reservation
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        reservationID  path      int  true  "Reservation ID"
// @Success      200            {object}  Reservation
// @Failure      400            {object}  gin.H
// @Failure      404            {object}  gin.H
// @Router       /admin/reservations/{reservationID}/reject [post]
func (h *Handler) RejectReservation(c *gin.Context) {
	h.decide(c, h.service.Reject)
}

func (h *Handler) decide(c *gin.Context, action func(ctx context.Context, id int) (*Reservation, error)) {
	id, err := strconv.Atoi(c.Param("reservationID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
		return
	}

	res, err := action(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		case errors.Is(err, ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Reservation is not pending"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reservation"})
		}
		return
	}

	c.JSON(http.StatusOK, res)
}

// CancelReservation godoc
// @Summary      Cancel reservation
// @Description  Owner cancellation, allowed up to 24 hours before start.
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        reservationID  path      int  true  "Reservation ID"
// @Success      200            {object}  Reservation
// @Failure      400            {object}  gin.H
// @Failure      403            {object}  gin.H
// @Failure      404            {object}  gin.H
// @Router       /reservations/{reservationID}/cancel [post]
func (h *Handler) CancelReservation(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("reservationID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
		return
	}

	res, err := h.service.Cancel(c.Request.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only cancel your own reservations"})
		case errors.Is(err, ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Reservation cannot be cancelled in its current status"})
		case errors.Is(err, ErrCancelTooLate):
			c.JSON(http.StatusBadRequest, gin.H{"error": ErrCancelTooLate.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel reservation"})
		}
		return
	}

	c.JSON(http.StatusOK, res)
}

// GetReservation godoc
// @Summary      Get reservation
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        reservationID  path      int  true  "Reservation ID"
// @Success      200            {object}  ReservationResponse
// @Failure      404            {object}  gin.H
// @Router       /reservations/{reservationID} [get]
func (h *Handler) GetReservation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("reservationID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
		return
	}

	res, participants, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		return
	}

	c.JSON(http.StatusOK, ReservationResponse{Reservation: res, Participants: participants})
}

// ListMyReservations godoc
// @Summary      List my reservations
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Reservation
// @Failure      500  {object}  gin.H
// @Router       /reservations [get]
func (h *Handler) ListMyReservations(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	reservations, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reservations"})
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// ListReservationsByCourt godoc
// @Summary      List reservations by court and date
// @Description  Admin view of a court's reservations for one day.
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        courtID  path      int     true  "Court ID"
// @Param        date     query     string  true  "Date (YYYY-MM-DD)"
// @Success      200      {array}   Reservation
// @Failure      400      {object}  gin.H
// @Router       /admin/courts/{courtID}/reservations [get]
func (h *Handler) ListReservationsByCourt(c *gin.Context) {
	courtID, err := strconv.Atoi(c.Param("courtID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid court ID"})
		return
	}

	reservations, err := h.service.ListByCourtAndDate(c.Request.Context(), courtID, c.Query("date"))
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": schedule.ErrInvalidDate.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reservations"})
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// respondBookingError maps engine failures onto HTTP statuses without
// leaking storage detail.
func respondBookingError(c *gin.Context, err error) {
	var conflict *schedule.ConflictError

	switch {
	case schedule.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, schedule.ErrCourtNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, schedule.ErrCourtUnavailable),
		errors.Is(err, schedule.ErrReservationOnPrincipal),
		errors.Is(err, schedule.ErrSessionOffPrincipal):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Error()})
	case errors.Is(err, ErrDuplicateParticipants),
		errors.Is(err, ErrUnknownParticipants),
		errors.Is(err, ErrParticipantCount):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process booking"})
	}
}
