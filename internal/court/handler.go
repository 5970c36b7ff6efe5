package court

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateCourt godoc
// @Summary      Create court
// @Description  Registers a new bookable court. Admin only.
// @Tags         courts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateCourtRequest  true  "Court data"
// @Success      201      {object}  Court
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /admin/courts [post]
func (h *Handler) CreateCourt(c *gin.Context) {
	var req CreateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	court, err := h.service.CreateCourt(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create court"})
		return
	}

	c.JSON(http.StatusCreated, court)
}

// ListCourts godoc
// @Summary      List courts
// @Description  Returns courts, optionally only the bookable ones.
// @Tags         courts
// @Security     BearerAuth
// @Produce      json
// @Param        available  query     bool  false  "Only available courts"
// @Success      200        {array}   Court
// @Failure      500        {object}  gin.H
// @Router       /courts [get]
func (h *Handler) ListCourts(c *gin.Context) {
	onlyAvailable := c.Query("available") == "true"

	courts, err := h.service.ListCourts(c.Request.Context(), onlyAvailable)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch courts"})
		return
	}

	c.JSON(http.StatusOK, courts)
}

// GetCourt godoc
// @Summary      Get court
// @Tags         courts
// @Security     BearerAuth
// @Produce      json
// @Param        courtID  path      int  true  "Court ID"
// @Success      200      {object}  Court
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /courts/{courtID} [get]
func (h *Handler) GetCourt(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("courtID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid court ID"})
		return
	}

	court, err := h.service.GetCourtByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Court not found"})
		return
	}

	c.JSON(http.StatusOK, court)
}

// UpdateCourtStatus godoc
// @Summary      Update court status
// @Description  Sets a court to available, maintenance or out_of_service. Admin only.
// @Tags         courts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        courtID  path      int                       true  "Court ID"
// @Param        request  body      UpdateCourtStatusRequest  true  "New status"
// @Success      200      {object}  Court
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /admin/courts/{courtID}/status [put]
func (h *Handler) UpdateCourtStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("courtID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid court ID"})
		return
	}

	var req UpdateCourtStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	court, err := h.service.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrCourtNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Court not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update court"})
		return
	}

	c.JSON(http.StatusOK, court)
}
