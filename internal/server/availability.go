package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"courtly/internal/api"
	"courtly/internal/metrics"
	"courtly/internal/schedule"
)

// AvailabilityGrid godoc
// @Summary      Availability grid for a date
// @Description  Returns the free/busy grid for every available court, one row per court with fixed-size time blocks.
// @Tags         availability
// @Produce      json
// @Param        date query string true "Date (YYYY-MM-DD)"
// @Param        courtId query int false "Restrict to a single court"
// @Param        capacity query int false "Restrict to courts with this capacity"
// @Param        page query int false "Page number (default 1)"
// @Param        pageSize query int false "Courts per page (default 20)"
// @Success      200 {object} schedule.Grid
// @Failure      400 {object} api.ErrorResponse
// @Router       /availability [get]
func AvailabilityGrid(builder *schedule.GridBuilder) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Query("date")
		if date == "" {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "date is required"})
			return
		}

		var filter schedule.GridFilter
		if raw := c.Query("courtId"); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid courtId"})
				return
			}
			filter.CourtID = &id
		}
		if raw := c.Query("capacity"); raw != "" {
			capacity, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid capacity"})
				return
			}
			filter.Capacity = &capacity
		}
		if raw := c.Query("page"); raw != "" {
			filter.Page, _ = strconv.Atoi(raw)
		}
		if raw := c.Query("pageSize"); raw != "" {
			filter.PageSize, _ = strconv.Atoi(raw)
		}

		grid, err := builder.Build(c.Request.Context(), date, filter)
		if err != nil {
			if schedule.IsValidationError(err) {
				c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
			return
		}

		metrics.RecordAvailabilityRequest()
		c.JSON(http.StatusOK, grid)
	}
}
