package handlers

import (
	"errors"
	"net/http"

	"lingkod/services/scheduling"
	"lingkod/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TodaysSummaryHandler serves the staff dashboard's view of today's load.
func (h *AppointmentHandler) TodaysSummaryHandler(c *gin.Context) {
	summary, err := h.Service.GetTodaysSummary(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("Failed to build today's summary", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to build today's summary", err.Error())
		return
	}
	c.JSON(http.StatusOK, summary)
}

// SlotsInRangeHandler lists booked slots across an inclusive date range.
func (h *AppointmentHandler) SlotsInRangeHandler(c *gin.Context) {
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")

	views, err := h.Service.GetSlotsInRange(c.Request.Context(), startDate, endDate)
	if err != nil {
		if errors.Is(err, scheduling.ErrInvalidDateRange) {
			utils.JSONError(c, http.StatusBadRequest, "Invalid startDate or endDate", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch slots", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": views})
}
