package handlers

import (
	"net/http"

	"lingkod/models"
	"lingkod/services/notification"
	"lingkod/services/scheduling"
	"lingkod/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler exposes the scheduling service over HTTP.
type AppointmentHandler struct {
	Service  scheduling.SchedulingService
	Notifier notification.NotificationService
}

func NewAppointmentHandler(svc scheduling.SchedulingService, notifier notification.NotificationService) *AppointmentHandler {
	return &AppointmentHandler{Service: svc, Notifier: notifier}
}

// ValidateTimeRangeHandler checks a single candidate range. The outcome is
// always a 200 with the result body; the UI keys off "ok".
func (h *AppointmentHandler) ValidateTimeRangeHandler(c *gin.Context) {
	var req struct {
		StartTime      string `json:"startTime" binding:"required"`
		EndTime        string `json:"endTime" binding:"required"`
		Date           string `json:"date" binding:"required"`
		ExemptThreadID string `json:"exemptThreadId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	res := h.Service.ValidateTimeRange(c.Request.Context(), req.StartTime, req.EndTime, req.Date, req.ExemptThreadID)
	c.JSON(http.StatusOK, res)
}

// ValidatePayloadHandler cross-checks a batch of scheduled dates before they
// are committed.
func (h *AppointmentHandler) ValidatePayloadHandler(c *gin.Context) {
	var req struct {
		ScheduledDates []models.ScheduledDate `json:"scheduledDates" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	c.JSON(http.StatusOK, h.Service.ValidateScheduledDatesPayload(req.ScheduledDates))
}

// UpsertAppointmentsHandler replaces a thread's slots wholesale. An empty
// list wipes them.
func (h *AppointmentHandler) UpsertAppointmentsHandler(c *gin.Context) {
	threadID := c.Param("threadID")

	var req struct {
		StaffID        string                 `json:"staffId"`
		ResidentID     string                 `json:"residentId"`
		ScheduledDates []models.ScheduledDate `json:"scheduledDates"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	if res := h.Service.ValidateScheduledDatesPayload(req.ScheduledDates); !res.OK {
		c.JSON(http.StatusBadRequest, res)
		return
	}

	slots, err := h.Service.UpsertAppointmentSlots(c.Request.Context(), threadID, req.StaffID, req.ResidentID, req.ScheduledDates)
	if err != nil {
		utils.GetLogger().Error("Failed to upsert appointment slots", zap.String("threadID", threadID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to save appointment slots", err.Error())
		return
	}

	h.emit(c, models.ScheduleCreated, threadID, req.ResidentID, req.ScheduledDates)
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// UpdateSlotHandler moves one slot from its old range to a new one.
func (h *AppointmentHandler) UpdateSlotHandler(c *gin.Context) {
	threadID := c.Param("threadID")

	var req struct {
		OldRange   models.SlotRange `json:"oldRange" binding:"required"`
		NewRange   models.SlotRange `json:"newRange" binding:"required"`
		StaffID    string           `json:"staffId"`
		ResidentID string           `json:"residentId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	res := h.Service.UpdateAppointmentSlotWithValidation(c.Request.Context(), threadID, req.OldRange, req.NewRange, req.StaffID, req.ResidentID)
	if !res.OK {
		c.JSON(updateStatusCode(res.Message), res)
		return
	}

	h.emit(c, models.ScheduleEdited, threadID, req.ResidentID, []models.ScheduledDate{{
		Date:      req.NewRange.Date,
		StartTime: req.NewRange.StartTime,
		EndTime:   req.NewRange.EndTime,
	}})
	c.JSON(http.StatusOK, res)
}

// GetAppointmentsHandler lists a thread's booked slots.
func (h *AppointmentHandler) GetAppointmentsHandler(c *gin.Context) {
	threadID := c.Param("threadID")

	slots, err := h.Service.GetSlotsByThreadID(c.Request.Context(), threadID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch appointment slots", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// DeleteAppointmentsHandler clears a thread's slots.
func (h *AppointmentHandler) DeleteAppointmentsHandler(c *gin.Context) {
	threadID := c.Param("threadID")

	deleted, err := h.Service.DeleteSlotsByThreadID(c.Request.Context(), threadID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete appointment slots", err.Error())
		return
	}

	h.emit(c, models.ScheduleCanceled, threadID, "", nil)
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func (h *AppointmentHandler) emit(c *gin.Context, kind models.ScheduleEventKind, threadID, residentID string, ranges []models.ScheduledDate) {
	if h.Notifier == nil {
		return
	}
	event := models.ScheduleEvent{
		Kind:       kind,
		ThreadID:   threadID,
		ResidentID: residentID,
		Ranges:     ranges,
	}
	if err := h.Notifier.NotifyScheduleEvent(c.Request.Context(), event); err != nil {
		utils.GetLogger().Warn("Failed to emit schedule event",
			zap.String("kind", string(kind)), zap.String("threadID", threadID), zap.Error(err))
	}
}

// updateStatusCode maps update-protocol failure messages onto HTTP codes.
func updateStatusCode(message string) int {
	switch message {
	case scheduling.MsgSlotNotFound:
		return http.StatusNotFound
	case scheduling.MsgUpdateFailed:
		return http.StatusInternalServerError
	case scheduling.MsgRangeUnavailable:
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}
