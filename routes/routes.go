package routes

import (
	"lingkod/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAppointmentRoutes registers the scheduling endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, h *handlers.AppointmentHandler) {
	api := r.Group("/api/appointments")
	{
		api.POST("/validate", h.ValidateTimeRangeHandler)
		api.POST("/validate-batch", h.ValidatePayloadHandler)

		api.GET("/summary/today", h.TodaysSummaryHandler)
		api.GET("/range", h.SlotsInRangeHandler)

		api.GET("/thread/:threadID", h.GetAppointmentsHandler)
		api.PUT("/thread/:threadID", h.UpsertAppointmentsHandler)
		api.PATCH("/thread/:threadID/slot", h.UpdateSlotHandler)
		api.DELETE("/thread/:threadID", h.DeleteAppointmentsHandler)
	}
}

// RegisterRoutes wires every route group plus the health endpoint.
func RegisterRoutes(r *gin.Engine, h *handlers.AppointmentHandler) {
	RegisterAppointmentRoutes(r, h)
	r.GET("/healthz", handlers.HealthHandler)
}
