package notification

import (
	"context"

	"lingkod/models"
)

// NotificationService is the sink for schedule-change events. Handlers call
// it after a successful create/edit/cancel; the scheduling core itself never
// emits.
type NotificationService interface {
	NotifyScheduleEvent(ctx context.Context, event models.ScheduleEvent) error
}
