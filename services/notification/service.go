package notification

import (
	"context"
	"fmt"
	"time"

	"lingkod/config"
	"lingkod/models"
	"lingkod/services/tasks"
	"lingkod/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// DefaultNotificationService logs schedule events and, for created/edited
// ranges, queues an appointment reminder ahead of the slot's start.
type DefaultNotificationService struct {
	Reminders *asynq.Client
}

func (s *DefaultNotificationService) NotifyScheduleEvent(ctx context.Context, event models.ScheduleEvent) error {
	logger := utils.GetLogger()

	logger.Info("schedule event",
		zap.String("kind", string(event.Kind)),
		zap.String("threadID", event.ThreadID),
		zap.String("residentID", event.ResidentID),
		zap.Int("ranges", len(event.Ranges)))

	if event.Kind == models.ScheduleCanceled || s.Reminders == nil {
		return nil
	}

	lead := time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute
	for _, r := range event.Ranges {
		fireAt, ok := reminderTime(r, lead)
		if !ok {
			continue
		}
		payload := models.ReminderPayload{
			ThreadID:   event.ThreadID,
			ResidentID: event.ResidentID,
			Date:       r.Date,
			StartTime:  r.StartTime,
			EndTime:    r.EndTime,
		}
		task, opts, err := tasks.NewReminderTask(payload, fireAt)
		if err != nil {
			return fmt.Errorf("failed to build reminder task: %w", err)
		}
		if _, err := s.Reminders.EnqueueContext(ctx, task, opts...); err != nil {
			return fmt.Errorf("failed to enqueue reminder: %w", err)
		}
	}
	return nil
}

// reminderTime computes slot start minus the configured lead. Slots already
// inside the lead window (or malformed ranges) get no reminder.
func reminderTime(r models.ScheduledDate, lead time.Duration) (time.Time, bool) {
	day, ok := utils.NormalizeDate(r.Date)
	if !ok {
		return time.Time{}, false
	}
	startMinutes := utils.ToMinutes(r.StartTime)
	if startMinutes == utils.InvalidMinutes {
		return time.Time{}, false
	}
	fireAt := day.Add(time.Duration(startMinutes)*time.Minute - lead)
	if fireAt.Before(time.Now().UTC()) {
		return time.Time{}, false
	}
	return fireAt, true
}
