package scheduling

import (
	"context"

	slotRepo "lingkod/database/repository/slot"
	"lingkod/models"
	"lingkod/services/identity"

	"github.com/go-redis/redis/v8"
)

// SchedulingService owns appointment-slot validation, wholesale replacement,
// single-slot edits and the dashboard summaries.
type SchedulingService interface {
	// ValidateTimeRange checks a candidate range against office hours and
	// every persisted slot on the date, excluding slots owned by
	// exemptThreadID (empty string exempts nothing).
	ValidateTimeRange(ctx context.Context, startTime, endTime, date, exemptThreadID string) models.Result
	// ValidateScheduledDatesPayload checks a batch of incoming entries
	// against each other only, before anything is committed.
	ValidateScheduledDatesPayload(scheduledDates []models.ScheduledDate) models.Result

	// UpsertAppointmentSlots replaces all of a thread's slots with the given
	// list. An empty or all-invalid list wipes the thread's slots.
	UpsertAppointmentSlots(ctx context.Context, threadID, staffID, residentID string, scheduledDates []models.ScheduledDate) ([]models.AppointmentSlot, error)
	GetSlotsByThreadID(ctx context.Context, threadID string) ([]models.AppointmentSlot, error)
	DeleteSlotsByThreadID(ctx context.Context, threadID string) (int64, error)

	// UpdateAppointmentSlotWithValidation moves one slot from oldRange to
	// newRange, transactionally when the store allows it and with manual
	// compensation otherwise. Never panics or returns an error; every
	// outcome is a Result.
	UpdateAppointmentSlotWithValidation(ctx context.Context, threadID string, oldRange, newRange models.SlotRange, staffID, residentID string) models.Result

	GetTodaysSummary(ctx context.Context) (*models.TodaysSummary, error)
	GetSlotsInRange(ctx context.Context, startDate, endDate string) ([]models.SlotRangeView, error)
}

// DefaultSchedulingService is the production implementation.
type DefaultSchedulingService struct {
	Repo     slotRepo.SlotRepository
	Identity identity.Resolver
	// Cache is optional; when set, today's summary is cached under a short
	// TTL so dashboard polling does not hammer the slot collection.
	Cache *redis.Client
}
