package scheduling

import (
	"context"
	"fmt"
	"time"

	"lingkod/models"
	"lingkod/utils"

	"github.com/google/uuid"
)

// UpsertAppointmentSlots replaces every slot owned by threadID with the
// incoming list. Identity is resolved once, best-effort; malformed entries
// are dropped; duplicates on (threadId, date, startTime) are collapsed. An
// empty or all-invalid list still deletes the thread's prior slots — a full
// wipe, not a no-op. Insert failures (e.g. a duplicate key lost to a race)
// propagate to the caller, which owns retry policy.
func (s *DefaultSchedulingService) UpsertAppointmentSlots(ctx context.Context, threadID, staffID, residentID string, scheduledDates []models.ScheduledDate) ([]models.AppointmentSlot, error) {
	staffIdent := s.Identity.Resolve(ctx, staffID)
	residentIdent := s.Identity.Resolve(ctx, residentID)

	type candidate struct {
		date  time.Time
		entry models.ScheduledDate
	}
	var wellFormed []candidate
	for _, entry := range scheduledDates {
		if entry.Date == "" || entry.StartTime == "" || entry.EndTime == "" {
			continue
		}
		day, ok := utils.NormalizeDate(entry.Date)
		if !ok {
			continue
		}
		wellFormed = append(wellFormed, candidate{date: day, entry: entry})
	}

	if _, err := s.Repo.DeleteByThreadID(ctx, threadID); err != nil {
		return nil, fmt.Errorf("failed to clear existing slots for thread %s: %w", threadID, err)
	}

	seen := make(map[string]bool)
	var slots []models.AppointmentSlot
	for _, c := range wellFormed {
		key := fmt.Sprintf("%s|%s|%s", threadID, c.date.Format("2006-01-02"), c.entry.StartTime)
		if seen[key] {
			continue
		}
		seen[key] = true

		slots = append(slots, models.AppointmentSlot{
			ID:                 uuid.New().String(),
			ThreadID:           threadID,
			ResidentID:         residentID,
			ResidentName:       residentIdent.DisplayName,
			ResidentBarangayID: residentIdent.BarangayID,
			StaffID:            staffID,
			StaffName:          staffIdent.DisplayName,
			StaffBarangayID:    staffIdent.BarangayID,
			Date:               c.date,
			StartTime:          c.entry.StartTime,
			EndTime:            c.entry.EndTime,
		})
	}

	if len(slots) == 0 {
		return []models.AppointmentSlot{}, nil
	}
	if err := s.Repo.InsertMany(ctx, slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// GetSlotsByThreadID returns the slots currently booked for one thread.
func (s *DefaultSchedulingService) GetSlotsByThreadID(ctx context.Context, threadID string) ([]models.AppointmentSlot, error) {
	return s.Repo.GetByThreadID(ctx, threadID)
}

// DeleteSlotsByThreadID clears every slot owned by one thread.
func (s *DefaultSchedulingService) DeleteSlotsByThreadID(ctx context.Context, threadID string) (int64, error) {
	return s.Repo.DeleteByThreadID(ctx, threadID)
}
