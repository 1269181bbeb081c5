package scheduling

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"lingkod/models"
	"lingkod/utils"

	"go.uber.org/zap"
)

const (
	summaryCacheKey = "scheduling:summary:today"
	summaryCacheTTL = 60 * time.Second
	// upcomingWindowMinutes bounds the "starting soon" list.
	upcomingWindowMinutes = 120
)

// ErrInvalidDateRange rejects a range query with a malformed bound.
var ErrInvalidDateRange = errors.New("invalid date range")

// GetTodaysSummary reports today's booking load: slot count, booked minutes,
// remaining 30-minute blocks out of the 480 office minutes, and the slots
// starting within the next two hours. "Now" is UTC wall-clock, matching how
// slot dates are stored.
func (s *DefaultSchedulingService) GetTodaysSummary(ctx context.Context) (*models.TodaysSummary, error) {
	logger := utils.GetLogger()

	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, summaryCacheKey).Result(); err == nil {
			var cached models.TodaysSummary
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	slots, err := s.Repo.GetByDate(ctx, today)
	if err != nil {
		return nil, err
	}

	nowMinutes := now.Hour()*60 + now.Minute()
	bookedMinutes := 0
	upcoming := []models.AppointmentSlot{}
	for _, slot := range slots {
		start := utils.ToMinutes(slot.StartTime)
		end := utils.ToMinutes(slot.EndTime)
		if start == utils.InvalidMinutes || end == utils.InvalidMinutes {
			continue
		}
		bookedMinutes += end - start
		if start >= nowMinutes && start <= nowMinutes+upcomingWindowMinutes {
			upcoming = append(upcoming, slot)
		}
	}

	remaining := officeMinutesPerDay - bookedMinutes
	if remaining < 0 {
		remaining = 0
	}

	summary := &models.TodaysSummary{
		Date:            today.Format("2006-01-02"),
		TotalSlots:      len(slots),
		BookedMinutes:   bookedMinutes,
		RemainingBlocks: remaining / 30,
		UpcomingSlots:   upcoming,
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(summary); err == nil {
			if err := s.Cache.Set(ctx, summaryCacheKey, raw, summaryCacheTTL).Err(); err != nil {
				logger.Debug("failed to cache today's summary", zap.Error(err))
			}
		}
	}
	return summary, nil
}

// GetSlotsInRange returns the slots booked on any date in the inclusive
// [startDate, endDate] range, projected to the client-facing shape. A
// malformed bound rejects the whole request.
func (s *DefaultSchedulingService) GetSlotsInRange(ctx context.Context, startDate, endDate string) ([]models.SlotRangeView, error) {
	start, ok := utils.NormalizeDate(startDate)
	if !ok {
		return nil, ErrInvalidDateRange
	}
	end, ok := utils.NormalizeDate(endDate)
	if !ok {
		return nil, ErrInvalidDateRange
	}

	slots, err := s.Repo.GetByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	views := make([]models.SlotRangeView, 0, len(slots))
	for _, slot := range slots {
		views = append(views, models.SlotRangeView{
			ID:           slot.ID,
			ThreadID:     slot.ThreadID,
			ResidentName: slot.ResidentName,
			StaffName:    slot.StaffName,
			Date:         slot.Date.Format("2006-01-02"),
			StartTime:    slot.StartTime,
			EndTime:      slot.EndTime,
		})
	}
	return views, nil
}
