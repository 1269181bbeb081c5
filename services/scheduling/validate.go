package scheduling

import (
	"context"
	"time"

	"lingkod/models"
	"lingkod/utils"

	"go.uber.org/zap"
)

// The two permitted booking windows, in minutes since midnight. No window
// spans the lunch break.
var officeWindows = [][2]int{
	{8 * 60, 12 * 60},  // 08:00–12:00
	{13 * 60, 17 * 60}, // 13:00–17:00
}

// officeMinutesPerDay is the total bookable minutes across both windows.
const officeMinutesPerDay = 480

func withinOfficeHours(start, end int) bool {
	for _, w := range officeWindows {
		if start >= w[0] && end <= w[1] {
			return true
		}
	}
	return false
}

// validateBasicRange runs the store-independent checks: parseable times,
// start strictly before end, and the pair wholly inside one office window.
func validateBasicRange(startTime, endTime string) models.Result {
	start := utils.ToMinutes(startTime)
	end := utils.ToMinutes(endTime)
	if start == utils.InvalidMinutes || end == utils.InvalidMinutes || start >= end {
		return models.Fail(MsgStartBeforeEnd)
	}
	if !withinOfficeHours(start, end) {
		return models.Fail(MsgOutsideOfficeHours)
	}
	return models.Ok()
}

// ValidateTimeRange checks a candidate range against office hours and every
// persisted slot on the date, excluding slots owned by exemptThreadID.
//
// An unparsable date fails with the office-hours message rather than a
// distinct error. Callers may match on that message, so it stays as is.
func (s *DefaultSchedulingService) ValidateTimeRange(ctx context.Context, startTime, endTime, date, exemptThreadID string) models.Result {
	if res := validateBasicRange(startTime, endTime); !res.OK {
		return res
	}

	day, ok := utils.NormalizeDate(date)
	if !ok {
		return models.Fail(MsgOutsideOfficeHours)
	}

	existing, err := s.Repo.GetByDateExcludingThread(ctx, day, exemptThreadID)
	if err != nil {
		utils.GetLogger().Error("failed to load slots for overlap check",
			zap.String("date", date), zap.Error(err))
		return models.Fail(MsgValidateFailed)
	}

	start := utils.ToMinutes(startTime)
	end := utils.ToMinutes(endTime)
	if utils.SlotOverlapsAny(start, end, existing) {
		return models.Fail(MsgOverlapsExisting)
	}
	return models.Ok()
}

// ValidateScheduledDatesPayload checks a batch of incoming entries against
// each other (not against the store) before they are committed: within each
// date bucket every entry must have start < end and must not overlap any
// earlier entry. Fails fast on the first bad entry.
func (s *DefaultSchedulingService) ValidateScheduledDatesPayload(scheduledDates []models.ScheduledDate) models.Result {
	type minuteRange struct{ start, end int }
	buckets := make(map[time.Time][]minuteRange)

	for _, entry := range scheduledDates {
		start := utils.ToMinutes(entry.StartTime)
		end := utils.ToMinutes(entry.EndTime)
		if start == utils.InvalidMinutes || end == utils.InvalidMinutes || start >= end {
			return models.Fail(MsgStartBeforeEnd)
		}

		day, ok := utils.NormalizeDate(entry.Date)
		if !ok {
			// Unparsable dates get dropped at commit time; nothing to
			// cross-check them against here.
			continue
		}

		for _, prior := range buckets[day] {
			if utils.RangesOverlap(start, end, prior.start, prior.end) {
				return models.Fail(MsgOverlapsExisting)
			}
		}
		buckets[day] = append(buckets[day], minuteRange{start: start, end: end})
	}
	return models.Ok()
}
