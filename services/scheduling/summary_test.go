package scheduling

import (
	"context"
	"fmt"
	"testing"
	"time"

	"lingkod/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func TestGetTodaysSummary(t *testing.T) {
	repo := newMockSlotRepo()
	today := todayUTC()
	repo.seed(models.AppointmentSlot{ThreadID: "thread-1", Date: today, StartTime: "09:00", EndTime: "09:30"})
	repo.seed(models.AppointmentSlot{ThreadID: "thread-2", Date: today, StartTime: "14:00", EndTime: "15:00"})
	// Yesterday's slot does not count.
	repo.seed(models.AppointmentSlot{ThreadID: "thread-3", Date: today.AddDate(0, 0, -1), StartTime: "10:00", EndTime: "10:30"})
	svc := newTestService(repo)

	summary, err := svc.GetTodaysSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, today.Format("2006-01-02"), summary.Date)
	assert.Equal(t, 2, summary.TotalSlots)
	assert.Equal(t, 90, summary.BookedMinutes)
	assert.Equal(t, (480-90)/30, summary.RemainingBlocks)
}

func clockAt(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func TestGetTodaysSummary_UpcomingWindow(t *testing.T) {
	repo := newMockSlotRepo()
	today := todayUTC()
	now := time.Now().UTC()
	nowMinutes := now.Hour()*60 + now.Minute()

	// One slot inside the two-hour window, one already started, one too far
	// ahead. Only the first is upcoming.
	repo.seed(models.AppointmentSlot{ThreadID: "thread-soon", Date: today,
		StartTime: clockAt(nowMinutes + 60), EndTime: clockAt(nowMinutes + 90)})
	repo.seed(models.AppointmentSlot{ThreadID: "thread-started", Date: today,
		StartTime: clockAt(nowMinutes - 30), EndTime: clockAt(nowMinutes)})
	repo.seed(models.AppointmentSlot{ThreadID: "thread-far", Date: today,
		StartTime: clockAt(nowMinutes + 180), EndTime: clockAt(nowMinutes + 210)})
	svc := newTestService(repo)

	summary, err := svc.GetTodaysSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.UpcomingSlots, 1)
	assert.Equal(t, "thread-soon", summary.UpcomingSlots[0].ThreadID)
}

func TestGetTodaysSummary_OverbookedDayClampsToZero(t *testing.T) {
	repo := newMockSlotRepo()
	today := todayUTC()
	// Four threads booking two full windows plus change.
	repo.seed(models.AppointmentSlot{ThreadID: "a", Date: today, StartTime: "08:00", EndTime: "12:00"})
	repo.seed(models.AppointmentSlot{ThreadID: "b", Date: today, StartTime: "13:00", EndTime: "17:00"})
	// A legacy record outside office hours still counts toward booked time.
	repo.seed(models.AppointmentSlot{ThreadID: "c", Date: today, StartTime: "07:00", EndTime: "08:00"})
	svc := newTestService(repo)

	summary, err := svc.GetTodaysSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.RemainingBlocks)
}

func TestGetSlotsInRange(t *testing.T) {
	repo := newMockSlotRepo()
	repo.seed(models.AppointmentSlot{ID: "s1", ThreadID: "thread-1", ResidentName: "Jose Cruz", Date: mustDate("2025-12-01"), StartTime: "09:00", EndTime: "09:30"})
	repo.seed(models.AppointmentSlot{ID: "s2", ThreadID: "thread-2", Date: mustDate("2025-12-05"), StartTime: "10:00", EndTime: "10:30"})
	repo.seed(models.AppointmentSlot{ID: "s3", ThreadID: "thread-3", Date: mustDate("2025-12-09"), StartTime: "11:00", EndTime: "11:30"})
	svc := newTestService(repo)
	ctx := context.Background()

	views, err := svc.GetSlotsInRange(ctx, "2025-12-01", "2025-12-05")
	require.NoError(t, err)
	require.Len(t, views, 2) // bounds are inclusive

	dates := map[string]bool{}
	for _, v := range views {
		dates[v.Date] = true
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, v.Date)
	}
	assert.True(t, dates["2025-12-01"])
	assert.True(t, dates["2025-12-05"])
}

func TestGetSlotsInRange_MalformedBoundRejectsRequest(t *testing.T) {
	svc := newTestService(newMockSlotRepo())
	ctx := context.Background()

	_, err := svc.GetSlotsInRange(ctx, "last tuesday", "2025-12-05")
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = svc.GetSlotsInRange(ctx, "2025-12-01", "whenever")
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}
