package scheduling

import (
	"context"
	"testing"

	"lingkod/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertAppointmentSlots_ReplacesWholesale(t *testing.T) {
	repo := newMockSlotRepo()
	repo.seed(models.AppointmentSlot{
		ThreadID:  "thread-1",
		Date:      mustDate("2025-12-01"),
		StartTime: "09:00",
		EndTime:   "09:30",
	})
	svc := newTestService(repo)
	ctx := context.Background()

	slots, err := svc.UpsertAppointmentSlots(ctx, "thread-1", "staff-1", "resident-1", []models.ScheduledDate{
		{Date: "2025-12-02", StartTime: "10:00", EndTime: "10:30"},
		{Date: "2025-12-03", StartTime: "14:00", EndTime: "14:30"},
	})
	require.NoError(t, err)
	require.Len(t, slots, 2)

	current, err := svc.GetSlotsByThreadID(ctx, "thread-1")
	require.NoError(t, err)
	assert.Len(t, current, 2)
	for _, slot := range current {
		assert.NotEqual(t, "09:00", slot.StartTime)
		assert.Equal(t, "Ana Reyes", slot.StaffName)
		assert.Equal(t, "BRGY-STF-001", slot.StaffBarangayID)
		assert.Equal(t, "Jose Cruz", slot.ResidentName)
	}
}

func TestUpsertAppointmentSlots_EmptyListWipes(t *testing.T) {
	repo := newMockSlotRepo()
	repo.seed(models.AppointmentSlot{
		ThreadID:  "thread-1",
		Date:      mustDate("2025-12-01"),
		StartTime: "09:00",
		EndTime:   "09:30",
	})
	svc := newTestService(repo)
	ctx := context.Background()

	slots, err := svc.UpsertAppointmentSlots(ctx, "thread-1", "staff-1", "resident-1", nil)
	require.NoError(t, err)
	assert.Empty(t, slots)

	current, err := svc.GetSlotsByThreadID(ctx, "thread-1")
	require.NoError(t, err)
	assert.Empty(t, current)
}

func TestUpsertAppointmentSlots_AllInvalidInputStillWipes(t *testing.T) {
	repo := newMockSlotRepo()
	repo.seed(models.AppointmentSlot{
		ThreadID:  "thread-1",
		Date:      mustDate("2025-12-01"),
		StartTime: "09:00",
		EndTime:   "09:30",
	})
	svc := newTestService(repo)

	slots, err := svc.UpsertAppointmentSlots(context.Background(), "thread-1", "staff-1", "resident-1", []models.ScheduledDate{
		{Date: "garbage", StartTime: "10:00", EndTime: "10:30"},
		{Date: "2025-12-02", StartTime: "", EndTime: "10:30"},
		{Date: "", StartTime: "10:00", EndTime: "10:30"},
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
	assert.Equal(t, 0, repo.count())
}

func TestUpsertAppointmentSlots_DedupsWithinOneCall(t *testing.T) {
	repo := newMockSlotRepo()
	svc := newTestService(repo)

	slots, err := svc.UpsertAppointmentSlots(context.Background(), "thread-1", "staff-1", "resident-1", []models.ScheduledDate{
		{Date: "2025-12-02", StartTime: "10:00", EndTime: "10:30"},
		{Date: "2025-12-02", StartTime: "10:00", EndTime: "11:00"},
	})
	require.NoError(t, err)
	assert.Len(t, slots, 1)
	assert.Equal(t, "10:30", slots[0].EndTime)
}

func TestUpsertAppointmentSlots_RepeatedCallsConverge(t *testing.T) {
	repo := newMockSlotRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	payload := []models.ScheduledDate{
		{Date: "2025-12-02", StartTime: "10:00", EndTime: "10:30"},
		{Date: "2025-12-03", StartTime: "14:00", EndTime: "14:30"},
	}

	_, err := svc.UpsertAppointmentSlots(ctx, "thread-1", "staff-1", "resident-1", payload)
	require.NoError(t, err)
	_, err = svc.UpsertAppointmentSlots(ctx, "thread-1", "staff-1", "resident-1", payload)
	require.NoError(t, err)

	current, err := svc.GetSlotsByThreadID(ctx, "thread-1")
	require.NoError(t, err)
	assert.Len(t, current, 2)
}

func TestUpsertAppointmentSlots_UnknownIdentityLeavesFieldsEmpty(t *testing.T) {
	repo := newMockSlotRepo()
	svc := newTestService(repo)

	slots, err := svc.UpsertAppointmentSlots(context.Background(), "thread-1", "ghost-staff", "ghost-resident", []models.ScheduledDate{
		{Date: "2025-12-02", StartTime: "10:00", EndTime: "10:30"},
	})
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Empty(t, slots[0].StaffName)
	assert.Empty(t, slots[0].ResidentName)
	assert.Equal(t, "ghost-staff", slots[0].StaffID)
}

func TestUpsertAppointmentSlots_InsertErrorPropagates(t *testing.T) {
	repo := newMockSlotRepo()
	repo.failInserts = 1
	svc := newTestService(repo)

	_, err := svc.UpsertAppointmentSlots(context.Background(), "thread-1", "staff-1", "resident-1", []models.ScheduledDate{
		{Date: "2025-12-02", StartTime: "10:00", EndTime: "10:30"},
	})
	assert.Error(t, err)
}

func TestDeleteSlotsByThreadID(t *testing.T) {
	repo := newMockSlotRepo()
	repo.seed(models.AppointmentSlot{ThreadID: "thread-1", Date: mustDate("2025-12-01"), StartTime: "09:00", EndTime: "09:30"})
	repo.seed(models.AppointmentSlot{ThreadID: "thread-2", Date: mustDate("2025-12-01"), StartTime: "10:00", EndTime: "10:30"})
	svc := newTestService(repo)

	deleted, err := svc.DeleteSlotsByThreadID(context.Background(), "thread-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.Equal(t, 1, repo.count())
}
