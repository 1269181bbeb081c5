package models

// ScheduleEventKind enumerates the notification events emitted after a
// successful schedule change.
type ScheduleEventKind string

const (
	ScheduleCreated  ScheduleEventKind = "created"
	ScheduleEdited   ScheduleEventKind = "edited"
	ScheduleCanceled ScheduleEventKind = "canceled"
)

// ScheduleEvent carries the affected range(s) of a schedule change to the
// resident-facing notification sink.
type ScheduleEvent struct {
	Kind       ScheduleEventKind `json:"kind"`
	ThreadID   string            `json:"threadId"`
	ResidentID string            `json:"residentId,omitempty"`
	Ranges     []ScheduledDate   `json:"ranges,omitempty"`
}

// ReminderPayload is the asynq task body for an appointment reminder.
type ReminderPayload struct {
	ThreadID   string `json:"threadId"`
	ResidentID string `json:"residentId"`
	Date       string `json:"date"` // "2006-01-02"
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
}
