package models

// TodaysSummary is the dashboard view of today's appointment load.
type TodaysSummary struct {
	Date            string            `json:"date"`
	TotalSlots      int               `json:"totalSlots"`
	BookedMinutes   int               `json:"bookedMinutes"`
	RemainingBlocks int               `json:"remainingBlocks"` // 30-minute blocks still bookable
	UpcomingSlots   []AppointmentSlot `json:"upcomingSlots"`   // starting within the next two hours, UTC now
}

// SlotRangeView is the client-facing projection of a slot in a date-range
// query; the date is flattened to "2006-01-02".
type SlotRangeView struct {
	ID           string `json:"id"`
	ThreadID     string `json:"threadId"`
	ResidentName string `json:"residentName,omitempty"`
	StaffName    string `json:"staffName,omitempty"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
}
