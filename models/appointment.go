package models

import "time"

// AppointmentSlot is one booked date+time range belonging to an inquiry
// thread. Resident and staff identity is denormalized at write time and is
// never re-synced with later profile edits; slot records are historical
// snapshots of who booked what.
type AppointmentSlot struct {
	ID                 string    `bson:"id" json:"id"`
	ThreadID           string    `bson:"threadId" json:"threadId"`
	ResidentID         string    `bson:"residentId,omitempty" json:"residentId,omitempty"`
	ResidentName       string    `bson:"residentName,omitempty" json:"residentName,omitempty"`
	ResidentBarangayID string    `bson:"residentBarangayId,omitempty" json:"residentBarangayId,omitempty"`
	StaffID            string    `bson:"staffId,omitempty" json:"staffId,omitempty"`
	StaffName          string    `bson:"staffName,omitempty" json:"staffName,omitempty"`
	StaffBarangayID    string    `bson:"staffBarangayId,omitempty" json:"staffBarangayId,omitempty"`
	Date               time.Time `bson:"date" json:"date"` // normalized to midnight UTC
	StartTime          string    `bson:"startTime" json:"startTime"`
	EndTime            string    `bson:"endTime" json:"endTime"`
	CreatedAt          time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// ScheduledDate is one incoming {date, startTime, endTime} entry in an
// upsert or validation payload. Date arrives as "2006-01-02".
type ScheduledDate struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// SlotRange identifies one slot edge in an update request.
type SlotRange struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

// Result is the uniform outcome of every validation and update operation.
// Business rejections and absorbed infrastructure failures both surface
// here; Message strings are part of the API contract shown to the UI.
type Result struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// Ok returns a successful Result.
func Ok() Result { return Result{OK: true} }

// Fail returns a failed Result carrying a user-facing message.
func Fail(message string) Result { return Result{OK: false, Message: message} }
