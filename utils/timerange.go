package utils

import (
	"strconv"
	"strings"
	"time"

	"lingkod/models"
)

// InvalidMinutes is the sentinel ToMinutes returns for malformed input.
const InvalidMinutes = -1

// ToMinutes parses a 24-hour "HH:mm" string into minutes since midnight.
// Malformed input (missing colon, non-numeric parts) yields InvalidMinutes;
// it never panics or returns an error.
func ToMinutes(hhmm string) int {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return InvalidMinutes
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return InvalidMinutes
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return InvalidMinutes
	}
	return hours*60 + minutes
}

// RangesOverlap reports whether two half-open minute ranges intersect.
// Touching endpoints (aEnd == bStart) do not overlap.
func RangesOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// SlotOverlapsAny reports whether the candidate range overlaps any of the
// existing slots. Slots whose times fail to parse are skipped, not treated
// as conflicts.
func SlotOverlapsAny(candStart, candEnd int, existing []models.AppointmentSlot) bool {
	for _, slot := range existing {
		start := ToMinutes(slot.StartTime)
		end := ToMinutes(slot.EndTime)
		if start == InvalidMinutes || end == InvalidMinutes {
			continue
		}
		if RangesOverlap(candStart, candEnd, start, end) {
			return true
		}
	}
	return false
}

// NormalizeDate parses a "2006-01-02" (or RFC3339) date string and flattens
// it to midnight UTC. The second return is false when the input is
// unparsable.
func NormalizeDate(raw string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC().Truncate(24 * time.Hour), true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}
