package scheduling

// User-facing failure messages. The UI surfaces these strings directly, so
// they are part of the API contract and must not drift.
const (
	MsgStartBeforeEnd     = "Start time must be earlier than end time."
	MsgOutsideOfficeHours = "Selected time is outside office hours."
	MsgOverlapsExisting   = "Selected time overlaps an existing schedule."
	MsgInvalidDateFormat  = "Invalid date format"
	MsgSlotNotFound       = "Original appointment slot not found."
	MsgRangeUnavailable   = "The selected time range is no longer available."
	MsgUpdateFailed       = "Failed to update appointment slot"
	MsgValidateFailed     = "Failed to validate appointment slot"
)
