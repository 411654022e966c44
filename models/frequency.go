package models

// Frequency is the lead-time token users pick for an event's reminder.
// Stored as-is in the database and bound from JSON, so the values match
// the API vocabulary exactly.
type Frequency string

const (
	FrequencyOneDay   Frequency = "1_day"
	FrequencyThreeDay Frequency = "3_days"
	FrequencyOneWeek  Frequency = "1_week"
	FrequencyTwoWeeks Frequency = "2_weeks"
	FrequencyOneMonth Frequency = "1_month"
	FrequencyNone     Frequency = "none"
)

// NoReminderOffset is returned for FrequencyNone; callers must check for it
// before doing any date arithmetic.
const NoReminderOffset = -1

// DaysOffset maps a frequency token to the number of days before the event
// the reminder should go out. Unrecognized tokens fall back to one week.
func (f Frequency) DaysOffset() int {
	switch f {
	case FrequencyOneDay:
		return 1
	case FrequencyThreeDay:
		return 3
	case FrequencyOneWeek:
		return 7
	case FrequencyTwoWeeks:
		return 14
	case FrequencyOneMonth:
		return 30
	case FrequencyNone:
		return NoReminderOffset
	default:
		return 7
	}
}

// IsValid reports whether f is one of the known tokens.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyOneDay, FrequencyThreeDay, FrequencyOneWeek,
		FrequencyTwoWeeks, FrequencyOneMonth, FrequencyNone:
		return true
	}
	return false
}
