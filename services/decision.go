// services/decision.go
package services

import (
	"careloom-backend/models"
	"careloom-backend/utils"
	"time"
)

// TriggerDate returns the single calendar day a reminder for eventDate should
// fire, given the chosen frequency, and whether one exists at all (false for
// frequency "none"). The trigger is the next occurrence minus the frequency's
// day offset.
func TriggerDate(eventDate time.Time, frequency models.Frequency, today time.Time) (time.Time, bool) {
	offset := frequency.DaysOffset()
	if offset == models.NoReminderOffset {
		return time.Time{}, false
	}

	occurrence := utils.NextOccurrence(eventDate, today)
	return occurrence.AddDate(0, 0, -offset), true
}

// ShouldSendToday is the send predicate: true only when today is exactly the
// trigger day. Exact equality (not "due or overdue") means each event fires on
// one calendar day per year, relying on the orchestrator running daily. Pure
// function of its inputs; today is always passed in, never read from the clock.
func ShouldSendToday(eventDate time.Time, frequency models.Frequency, today time.Time) bool {
	trigger, ok := TriggerDate(eventDate, frequency, today)
	if !ok {
		return false
	}
	return utils.BeginningOfDay(today).Equal(trigger)
}

// EvaluateDateField parses a stored date string and runs the send predicate.
// A malformed value surfaces as an error so callers can tell "bad data" apart
// from "no reminder due". The resolved occurrence is returned for logging.
func EvaluateDateField(raw *string, frequency models.Frequency, today time.Time) (send bool, occurrence time.Time, err error) {
	if raw == nil || *raw == "" {
		return false, time.Time{}, nil
	}

	eventDate, err := utils.ParseCalendarDate(*raw)
	if err != nil {
		return false, time.Time{}, err
	}

	return ShouldSendToday(eventDate, frequency, today), utils.NextOccurrence(eventDate, today), nil
}
