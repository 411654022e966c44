// services/projector.go
package services

import (
	"careloom-backend/models"
	"careloom-backend/utils"
	"sort"
	"time"

	"github.com/google/uuid"
)

// UpcomingEvent is the read-side projection used by dashboards: the next
// occurrence of a birthday or anniversary inside a rolling window. Derived on
// every read, never persisted.
type UpcomingEvent struct {
	RelationshipID uuid.UUID        `json:"relationshipId"`
	Name           string           `json:"name"`
	Type           string           `json:"type"` // birthday, anniversary
	Date           time.Time        `json:"date"`
	DaysUntil      int              `json:"daysUntil"`
	Frequency      models.Frequency `json:"frequency"`
}

// UpcomingEvents projects the next occurrences of all populated date fields
// that fall within windowDays of today, sorted soonest first. This is a range
// filter for display; sending uses the exact-day predicate in decision.go and
// the two are deliberately separate.
//
// Pure function: no I/O, no log writes, safe to call on every render.
// Malformed stored dates are skipped here; the sending path is where bad data
// gets surfaced.
func UpcomingEvents(relationships []models.Relationship, windowDays int, today time.Time) []UpcomingEvent {
	events := make([]UpcomingEvent, 0)

	for _, rel := range relationships {
		if ev, ok := projectField(rel, models.EventTypeBirthday, rel.Birthday, rel.BirthdayNotificationFrequency, windowDays, today); ok {
			events = append(events, ev)
		}
		if ev, ok := projectField(rel, models.EventTypeAnniversary, rel.Anniversary, rel.AnniversaryNotificationFrequency, windowDays, today); ok {
			events = append(events, ev)
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].DaysUntil != events[j].DaysUntil {
			return events[i].DaysUntil < events[j].DaysUntil
		}
		return events[i].Name < events[j].Name
	})

	return events
}

func projectField(rel models.Relationship, eventType string, raw *string, frequency models.Frequency, windowDays int, today time.Time) (UpcomingEvent, bool) {
	if raw == nil || *raw == "" {
		return UpcomingEvent{}, false
	}

	eventDate, err := utils.ParseCalendarDate(*raw)
	if err != nil {
		return UpcomingEvent{}, false
	}

	occurrence := utils.NextOccurrence(eventDate, today)
	daysUntil := utils.DaysBetween(today, occurrence)
	if daysUntil < 0 || daysUntil > windowDays {
		return UpcomingEvent{}, false
	}

	return UpcomingEvent{
		RelationshipID: rel.ID,
		Name:           rel.Name,
		Type:           eventType,
		Date:           occurrence,
		DaysUntil:      daysUntil,
		Frequency:      frequency,
	}, true
}
