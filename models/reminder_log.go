// models/reminder_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event types recorded in reminder logs.
const (
	EventTypeBirthday    = "birthday"
	EventTypeAnniversary = "anniversary"
)

// ReminderLog is the idempotency record for automatic sends: one row per
// (relationship, event type, event occurrence). The unique index makes
// double-sending impossible even if two runs race on the same day.
type ReminderLog struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	ProfileID      uuid.UUID `gorm:"type:uuid;index;not null"`
	RelationshipID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reminder_once,priority:1"`
	Type           string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_reminder_once,priority:2"` // birthday, anniversary

	// ReminderDate is the calendar day the run evaluated; EventDate is the
	// resolved occurrence the reminder was for.
	ReminderDate time.Time `gorm:"type:date;not null"`
	EventDate    time.Time `gorm:"type:date;not null;uniqueIndex:idx_reminder_once,priority:3"`

	SentAt time.Time
	gorm.Model
}

func (r *ReminderLog) BeforeCreate(tx *gorm.DB) (err error) {
	r.ID = uuid.New()
	return
}
