package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Date-ideas digest opt-in tokens, relevant for partner/spouse relationships.
const (
	DateIdeasWeekly   = "weekly"
	DateIdeasBiweekly = "biweekly"
	DateIdeasMonthly  = "monthly"
	DateIdeasNone     = "none"
)

type Relationship struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	ProfileID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name             string `gorm:"not null"`
	RelationshipType string `gorm:"type:varchar(20);not null"` // partner, spouse, friend, family, colleague, other
	Email            string // contact info only, reminders always go to the profile owner

	// Recurring annual dates stored as "YYYY-MM-DD"; the year component is an
	// arbitrary anchor and carries no meaning. Kept as strings because imported
	// data can be malformed and parsing is the core's job.
	Birthday    *string `gorm:"type:varchar(10)"`
	Anniversary *string `gorm:"type:varchar(10)"`

	BirthdayNotificationFrequency    Frequency `gorm:"type:varchar(20);default:'1_week'"`
	AnniversaryNotificationFrequency Frequency `gorm:"type:varchar(20);default:'1_week'"`

	DateIdeasFrequency string `gorm:"type:varchar(20);default:'none'"`

	Notes string

	gorm.Model
}

func (r *Relationship) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

// WantsDateIdeas reports whether this relationship is eligible for the weekly
// date-ideas digest.
func (r *Relationship) WantsDateIdeas() bool {
	if r.RelationshipType != "partner" && r.RelationshipType != "spouse" {
		return false
	}
	return r.DateIdeasFrequency != "" && r.DateIdeasFrequency != DateIdeasNone
}
