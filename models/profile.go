package models

import (
	"careloom-backend/utils"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Profile struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Email    string    `gorm:"uniqueIndex;not null"` // reminder recipient address
	Password string    `gorm:"not null"`
	Name     string    `gorm:"not null"`
	City     string

	// Default frequency applied to new relationships when none is chosen.
	NudgeFrequency Frequency `gorm:"type:varchar(20);default:'1_week'"`

	Relationships []Relationship `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`

	LastLogin *time.Time
	IsActive  bool `gorm:"default:true"`

	gorm.Model
}

// Initialize UUID and hash the password before creating
func (p *Profile) BeforeCreate(tx *gorm.DB) (err error) {
	p.ID = uuid.New()
	hashed, err := utils.HashPassword(p.Password)
	if err != nil {
		return err
	}
	p.Password = hashed
	return
}
