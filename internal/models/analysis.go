package models

import (
	"time"

	"github.com/google/uuid"
)

// Analysis is one persisted ranking run. The job requirement and the full
// report are stored as serialized JSON so historical runs survive schema
// evolution of the report shape.
type Analysis struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobRequirements string    `gorm:"type:jsonb" json:"-"`
	Report          string    `gorm:"type:jsonb" json:"-"`
	ProfileCount    int       `gorm:"not null" json:"profile_count"`
	CreatedAt       time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt       time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (Analysis) TableName() string {
	return "analyses"
}
