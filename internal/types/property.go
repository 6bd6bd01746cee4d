package types

import (
	"time"

	"github.com/google/uuid"
)

type Property struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OwnerUserID  uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_user_id"`
	Label        string    `gorm:"column:label" json:"label"`
	Zip          string    `gorm:"column:zip;index" json:"zip"`
	PropertyType string    `gorm:"column:property_type;not null" json:"property_type"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Property) TableName() string { return "property" }
