package types

import (
	"time"

	"github.com/google/uuid"
)

type HomeWarranty struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PropertyID uuid.UUID  `gorm:"type:uuid;not null;index" json:"property_id"`
	Provider   string     `gorm:"column:provider" json:"provider"`
	AnnualCost float64    `gorm:"column:annual_cost;not null;default:0" json:"annual_cost"`
	Deductible float64    `gorm:"column:deductible;not null;default:0" json:"deductible"`
	ExpiresAt  time.Time  `gorm:"column:expires_at;not null" json:"expires_at"`
	DocumentID *uuid.UUID `gorm:"type:uuid;column:document_id" json:"document_id,omitempty"`
	CreatedAt  time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (HomeWarranty) TableName() string { return "home_warranty" }

// ActiveAt reports whether the warranty covers the given moment.
func (w *HomeWarranty) ActiveAt(t time.Time) bool {
	if w == nil {
		return false
	}
	return !w.ExpiresAt.Before(t)
}
