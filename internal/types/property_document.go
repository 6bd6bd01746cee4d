package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	DocumentKindInsurancePolicy = "insurance_policy"
	DocumentKindHomeWarranty    = "home_warranty"
	DocumentKindOther           = "other"
)

type PropertyDocument struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PropertyID uuid.UUID `gorm:"type:uuid;not null;index" json:"property_id"`
	Kind       string    `gorm:"column:kind;not null;index" json:"kind"`
	BucketKey  string    `gorm:"column:bucket_key;not null" json:"bucket_key"`
	Label      string    `gorm:"column:label" json:"label,omitempty"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (PropertyDocument) TableName() string { return "property_document" }
