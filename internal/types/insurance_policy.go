package types

import (
	"time"

	"github.com/google/uuid"
)

type InsurancePolicy struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PropertyID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"property_id"`
	Carrier       string     `gorm:"column:carrier" json:"carrier"`
	PolicyType    string     `gorm:"column:policy_type;not null;default:'dwelling'" json:"policy_type"`
	AnnualPremium float64    `gorm:"column:annual_premium;not null;default:0" json:"annual_premium"`
	Deductible    float64    `gorm:"column:deductible;not null;default:0" json:"deductible"`
	DocumentID    *uuid.UUID `gorm:"type:uuid;column:document_id" json:"document_id,omitempty"`
	CreatedAt     time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (InsurancePolicy) TableName() string { return "insurance_policy" }
