package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	CorrectionStatusSubmitted = "SUBMITTED"
	CorrectionStatusApplied   = "APPLIED"
	CorrectionStatusRejected  = "REJECTED"
)

// Correction is one user-submitted fact-fix request. The row is an audit
// record: the value the field held at submission time is captured so the
// ledger stays meaningful after the fact itself changes.
type Correction struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PropertyID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"property_id"`
	FieldKey      string         `gorm:"column:field_key;not null" json:"field_key"`
	Title         string         `gorm:"column:title;not null" json:"title"`
	Detail        string         `gorm:"column:detail" json:"detail,omitempty"`
	PreviousValue datatypes.JSON `gorm:"column:previous_value;type:jsonb" json:"previous_value,omitempty"`
	ProposedValue datatypes.JSON `gorm:"column:proposed_value;type:jsonb" json:"proposed_value,omitempty"`
	Status        string         `gorm:"column:status;not null;default:'SUBMITTED';index" json:"status"`
	SubmittedBy   uuid.UUID      `gorm:"type:uuid;not null" json:"submitted_by"`
	SubmittedAt   time.Time      `gorm:"column:submitted_at;not null" json:"submitted_at"`
	ResolvedAt    *time.Time     `gorm:"column:resolved_at" json:"resolved_at,omitempty"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Correction) TableName() string { return "correction" }
