package types

import (
	"time"

	"github.com/google/uuid"
)

const ExpenseCategoryUtility = "utility"

type ExpenseRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PropertyID uuid.UUID `gorm:"type:uuid;not null;index" json:"property_id"`
	Category   string    `gorm:"column:category;not null;index" json:"category"`
	Amount     float64   `gorm:"column:amount;not null;default:0" json:"amount"`
	IncurredAt time.Time `gorm:"column:incurred_at;not null;index" json:"incurred_at"`
	Note       string    `gorm:"column:note" json:"note,omitempty"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (ExpenseRecord) TableName() string { return "expense_record" }
