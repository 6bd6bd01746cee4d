package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	MaintenanceStatusOpen      = "open"
	MaintenanceStatusDone      = "done"
	MaintenanceStatusDismissed = "dismissed"

	MaintenancePriorityNormal   = "normal"
	MaintenancePriorityCritical = "critical"

	MaintenanceSourceRiskCalc = "risk_calculation"
	MaintenanceSourceUser     = "user"
)

type MaintenanceTask struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PropertyID uuid.UUID  `gorm:"type:uuid;not null;index" json:"property_id"`
	SystemType string     `gorm:"column:system_type;index" json:"system_type,omitempty"`
	Title      string     `gorm:"column:title;not null" json:"title"`
	Detail     string     `gorm:"column:detail" json:"detail,omitempty"`
	Status     string     `gorm:"column:status;not null;default:'open';index" json:"status"`
	Priority   string     `gorm:"column:priority;not null;default:'normal'" json:"priority"`
	Source     string     `gorm:"column:source;not null;default:'user'" json:"source"`
	DueAt      *time.Time `gorm:"column:due_at" json:"due_at,omitempty"`
	CreatedAt  time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (MaintenanceTask) TableName() string { return "maintenance_task" }
