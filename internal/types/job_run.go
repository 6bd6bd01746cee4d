package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	JobStatusQueued    = "queued"
	JobStatusRunning   = "running"
	JobStatusSucceeded = "succeeded"
	JobStatusFailed    = "failed"

	JobTypeRiskRecalculate      = "risk_recalculate"
	JobTypeFinancialRecalculate = "financial_recalculate"
	JobTypeSnapshotRollup       = "snapshot_rollup"
)

// JobRun is one enqueued unit of background work. DedupeKey is
// deterministic per (property, job type) so near-simultaneous recalculation
// requests collapse into one pending row instead of stacking.
type JobRun struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PropertyID  *uuid.UUID     `gorm:"type:uuid;column:property_id;index" json:"property_id,omitempty"`
	JobType     string         `gorm:"column:job_type;not null;index" json:"job_type"`
	DedupeKey   string         `gorm:"column:dedupe_key;not null;index" json:"dedupe_key"`
	Status      string         `gorm:"column:status;not null;index" json:"status"`
	Stage       string         `gorm:"column:stage;not null" json:"stage"`
	Attempts    int            `gorm:"column:attempts;not null;default:0" json:"attempts"`
	Error       string         `gorm:"column:error" json:"error,omitempty"`
	LockedAt    *time.Time     `gorm:"column:locked_at" json:"locked_at,omitempty"`
	HeartbeatAt *time.Time     `gorm:"column:heartbeat_at" json:"heartbeat_at,omitempty"`
	LastErrorAt *time.Time     `gorm:"column:last_error_at" json:"last_error_at,omitempty"`
	Payload     datatypes.JSON `gorm:"column:payload;type:jsonb" json:"payload"`
	Result      datatypes.JSON `gorm:"column:result;type:jsonb" json:"result"`
	CreatedAt   time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (JobRun) TableName() string { return "job_run" }

// DedupeKeyFor builds the deterministic dedupe key for property-scoped jobs.
func DedupeKeyFor(propertyID uuid.UUID, jobType string) string {
	return propertyID.String() + ":" + jobType
}

// WeeklyDedupeKey builds the dedupe key for fleet-wide jobs that run once
// per calendar week, scoped by the Monday the week starts on.
func WeeklyDedupeKey(jobType string, t time.Time) string {
	return jobType + ":week:" + WeekStartFor(t).Format("2006-01-02")
}
