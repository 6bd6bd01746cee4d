package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ScoreType string

const (
	ScoreTypeHealth    ScoreType = "HEALTH"
	ScoreTypeRisk      ScoreType = "RISK"
	ScoreTypeFinancial ScoreType = "FINANCIAL"
)

var AllScoreTypes = []ScoreType{ScoreTypeHealth, ScoreTypeRisk, ScoreTypeFinancial}

// ScoreSnapshot is one weekly data point for one score series. Rows are
// append-only: a week is written once and never mutated, so the series can
// be replayed for trend and delta math at any time.
type ScoreSnapshot struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PropertyID uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_snapshot_week,priority:1" json:"property_id"`
	ScoreType  ScoreType      `gorm:"column:score_type;not null;uniqueIndex:idx_snapshot_week,priority:2" json:"score_type"`
	WeekStart  time.Time      `gorm:"column:week_start;type:date;not null;uniqueIndex:idx_snapshot_week,priority:3" json:"week_start"`
	Score      float64        `gorm:"column:score;not null" json:"score"`
	ScoreMax   float64        `gorm:"column:score_max;not null;default:100" json:"score_max"`
	Detail     datatypes.JSON `gorm:"column:detail;type:jsonb" json:"detail,omitempty"`
	ComputedAt time.Time      `gorm:"column:computed_at;not null" json:"computed_at"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (ScoreSnapshot) TableName() string { return "score_snapshot" }

// WeekStartFor truncates t to the Monday of its ISO week, in UTC.
func WeekStartFor(t time.Time) time.Time {
	t = t.UTC()
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	day := t.AddDate(0, 0, -(weekday - 1))
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}
