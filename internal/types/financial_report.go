package types

import (
	"time"

	"github.com/google/uuid"
)

// Financial report statuses. A numeric score is only trustworthy when the
// status is CALCULATED; MISSING_DATA carries the neutral 50 placeholder and
// NO_BENCHMARK carries no score at all.
const (
	FinancialStatusCalculated  = "CALCULATED"
	FinancialStatusMissingData = "MISSING_DATA"
	FinancialStatusNoBenchmark = "NO_BENCHMARK"
)

type FinancialReport struct {
	ID                       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PropertyID               uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"property_id"`
	Status                   string    `gorm:"column:status;not null" json:"status"`
	FinancialEfficiencyScore *float64  `gorm:"column:financial_efficiency_score" json:"financial_efficiency_score,omitempty"`
	ActualInsuranceCost      float64   `gorm:"column:actual_insurance_cost;not null;default:0" json:"actual_insurance_cost"`
	ActualUtilityCost        float64   `gorm:"column:actual_utility_cost;not null;default:0" json:"actual_utility_cost"`
	ActualWarrantyCost       float64   `gorm:"column:actual_warranty_cost;not null;default:0" json:"actual_warranty_cost"`
	MarketAverageTotal       float64   `gorm:"column:market_average_total;not null;default:0" json:"market_average_total"`
	LastCalculatedAt         time.Time `gorm:"column:last_calculated_at;not null" json:"last_calculated_at"`
	CreatedAt                time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt                time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (FinancialReport) TableName() string { return "financial_report" }
