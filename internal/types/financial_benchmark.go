package types

import (
	"time"

	"github.com/google/uuid"
)

// FinancialBenchmark is seeded reference data. Rows with a nil Zip act as
// the per-property-type default used when no zip-specific row exists.
type FinancialBenchmark struct {
	ID                  uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Zip                 *string   `gorm:"column:zip;index:idx_benchmark_zip_type" json:"zip,omitempty"`
	PropertyType        string    `gorm:"column:property_type;not null;index:idx_benchmark_zip_type" json:"property_type"`
	AvgInsurancePremium float64   `gorm:"column:avg_insurance_premium;not null;default:0" json:"avg_insurance_premium"`
	AvgUtilityCost      float64   `gorm:"column:avg_utility_cost;not null;default:0" json:"avg_utility_cost"`
	AvgWarrantyCost     float64   `gorm:"column:avg_warranty_cost;not null;default:0" json:"avg_warranty_cost"`
	CreatedAt           time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt           time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (FinancialBenchmark) TableName() string { return "financial_benchmark" }

func (b *FinancialBenchmark) Total() float64 {
	if b == nil {
		return 0
	}
	return b.AvgInsurancePremium + b.AvgUtilityCost + b.AvgWarrantyCost
}
