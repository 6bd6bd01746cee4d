package types

import (
	"time"

	"github.com/google/uuid"
)

// PropertyFacts is the user-stated profile of a home. Install years are
// pointers: nil means "unknown", which the risk model treats as "skip the
// asset", never as a guessed default.
type PropertyFacts struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PropertyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"property_id"`

	YearBuilt        *int `gorm:"column:year_built" json:"year_built,omitempty"`
	LivingAreaSqFt   *int `gorm:"column:living_area_sqft" json:"living_area_sqft,omitempty"`

	HeatingType string `gorm:"column:heating_type" json:"heating_type,omitempty"`
	CoolingType string `gorm:"column:cooling_type" json:"cooling_type,omitempty"`

	RoofInstallYear        *int `gorm:"column:roof_install_year" json:"roof_install_year,omitempty"`
	HVACInstallYear        *int `gorm:"column:hvac_install_year" json:"hvac_install_year,omitempty"`
	WaterHeaterInstallYear *int `gorm:"column:water_heater_install_year" json:"water_heater_install_year,omitempty"`
	ElectricalPanelYear    *int `gorm:"column:electrical_panel_year" json:"electrical_panel_year,omitempty"`

	DetectorsInstallYear *int `gorm:"column:detectors_install_year" json:"detectors_install_year,omitempty"`

	HasSmokeDetectors bool `gorm:"column:has_smoke_detectors;not null;default:false" json:"has_smoke_detectors"`
	HasCODetectors    bool `gorm:"column:has_co_detectors;not null;default:false" json:"has_co_detectors"`
	HasDrainageIssues bool `gorm:"column:has_drainage_issues;not null;default:false" json:"has_drainage_issues"`

	OwnershipType string `gorm:"column:ownership_type" json:"ownership_type,omitempty"`
	Occupancy     string `gorm:"column:occupancy" json:"occupancy,omitempty"`

	VerifiedFactCount int `gorm:"column:verified_fact_count;not null;default:0" json:"verified_fact_count"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (PropertyFacts) TableName() string { return "property_facts" }

// HasBasicProfile reports whether the facts carry enough shape to risk-score
// at all. Without these the calculator emits a single "data missing" detail
// instead of a fabricated score.
func (f *PropertyFacts) HasBasicProfile() bool {
	if f == nil {
		return false
	}
	return f.YearBuilt != nil && f.LivingAreaSqFt != nil
}

// CompletenessRatio is the fraction of core profile fields that are
// populated, used as a confidence input.
func (f *PropertyFacts) CompletenessRatio() float64 {
	if f == nil {
		return 0
	}
	total := 8.0
	populated := 0.0
	for _, p := range []*int{f.YearBuilt, f.LivingAreaSqFt, f.RoofInstallYear, f.HVACInstallYear, f.WaterHeaterInstallYear, f.ElectricalPanelYear} {
		if p != nil {
			populated++
		}
	}
	if f.HeatingType != "" {
		populated++
	}
	if f.Occupancy != "" {
		populated++
	}
	return populated / total
}
