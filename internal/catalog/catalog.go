package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Asset categories.
const (
	CategoryStructural   = "structural"
	CategorySystems      = "systems"
	CategorySafety       = "safety"
	CategoryFinancialGap = "financial-gap"
)

// Known system types. The relevance filter only understands these; a
// catalog entry with any other systemType is dropped with a diagnostic
// instead of being risk-scored against equipment the home may not own.
const (
	SystemRoof            = "roof"
	SystemFoundation      = "foundation"
	SystemFurnace         = "furnace"
	SystemHeatPump        = "heat_pump"
	SystemCentralAC       = "central_ac"
	SystemWaterHeater     = "water_heater"
	SystemElectricalPanel = "electrical_panel"
	SystemSafetyDetectors = "safety_detectors"
)

// AssetConfig is one catalog archetype: what a system costs to replace,
// how long it is expected to last, and which named property flags bump its
// failure probability (bumps may be negative).
type AssetConfig struct {
	SystemType        string             `yaml:"system_type"`
	Category          string             `yaml:"category"`
	ExpectedLifeYears int                `yaml:"expected_life_years"`
	ReplacementCost   float64            `yaml:"replacement_cost"`
	WarningFlags      map[string]float64 `yaml:"warning_flags,omitempty"`
}

type Catalog struct {
	Version int           `yaml:"version"`
	Assets  []AssetConfig `yaml:"assets"`
}

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return parse(defaultCatalogYAML)
}

// Load reads a catalog override from disk.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return parse(b)
}

func parse(b []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	seen := map[string]bool{}
	for _, a := range c.Assets {
		if a.SystemType == "" {
			return nil, fmt.Errorf("catalog entry missing system_type")
		}
		if seen[a.SystemType] {
			return nil, fmt.Errorf("duplicate catalog entry for system_type=%s", a.SystemType)
		}
		seen[a.SystemType] = true
		if a.ExpectedLifeYears <= 0 {
			return nil, fmt.Errorf("catalog entry %s: expected_life_years must be positive", a.SystemType)
		}
		if a.ReplacementCost < 0 {
			return nil, fmt.Errorf("catalog entry %s: replacement_cost must not be negative", a.SystemType)
		}
	}
	return &c, nil
}
