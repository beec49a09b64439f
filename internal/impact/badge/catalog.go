package badge

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultCatalog returns the built-in badge catalog used when no catalog
// file is configured. Targets are in canonical units (kg, L).
func DefaultCatalog() Catalog {
	return Catalog{
		{
			ID:          "carbon-sprout",
			Name:        "Carbon Sprout",
			Description: "Save your first 10 kg of CO2",
			Icon:        "sprout",
			Metric:      "carbon_saved",
			Target:      10,
		},
		{
			ID:          "carbon-guardian",
			Name:        "Carbon Guardian",
			Description: "Save 100 kg of CO2",
			Icon:        "shield",
			Metric:      "carbon_saved",
			Target:      100,
		},
		{
			ID:          "carbon-champion",
			Name:        "Carbon Champion",
			Description: "Save 1000 kg of CO2",
			Icon:        "trophy",
			Metric:      "carbon_saved",
			Target:      1000,
		},
		{
			ID:          "water-saver",
			Name:        "Water Saver",
			Description: "Save 500 L of water",
			Icon:        "droplet",
			Metric:      "water_saved",
			Target:      500,
		},
		{
			ID:          "water-steward",
			Name:        "Water Steward",
			Description: "Save 5000 L of water",
			Icon:        "waves",
			Metric:      "water_saved",
			Target:      5000,
		},
		{
			ID:          "plastic-free",
			Name:        "Plastic Free",
			Description: "Keep 5 kg of plastic out of circulation",
			Icon:        "recycle",
			Metric:      "plastic_reduced",
			Target:      5,
		},
	}
}

// catalogFile is the YAML representation of a badge catalog file.
type catalogFile struct {
	Badges Catalog `yaml:"badges"`
}

// LoadCatalog reads and validates a badge catalog from a YAML file.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read badge catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse badge catalog: %w", err)
	}

	if len(file.Badges) == 0 {
		return nil, fmt.Errorf("badge catalog %s defines no badges", path)
	}
	if err := file.Badges.Validate(); err != nil {
		return nil, fmt.Errorf("invalid badge catalog %s: %w", path, err)
	}

	return file.Badges, nil
}
