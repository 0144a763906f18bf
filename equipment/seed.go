package equipment

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Vehicles   []Item `yaml:"vehicles"`
	Characters []Item `yaml:"characters"`
}

// DefaultCatalogItems returns the built-in catalog seed data:
// vehicles first, then characters, in shop display order.
func DefaultCatalogItems() ([]Item, error) {
	return parseSeed(seedYAML)
}

// LoadCatalogItems parses a catalog definition from YAML. Used by the CLI
// to load a custom shop file; the format matches the embedded seed.
func LoadCatalogItems(data []byte) ([]Item, error) {
	return parseSeed(data)
}

func parseSeed(data []byte) ([]Item, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog seed: %w", err)
	}

	items := make([]Item, 0, len(f.Vehicles)+len(f.Characters))
	items = append(items, f.Vehicles...)
	items = append(items, f.Characters...)

	seen := make(map[string]bool, len(items))
	for i := range items {
		it := &items[i]
		if it.ID == "" {
			return nil, fmt.Errorf("catalog item %d has no id", i)
		}
		if seen[it.ID] {
			return nil, fmt.Errorf("duplicate catalog item id %q", it.ID)
		}
		seen[it.ID] = true
		if it.Kind != KindVehicle && it.Kind != KindCharacter {
			return nil, fmt.Errorf("catalog item %q has invalid kind %q", it.ID, it.Kind)
		}
		if it.Price < 0 {
			return nil, fmt.Errorf("catalog item %q has negative price", it.ID)
		}
		if len(it.UpgradeCosts) != it.MaxUpgradeLevel {
			return nil, fmt.Errorf("catalog item %q defines %d upgrade costs for %d tiers",
				it.ID, len(it.UpgradeCosts), it.MaxUpgradeLevel)
		}
		for _, c := range it.UpgradeCosts {
			if c < 0 {
				return nil, fmt.Errorf("catalog item %q has negative upgrade cost", it.ID)
			}
		}
	}
	return items, nil
}
