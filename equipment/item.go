// Package equipment holds the ownable vehicle and character catalog with
// per-item upgrade ladders and the effective-stat math that feeds order
// acceptance and reward payout.
package equipment

// Kind separates the two catalog categories. One item of each kind can be
// active at a time.
type Kind string

const (
	KindVehicle   Kind = "vehicle"
	KindCharacter Kind = "character"
)

// Stats is the optional stat record of a catalog item. A nil field means
// the item does not define that stat: it contributes nothing to gameplay
// and is not rendered.
type Stats struct {
	OrderCapacity *int `yaml:"orderCapacity,omitempty" json:"orderCapacity,omitempty"`
	EarningsBonus *int `yaml:"earningsBonus,omitempty" json:"earningsBonus,omitempty"` // percent
	DeliveryRange *int `yaml:"deliveryRange,omitempty" json:"deliveryRange,omitempty"` // meters
}

// Item is a static catalog entry. Ownership and upgrade level live in the
// Catalog, not on the item.
type Item struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Kind        Kind   `yaml:"kind" json:"kind"`
	Icon        string `yaml:"icon" json:"icon"`
	Price       int    `yaml:"price" json:"price"`
	UnlockLevel int    `yaml:"unlockLevel,omitempty" json:"unlockLevel,omitempty"`

	Base            Stats `yaml:"stats,omitempty" json:"stats,omitempty"`
	MaxUpgradeLevel int   `yaml:"maxUpgradeLevel,omitempty" json:"maxUpgradeLevel,omitempty"`
	UpgradeCosts    []int `yaml:"upgradeCosts,omitempty" json:"upgradeCosts,omitempty"`
}

func intPtr(v int) *int { return &v }
