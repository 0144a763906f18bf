package equipment

import (
	"math"
	"sync"
	"time"

	"pizzadash/events"
	"pizzadash/ledger"
	"pizzadash/parameter"
	"pizzadash/result"
)

// Catalog tracks ownership, upgrade levels, and the active selection for
// the static item catalog. Purchases and upgrades debit the currency
// ledger atomically with the ownership mutation.
type Catalog struct {
	mu sync.RWMutex

	items map[string]*Item
	order []string // shop display order

	owned    map[string]bool
	upgrades map[string]int // item id -> current upgrade level

	selectedVehicle   string
	selectedCharacter string

	currency *ledger.Currency
	xp       *ledger.Experience
	queue    *events.EventQueue
}

// NewCatalog builds a catalog over the given items. The starter items
// (price zero) are owned and selected from the start, matching the seed
// data's bike_1/char_1 loadout.
func NewCatalog(items []Item, currency *ledger.Currency, xp *ledger.Experience, queue *events.EventQueue) *Catalog {
	c := &Catalog{
		items:    make(map[string]*Item, len(items)),
		order:    make([]string, 0, len(items)),
		owned:    make(map[string]bool),
		upgrades: make(map[string]int),
		currency: currency,
		xp:       xp,
		queue:    queue,
	}

	for i := range items {
		it := items[i]
		c.items[it.ID] = &it
		c.order = append(c.order, it.ID)

		if it.Price == 0 {
			c.owned[it.ID] = true
			switch {
			case it.Kind == KindVehicle && c.selectedVehicle == "":
				c.selectedVehicle = it.ID
			case it.Kind == KindCharacter && c.selectedCharacter == "":
				c.selectedCharacter = it.ID
			}
		}
	}
	return c
}

// Items returns catalog entries of the given kind in display order
func (c *Catalog) Items(kind Kind) []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []Item
	for _, id := range c.order {
		if it := c.items[id]; it.Kind == kind {
			out = append(out, *it)
		}
	}
	return out
}

// Item returns a catalog entry by id
func (c *Catalog) Item(id string) (Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	it, ok := c.items[id]
	if !ok {
		return Item{}, false
	}
	return *it, true
}

// Owned reports whether the item has been purchased
func (c *Catalog) Owned(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.owned[id]
}

// UpgradeLevel returns the item's current upgrade tier (0 = unupgraded)
func (c *Catalog) UpgradeLevel(id string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.upgrades[id]
}

// Selected returns the active item id for the given kind, or ""
func (c *Catalog) Selected(kind Kind) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if kind == KindVehicle {
		return c.selectedVehicle
	}
	return c.selectedCharacter
}

// Purchase buys an item: exactly once per item, balance and unlock level
// permitting. The unlock-level check lives here, not in the UI, so the
// operation is safe to call directly.
func (c *Catalog) Purchase(id string) result.Reason {
	c.mu.Lock()
	defer c.mu.Unlock()

	it, ok := c.items[id]
	if !ok {
		return result.ItemNotFound
	}
	if c.owned[id] {
		return result.AlreadyOwned
	}
	if c.xp != nil && it.UnlockLevel > 0 && c.xp.Level() < it.UnlockLevel {
		return result.LevelLocked
	}
	if c.currency.Balance() < it.Price {
		return result.InsufficientFunds
	}

	c.currency.Add(-it.Price)
	c.owned[id] = true
	c.upgrades[id] = 0

	c.emit(events.EventItemPurchased, id)
	return result.OK
}

// Upgrade advances an owned item by exactly one tier
func (c *Catalog) Upgrade(id string) result.Reason {
	c.mu.Lock()
	defer c.mu.Unlock()

	it, ok := c.items[id]
	if !ok {
		return result.ItemNotFound
	}
	if !c.owned[id] {
		return result.NotOwned
	}
	level := c.upgrades[id]
	if level >= it.MaxUpgradeLevel {
		return result.MaxUpgradeReached
	}
	cost := it.UpgradeCosts[level]
	if c.currency.Balance() < cost {
		return result.InsufficientFunds
	}

	c.currency.Add(-cost)
	c.upgrades[id] = level + 1

	c.emit(events.EventItemUpgraded, id)
	return result.OK
}

// Select makes an owned item the active vehicle or character. Selecting a
// vehicle never disturbs the selected character, and vice versa.
func (c *Catalog) Select(id string, kind Kind) result.Reason {
	c.mu.Lock()
	defer c.mu.Unlock()

	it, ok := c.items[id]
	if !ok {
		return result.ItemNotFound
	}
	if it.Kind != kind {
		return result.WrongKind
	}
	if !c.owned[id] {
		return result.NotOwned
	}

	if kind == KindVehicle {
		c.selectedVehicle = id
	} else {
		c.selectedCharacter = id
	}

	c.emit(events.EventItemSelected, id)
	return result.OK
}

// EffectiveStats returns the item's stats scaled by its upgrade level.
// Each derived stat is present iff the corresponding base stat is defined.
//
//	m = 1 + 0.25*L
//	capacity' = floor(max(1, base) * m)
//	earnings' = floor((base + 5*L) * m)
//	range'    = floor(max(1000, base) * m)
func (c *Catalog) EffectiveStats(id string) (Stats, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, ok := c.items[id]
	if !ok {
		return Stats{}, false
	}
	return effectiveStats(it.Base, c.upgrades[id]), true
}

// StatsAtLevel returns the stats the item would have at the given upgrade
// tier, independent of current ownership. Used by shop previews.
func (c *Catalog) StatsAtLevel(id string, level int) (Stats, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, ok := c.items[id]
	if !ok {
		return Stats{}, false
	}
	return effectiveStats(it.Base, level), true
}

func effectiveStats(base Stats, level int) Stats {
	m := 1 + parameter.UpgradeMultiplierStep*float64(level)

	var out Stats
	if base.OrderCapacity != nil {
		v := *base.OrderCapacity
		if v < parameter.UpgradeMinBaseCapacity {
			v = parameter.UpgradeMinBaseCapacity
		}
		out.OrderCapacity = intPtr(int(math.Floor(float64(v) * m)))
	}
	if base.EarningsBonus != nil {
		out.EarningsBonus = intPtr(int(math.Floor(float64(*base.EarningsBonus+parameter.UpgradeFlatEarnings*level) * m)))
	}
	if base.DeliveryRange != nil {
		rng := *base.DeliveryRange
		if rng < parameter.UpgradeMinBaseRange {
			rng = parameter.UpgradeMinBaseRange
		}
		out.DeliveryRange = intPtr(int(math.Floor(float64(rng) * m)))
	}
	return out
}

// ActiveCapacity returns the selected vehicle's effective order capacity,
// falling back to the bike default when nothing useful is selected.
func (c *Catalog) ActiveCapacity() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if it, ok := c.items[c.selectedVehicle]; ok {
		s := effectiveStats(it.Base, c.upgrades[it.ID])
		if s.OrderCapacity != nil {
			return *s.OrderCapacity
		}
	}
	return parameter.DefaultOrderCapacity
}

// ActiveRange returns the selected vehicle's effective delivery range in
// meters, falling back to the bike default when nothing useful is selected.
func (c *Catalog) ActiveRange() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if it, ok := c.items[c.selectedVehicle]; ok {
		s := effectiveStats(it.Base, c.upgrades[it.ID])
		if s.DeliveryRange != nil {
			return float64(*s.DeliveryRange)
		}
	}
	return parameter.DefaultDeliveryRange
}

// ActiveEarningsBonus returns the summed earnings bonus percent of the
// selected vehicle and character. Items without the stat contribute 0.
func (c *Catalog) ActiveEarningsBonus() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, id := range []string{c.selectedVehicle, c.selectedCharacter} {
		if it, ok := c.items[id]; ok {
			s := effectiveStats(it.Base, c.upgrades[it.ID])
			if s.EarningsBonus != nil {
				total += *s.EarningsBonus
			}
		}
	}
	return total
}

func (c *Catalog) emit(t events.EventType, itemID string) {
	if c.queue == nil {
		return
	}
	c.queue.Push(events.GameEvent{
		Type:    t,
		Time:    time.Now(),
		Payload: &events.ItemPayload{ItemID: itemID},
	})
}

// CatalogSnapshot is the persisted dynamic state: ownership, upgrade
// levels, and selection. Static item data is never persisted.
type CatalogSnapshot struct {
	OwnedItems        []string       `json:"ownedItems"`
	Upgrades          map[string]int `json:"itemUpgrades,omitempty"`
	SelectedVehicle   string         `json:"selectedVehicle,omitempty"`
	SelectedCharacter string         `json:"selectedCharacter,omitempty"`
}

// Snapshot returns the persistable state
func (c *Catalog) Snapshot() CatalogSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := CatalogSnapshot{
		Upgrades:          make(map[string]int),
		SelectedVehicle:   c.selectedVehicle,
		SelectedCharacter: c.selectedCharacter,
	}
	for _, id := range c.order {
		if c.owned[id] {
			s.OwnedItems = append(s.OwnedItems, id)
		}
	}
	for id, lvl := range c.upgrades {
		if lvl > 0 {
			s.Upgrades[id] = lvl
		}
	}
	return s
}

// Restore replaces the dynamic state without emitting events. Unknown item
// ids from an older save are dropped; upgrade levels are clamped to the
// current ladder.
func (c *Catalog) Restore(s CatalogSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.owned = make(map[string]bool)
	c.upgrades = make(map[string]int)

	for _, id := range s.OwnedItems {
		if _, ok := c.items[id]; ok {
			c.owned[id] = true
		}
	}
	for id, lvl := range s.Upgrades {
		it, ok := c.items[id]
		if !ok || !c.owned[id] {
			continue
		}
		if lvl > it.MaxUpgradeLevel {
			lvl = it.MaxUpgradeLevel
		}
		if lvl > 0 {
			c.upgrades[id] = lvl
		}
	}

	c.selectedVehicle = ""
	c.selectedCharacter = ""
	if c.owned[s.SelectedVehicle] {
		c.selectedVehicle = s.SelectedVehicle
	}
	if c.owned[s.SelectedCharacter] {
		c.selectedCharacter = s.SelectedCharacter
	}
}
