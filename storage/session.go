package storage

import (
	"encoding/json"
	"fmt"

	"pizzadash/engine"
	"pizzadash/equipment"
	"pizzadash/ledger"
)

// Store keys, one JSON document per subsystem
const (
	keyCurrency   = "currency"
	keyExperience = "experience"
	keyEquipment  = "equipment"
	keyOrders     = "orders"
)

// Session binds the game subsystems to a Store. LoadAll on startup,
// SaveAll on shutdown or checkpoint.
type Session struct {
	store    Store
	currency *ledger.Currency
	xp       *ledger.Experience
	catalog  *equipment.Catalog
	engine   *engine.Engine
}

func NewSession(store Store, currency *ledger.Currency, xp *ledger.Experience, catalog *equipment.Catalog, eng *engine.Engine) *Session {
	return &Session{
		store:    store,
		currency: currency,
		xp:       xp,
		catalog:  catalog,
		engine:   eng,
	}
}

// LoadAll restores every subsystem that has a saved document. Missing
// keys are skipped, so a fresh data dir yields the built-in defaults.
// Orders load last: re-arming expiry timers wants the rest in place.
func (s *Session) LoadAll() error {
	if err := loadInto(s.store, keyCurrency, func(snap ledger.CurrencySnapshot) {
		s.currency.Restore(snap)
	}); err != nil {
		return err
	}
	if err := loadInto(s.store, keyExperience, func(snap ledger.ExperienceSnapshot) {
		s.xp.Restore(snap)
	}); err != nil {
		return err
	}
	if err := loadInto(s.store, keyEquipment, func(snap equipment.CatalogSnapshot) {
		s.catalog.Restore(snap)
	}); err != nil {
		return err
	}
	return loadInto(s.store, keyOrders, func(snap engine.OrdersSnapshot) {
		s.engine.Restore(snap)
	})
}

// SaveAll writes every subsystem snapshot
func (s *Session) SaveAll() error {
	if err := save(s.store, keyCurrency, s.currency.Snapshot()); err != nil {
		return err
	}
	if err := save(s.store, keyExperience, s.xp.Snapshot()); err != nil {
		return err
	}
	if err := save(s.store, keyEquipment, s.catalog.Snapshot()); err != nil {
		return err
	}
	return save(s.store, keyOrders, s.engine.Snapshot())
}

func loadInto[T any](store Store, key string, restore func(T)) error {
	data, found, err := store.Load(key)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	var snap T
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	restore(snap)
	return nil
}

func save[T any](store Store, key string, snap T) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return store.Save(key, data)
}
