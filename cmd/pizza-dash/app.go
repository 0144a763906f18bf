package main

import (
	"fmt"

	"pizzadash/config"
	"pizzadash/engine"
	"pizzadash/equipment"
	"pizzadash/events"
	"pizzadash/geo"
	"pizzadash/ledger"
	"pizzadash/location"
	"pizzadash/service"
	"pizzadash/storage"
)

// Default player spawn, used until a real location feed exists
var homeBase = geo.Point{Lat: 52.5200, Lon: 13.4050}

// Walker stride per dashboard tick, meters
const walkStep = 25.0

// world wires every subsystem of a game session together
type world struct {
	cfg      config.Settings
	queue    *events.EventQueue
	currency *ledger.Currency
	xp       *ledger.Experience
	catalog  *equipment.Catalog
	sim      *location.Sim
	engine   *engine.Engine
	session  *storage.Session
	manager  *service.Manager
}

// newWorld builds a session from config, restoring any persisted state
func newWorld(cfg config.Settings) (*world, error) {
	events.InitRegistry()

	queue := events.NewEventQueue()
	currency := ledger.NewCurrency(queue)
	xp := ledger.NewExperience(queue)

	items, err := equipment.DefaultCatalogItems()
	if err != nil {
		return nil, fmt.Errorf("load equipment catalog: %w", err)
	}
	catalog := equipment.NewCatalog(items, currency, xp, queue)
	sim := location.NewSim(homeBase, walkStep)

	eng := engine.New(engine.Deps{
		Queue:      queue,
		Currency:   currency,
		Experience: xp,
		Catalog:    catalog,
		Location:   sim,
		Settings:   cfg,
		Seed:       cfg.Seed,
	})

	store, err := storage.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	session := storage.NewSession(store, currency, xp, catalog, eng)
	if err := session.LoadAll(); err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}

	manager := service.NewManager()
	if err := manager.Register(sim); err != nil {
		return nil, err
	}
	if err := manager.Register(eng); err != nil {
		return nil, err
	}
	if err := manager.InitAll(); err != nil {
		return nil, err
	}

	return &world{
		cfg:      cfg,
		queue:    queue,
		currency: currency,
		xp:       xp,
		catalog:  catalog,
		sim:      sim,
		engine:   eng,
		session:  session,
		manager:  manager,
	}, nil
}

// start launches the background services (order generation)
func (w *world) start() error {
	return w.manager.StartAll()
}

// stop halts services and persists the session
func (w *world) stop() error {
	stopErr := w.manager.StopAll()
	if err := w.session.SaveAll(); err != nil {
		return err
	}
	return stopErr
}
