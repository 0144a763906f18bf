// Package engine implements the order lifecycle state machine: randomized
// order generation, acceptance constraints tied to equipment, delivery
// progress tracking, and the reward payout on completion.
package engine

import (
	"math/rand"
	"sync"
	"time"

	"pizzadash/config"
	"pizzadash/equipment"
	"pizzadash/events"
	"pizzadash/ledger"
	"pizzadash/location"
	"pizzadash/order"
	"pizzadash/parameter"
)

// Deps wires the engine to its collaborators. Clock defaults to the system
// clock and Seed to a clock-derived value when zero.
type Deps struct {
	Clock      Clock
	Queue      *events.EventQueue
	Currency   *ledger.Currency
	Experience *ledger.Experience
	Catalog    *equipment.Catalog
	Location   location.Provider
	Settings   config.Settings
	Seed       int64
}

// Engine owns the three order collections and drives their transitions.
//
// A single mutex serializes every operation: Complete performs a
// read-modify-write across the order, the currency ledger, and the
// experience ledger, and no caller may observe a past order without its
// payout or the payout without the past transition.
type Engine struct {
	mu sync.Mutex

	clock Clock
	sched *Scheduler
	rng   *rand.Rand
	queue *events.EventQueue

	currency *ledger.Currency
	xp       *ledger.Experience
	catalog  *equipment.Catalog
	loc      location.Provider
	settings config.Settings

	accepting bool

	incoming map[string]*order.Order
	active   map[string]*order.Order
	past     map[string]*order.Order

	// Insertion order per collection, for stable listing
	incomingIDs []string
	activeIDs   []string
	pastIDs     []string

	// Pending expiry tasks by order id. Accept, decline, expiry, and
	// restore all keep this map in sync so no stale timer can fire
	// against an order that moved on.
	expiry map[string]TaskID

	orderSeq uint64
	started  bool
}

// New creates an engine. Generation does not run until Start.
func New(deps Deps) *Engine {
	clock := deps.Clock
	if clock == nil {
		clock = NewSystemClock()
	}
	seed := deps.Seed
	if seed == 0 {
		seed = clock.Now().UnixNano()
	}

	return &Engine{
		clock:     clock,
		sched:     NewScheduler(clock),
		rng:       rand.New(rand.NewSource(seed)),
		queue:     deps.Queue,
		currency:  deps.Currency,
		xp:        deps.Experience,
		catalog:   deps.Catalog,
		loc:       deps.Location,
		settings:  deps.Settings,
		accepting: true,
		incoming:  make(map[string]*order.Order),
		active:    make(map[string]*order.Order),
		past:      make(map[string]*order.Order),
		expiry:    make(map[string]TaskID),
	}
}

// Scheduler exposes the engine's task scheduler so tests and the demo loop
// can drive due tasks against a mock clock
func (e *Engine) Scheduler() *Scheduler {
	return e.sched
}

// Name implements service.Service
func (e *Engine) Name() string { return "order-engine" }

// Dependencies implements service.Service
func (e *Engine) Dependencies() []string { return nil }

// Init implements service.Service. The engine takes no init args.
func (e *Engine) Init(args ...any) error { return nil }

// Start launches the scheduler loop and the generation tick
func (e *Engine) Start() error {
	e.mu.Lock()
	if e.started {
		e.mu.Unlock()
		return nil
	}
	e.started = true
	e.mu.Unlock()

	e.sched.Start()
	e.scheduleNextGeneration()
	return nil
}

// Stop halts the scheduler. Pending expiry timers are abandoned with it;
// a later Restore re-arms them from the persisted creation times.
func (e *Engine) Stop() error {
	e.sched.Stop()
	return nil
}

// scheduleNextGeneration chains the randomized generation tick
func (e *Engine) scheduleNextGeneration() {
	span := parameter.GenerateIntervalMax - parameter.GenerateIntervalMin

	e.mu.Lock()
	delay := parameter.GenerateIntervalMin + time.Duration(e.rng.Int63n(int64(span)))
	e.mu.Unlock()

	e.sched.Schedule(delay, func() {
		e.Generate()
		e.scheduleNextGeneration()
	})
}

// SetAcceptingOrders toggles generation. Disabling does not touch existing
// incoming or active orders.
func (e *Engine) SetAcceptingOrders(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.accepting = on
}

// AcceptingOrders reports the generation toggle
func (e *Engine) AcceptingOrders() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.accepting
}

// Get returns a copy of any order by id, in whichever collection it lives
func (e *Engine) Get(id string) (*order.Order, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, m := range []map[string]*order.Order{e.incoming, e.active, e.past} {
		if o, ok := m[id]; ok {
			return o.Clone(), true
		}
	}
	return nil, false
}

// Incoming returns copies of the incoming orders in generation order
func (e *Engine) Incoming() []*order.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneAll(e.incoming, e.incomingIDs)
}

// Active returns copies of the active orders in acceptance order
func (e *Engine) Active() []*order.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneAll(e.active, e.activeIDs)
}

// Past returns copies of the completed orders in completion order
func (e *Engine) Past() []*order.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneAll(e.past, e.pastIDs)
}

// Counts returns the sizes of the three collections
func (e *Engine) Counts() (incoming, active, past int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.incoming), len(e.active), len(e.past)
}

func cloneAll(m map[string]*order.Order, ids []string) []*order.Order {
	out := make([]*order.Order, 0, len(ids))
	for _, id := range ids {
		if o, ok := m[id]; ok {
			out = append(out, o.Clone())
		}
	}
	return out
}

// removeID deletes an id from an ordered id slice
func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func (e *Engine) emit(t events.EventType, payload any) {
	if e.queue == nil {
		return
	}
	e.queue.Push(events.GameEvent{
		Type:    t,
		Time:    e.clock.Now(),
		Payload: payload,
	})
}
