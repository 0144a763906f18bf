package engine

import (
	"pizzadash/order"
	"pizzadash/parameter"
)

// OrdersSnapshot is the persisted form of the three order collections
type OrdersSnapshot struct {
	Incoming []*order.Order `json:"incomingOrders"`
	Active   []*order.Order `json:"activeOrders"`
	Past     []*order.Order `json:"pastOrders"`
	OrderSeq uint64         `json:"orderSeq"`
}

// Snapshot returns the persistable order state
func (e *Engine) Snapshot() OrdersSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return OrdersSnapshot{
		Incoming: cloneAll(e.incoming, e.incomingIDs),
		Active:   cloneAll(e.active, e.activeIDs),
		Past:     cloneAll(e.past, e.pastIDs),
		OrderSeq: e.orderSeq,
	}
}

// Restore replaces the order collections from a snapshot. Status fields
// are forced to agree with the collection each order arrives in, and
// expiry timers are re-armed for incoming orders from their creation
// times; orders whose window already lapsed are dropped.
func (e *Engine) Restore(s OrdersSnapshot) {
	now := e.clock.Now()

	e.mu.Lock()

	for id := range e.expiry {
		e.cancelExpiry(id)
	}
	e.incoming = make(map[string]*order.Order)
	e.active = make(map[string]*order.Order)
	e.past = make(map[string]*order.Order)
	e.incomingIDs = nil
	e.activeIDs = nil
	e.pastIDs = nil
	e.orderSeq = s.OrderSeq

	for _, o := range s.Incoming {
		remaining := parameter.IncomingOrderTimeout - now.Sub(o.CreatedAt)
		if remaining <= 0 {
			continue
		}
		c := o.Clone()
		c.Status = order.StatusIncoming
		e.incoming[c.ID] = c
		e.incomingIDs = append(e.incomingIDs, c.ID)
		id := c.ID
		e.expiry[id] = e.sched.Schedule(remaining, func() {
			e.expire(id)
		})
	}
	for _, o := range s.Active {
		c := o.Clone()
		c.Status = order.StatusActive
		e.active[c.ID] = c
		e.activeIDs = append(e.activeIDs, c.ID)
	}
	for _, o := range s.Past {
		c := o.Clone()
		c.Status = order.StatusPast
		e.past[c.ID] = c
		e.pastIDs = append(e.pastIDs, c.ID)
	}

	e.mu.Unlock()
}
