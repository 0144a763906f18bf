package engine

import (
	"math"

	"pizzadash/events"
	"pizzadash/geo"
	"pizzadash/order"
	"pizzadash/parameter"
	"pizzadash/result"
)

// Generate produces one incoming order when all preconditions hold:
// acceptance enabled, incoming below cap, active below cap, and a known
// player location. Called by the generation tick; safe to call directly.
// Skips are silent from the player's perspective, but the reason is
// reported for the caller's benefit.
func (e *Engine) Generate() (*order.Order, result.Reason) {
	playerLoc, haveLoc := e.currentLocation()

	e.mu.Lock()

	if !e.accepting {
		e.mu.Unlock()
		return nil, result.AcceptingDisabled
	}
	if len(e.incoming) >= parameter.MaxIncomingOrders ||
		len(e.active) >= parameter.MaxActiveOrdersForGeneration {
		e.mu.Unlock()
		return nil, result.CapacityExceeded
	}
	if !haveLoc {
		e.mu.Unlock()
		return nil, result.LocationUnavailable
	}

	e.orderSeq++
	id := nextOrderID(e.orderSeq)

	customerLoc := geo.RandomPointWithin(e.rng, playerLoc, e.settings.MaxCustomerDistance)
	distance := geo.Distance(playerLoc, customerLoc)

	fee := parameter.DeliveryFeeBase + int(math.Floor(distance/parameter.DeliveryFeePerMeters))
	tip := parameter.TipMin + e.rng.Intn(parameter.TipMax-parameter.TipMin+1)

	start := playerLoc
	o := &order.Order{
		ID:               id,
		CustomerName:     randomCustomerName(e.rng),
		CustomerAvatar:   randomCustomerAvatar(e.rng),
		Items:            randomItems(e.rng),
		DeliveryFee:      fee,
		Tip:              tip,
		Total:            fee + tip,
		CreatedAt:        e.clock.Now(),
		CustomerLocation: customerLoc,
		StartLocation:    &start,
		Distance:         distance,
		Status:           order.StatusIncoming,
	}

	e.incoming[id] = o
	e.incomingIDs = append(e.incomingIDs, id)
	e.expiry[id] = e.sched.Schedule(parameter.IncomingOrderTimeout, func() {
		e.expire(id)
	})

	e.mu.Unlock()

	e.emit(events.EventOrderGenerated, &events.OrderPayload{OrderID: id})
	return o.Clone(), result.OK
}

// expire removes an incoming order whose acceptance window lapsed.
// Firing against an order that was accepted or declined in the meantime
// is a silent no-op.
func (e *Engine) expire(id string) {
	e.mu.Lock()
	if _, ok := e.incoming[id]; !ok {
		e.mu.Unlock()
		return
	}
	delete(e.incoming, id)
	e.incomingIDs = removeID(e.incomingIDs, id)
	delete(e.expiry, id)
	e.mu.Unlock()

	e.emit(events.EventOrderExpired, &events.OrderPayload{OrderID: id})
}

// Accept moves an incoming order to active, subject to the selected
// equipment's capacity and delivery range. Capacity and range failures are
// distinct, user-visible rejections.
func (e *Engine) Accept(id string) result.Reason {
	playerLoc, haveLoc := e.currentLocation()

	e.mu.Lock()

	o, ok := e.incoming[id]
	if !ok {
		if _, elsewhere := e.active[id]; elsewhere {
			e.mu.Unlock()
			return result.NotIncoming
		}
		if _, elsewhere := e.past[id]; elsewhere {
			e.mu.Unlock()
			return result.NotIncoming
		}
		e.mu.Unlock()
		return result.OrderNotFound
	}

	if len(e.active) >= e.catalog.ActiveCapacity() {
		e.mu.Unlock()
		return result.CapacityExceeded
	}

	// Range is checked against the live player position when available,
	// falling back to the distance computed at generation
	dist := o.Distance
	if haveLoc {
		dist = geo.Distance(playerLoc, o.CustomerLocation)
	}
	if dist > e.catalog.ActiveRange() {
		e.mu.Unlock()
		return result.OutOfRange
	}

	delete(e.incoming, id)
	e.incomingIDs = removeID(e.incomingIDs, id)
	e.cancelExpiry(id)

	o.Status = order.StatusActive
	e.active[id] = o
	e.activeIDs = append(e.activeIDs, id)

	e.mu.Unlock()

	e.emit(events.EventOrderAccepted, &events.OrderPayload{OrderID: id})
	return result.OK
}

// Decline removes an incoming order unconditionally. No reward, no penalty.
func (e *Engine) Decline(id string) result.Reason {
	e.mu.Lock()

	if _, ok := e.incoming[id]; !ok {
		e.mu.Unlock()
		return result.OrderNotFound
	}
	delete(e.incoming, id)
	e.incomingIDs = removeID(e.incomingIDs, id)
	e.cancelExpiry(id)

	e.mu.Unlock()

	e.emit(events.EventOrderDeclined, &events.OrderPayload{OrderID: id})
	return result.OK
}

// MarkPizzaMade records completion of the preparation mini-task on an
// active order
func (e *Engine) MarkPizzaMade(id string) result.Reason {
	e.mu.Lock()

	o, ok := e.active[id]
	if !ok {
		reason := e.missingActiveReason(id)
		e.mu.Unlock()
		return reason
	}
	o.PizzaMade = true

	e.mu.Unlock()

	e.emit(events.EventPizzaMade, &events.OrderPayload{OrderID: id})
	return result.OK
}

// UpdateStartLocation records where delivery navigation began and
// recomputes the order's distance from there
func (e *Engine) UpdateStartLocation(id string, loc geo.Point) result.Reason {
	e.mu.Lock()
	defer e.mu.Unlock()

	o, ok := e.active[id]
	if !ok {
		return e.missingActiveReason(id)
	}
	start := loc
	o.StartLocation = &start
	o.Distance = geo.Distance(start, o.CustomerLocation)
	return result.OK
}

// UpdateProximity recomputes the live distance to the customer and flips
// the near-customer flag at the 300m threshold
func (e *Engine) UpdateProximity(id string, current geo.Point) result.Reason {
	e.mu.Lock()

	o, ok := e.active[id]
	if !ok {
		reason := e.missingActiveReason(id)
		e.mu.Unlock()
		return reason
	}

	dist := geo.Distance(current, o.CustomerLocation)
	near := dist <= parameter.NearCustomerThreshold
	changed := near != o.NearCustomer
	o.NearCustomer = near

	e.mu.Unlock()

	if changed {
		e.emit(events.EventProximityChanged, &events.ProximityPayload{
			OrderID:  id,
			Near:     near,
			Distance: dist,
		})
	}
	return result.OK
}

// Complete finishes an active, near-customer delivery: the order moves to
// past and the reward is paid out, exactly once.
//
// The whole transition is one atomic step under the engine mutex: order
// status, currency credit, and experience grant commit together.
func (e *Engine) Complete(id string) result.Reason {
	e.mu.Lock()

	o, ok := e.active[id]
	if !ok {
		reason := e.missingActiveReason(id)
		e.mu.Unlock()
		return reason
	}
	if !o.NearCustomer {
		e.mu.Unlock()
		return result.NotNearCustomer
	}

	delete(e.active, id)
	e.activeIDs = removeID(e.activeIDs, id)
	e.cancelExpiry(id)

	o.Status = order.StatusPast
	e.past[id] = o
	e.pastIDs = append(e.pastIDs, id)

	bonus := e.catalog.ActiveEarningsBonus()
	payout := o.Total * (100 + bonus) / 100
	xpGrant := parameter.XPPerDelivery +
		o.Total/parameter.XPValueDivisor +
		int(math.Floor(o.Distance/parameter.XPDistanceDivisor))

	e.currency.Add(payout)
	e.xp.Add(xpGrant)

	e.mu.Unlock()

	e.emit(events.EventOrderCompleted, &events.OrderCompletedPayload{
		OrderID: id,
		Payout:  payout,
		XP:      xpGrant,
	})
	return result.OK
}

// missingActiveReason distinguishes "wrong state" from "gone" for an id
// that is not in the active collection. Callers hold e.mu.
func (e *Engine) missingActiveReason(id string) result.Reason {
	if _, ok := e.incoming[id]; ok {
		return result.NotActive
	}
	if _, ok := e.past[id]; ok {
		return result.NotActive
	}
	return result.OrderNotFound
}

// cancelExpiry drops a pending expiry task for the order, if any.
// Callers hold e.mu.
func (e *Engine) cancelExpiry(id string) {
	if taskID, ok := e.expiry[id]; ok {
		e.sched.Cancel(taskID)
		delete(e.expiry, id)
	}
}

func (e *Engine) currentLocation() (geo.Point, bool) {
	if e.loc == nil {
		return geo.Point{}, false
	}
	return e.loc.Current()
}

// Progress returns how far along a delivery is, in [0, 1].
//
//	total     = distance(start, customer)
//	remaining = distance(current, customer)
//	progress  = clamp((total - remaining) / total, 0, 1)
//
// A zero total yields 0, never NaN. Walking away from the customer clamps
// at 0 rather than going negative.
func Progress(o *order.Order, current geo.Point) float64 {
	if o == nil || o.StartLocation == nil {
		return 0
	}
	total := geo.Distance(*o.StartLocation, o.CustomerLocation)
	if total <= 0 {
		return 0
	}
	remaining := geo.Distance(current, o.CustomerLocation)

	p := (total - remaining) / total
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
