package events

import (
	"time"
)

// EventType represents the type of game event
type EventType int

const (
	// EventOrderGenerated signals a new incoming order
	// Trigger: Engine generation tick
	// Consumer: UI order list | Payload: *OrderPayload
	EventOrderGenerated EventType = iota

	// EventOrderExpired signals an incoming order removed by timeout
	// Trigger: Engine expiry timer (3 minutes)
	// Consumer: UI order list | Payload: *OrderPayload
	EventOrderExpired

	// EventOrderAccepted signals an incoming order moved to active
	// Trigger: Engine.Accept | Payload: *OrderPayload
	EventOrderAccepted

	// EventOrderDeclined signals an incoming order removed by the player
	// Trigger: Engine.Decline | Payload: *OrderPayload
	EventOrderDeclined

	// EventOrderCompleted signals a delivery finished and paid out
	// Trigger: Engine.Complete | Payload: *OrderCompletedPayload
	EventOrderCompleted

	// EventPizzaMade signals the preparation mini-task finished for an order
	// Trigger: Engine.MarkPizzaMade | Payload: *OrderPayload
	EventPizzaMade

	// EventProximityChanged signals the near-customer flag flipped
	// Trigger: Engine.UpdateProximity | Payload: *ProximityPayload
	EventProximityChanged

	// EventBalanceChanged signals a currency mutation
	// Trigger: Currency ledger | Payload: *BalancePayload
	EventBalanceChanged

	// EventExperienceGained signals an XP grant
	// Trigger: Experience ledger | Payload: *ExperiencePayload
	EventExperienceGained

	// EventLevelUp signals one or more level-ups from a single XP grant
	// Trigger: Experience ledger normalization | Payload: *LevelUpPayload
	EventLevelUp

	// EventItemPurchased signals a catalog purchase
	// Trigger: Catalog.Purchase | Payload: *ItemPayload
	EventItemPurchased

	// EventItemUpgraded signals an upgrade tier increase
	// Trigger: Catalog.Upgrade | Payload: *ItemPayload
	EventItemUpgraded

	// EventItemSelected signals the active vehicle/character changed
	// Trigger: Catalog.Select | Payload: *ItemPayload
	EventItemSelected
)

// GameEvent is a single queued event with an optional typed payload
type GameEvent struct {
	Type    EventType
	Time    time.Time
	Payload any
}
