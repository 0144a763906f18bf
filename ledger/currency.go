// Package ledger holds the player economy state: the currency balance and
// the level/experience progression. Both ledgers are safe for concurrent
// use and publish mutations to the game event queue.
package ledger

import (
	"sync"
	"time"

	"pizzadash/events"
)

// Currency is the single-balance money ledger.
//
// Add accepts signed deltas; spending callers validate against Balance()
// before invoking. The ledger itself enforces no floor, matching the
// caller-side contract of the game economy.
type Currency struct {
	mu      sync.RWMutex
	balance int
	queue   *events.EventQueue
}

// NewCurrency creates a currency ledger with a zero balance.
// queue may be nil when no observer cares about mutations.
func NewCurrency(queue *events.EventQueue) *Currency {
	return &Currency{queue: queue}
}

// Balance returns the current balance
func (c *Currency) Balance() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.balance
}

// Add applies a signed delta to the balance
func (c *Currency) Add(delta int) {
	c.mu.Lock()
	c.balance += delta
	balance := c.balance
	c.mu.Unlock()

	if c.queue != nil && delta != 0 {
		c.queue.Push(events.GameEvent{
			Type:    events.EventBalanceChanged,
			Time:    time.Now(),
			Payload: &events.BalancePayload{Delta: delta, Balance: balance},
		})
	}
}

// CurrencySnapshot is the persisted form of the currency ledger
type CurrencySnapshot struct {
	Balance int `json:"balance"`
}

// Snapshot returns the persistable state
func (c *Currency) Snapshot() CurrencySnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CurrencySnapshot{Balance: c.balance}
}

// Restore replaces the ledger state without emitting events
func (c *Currency) Restore(s CurrencySnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.balance = s.Balance
}
