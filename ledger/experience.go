package ledger

import (
	"sync"
	"time"

	"pizzadash/events"
	"pizzadash/parameter"
)

// RequiredXP returns the experience needed to clear the given level.
// Linear ramp: each level costs 100 more than a flat base of zero.
func RequiredXP(level int) int {
	return level * parameter.XPPerLevel
}

// Experience is the level/XP ledger.
//
// Invariant: after any mutation, 0 <= xp < RequiredXP(level). A single
// large grant rolls into as many level-ups as it covers.
type Experience struct {
	mu    sync.RWMutex
	level int
	xp    int
	queue *events.EventQueue
}

// NewExperience creates a level-1, zero-XP ledger.
// queue may be nil when no observer cares about mutations.
func NewExperience(queue *events.EventQueue) *Experience {
	return &Experience{level: 1, queue: queue}
}

// Level returns the current player level (starts at 1)
func (e *Experience) Level() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.level
}

// XP returns the experience accumulated toward the next level
func (e *Experience) XP() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.xp
}

// Add grants non-negative experience and normalizes overflow into level-ups.
// Negative amounts are ignored.
func (e *Experience) Add(amount int) {
	if amount <= 0 {
		return
	}

	e.mu.Lock()
	from := e.level
	e.xp += amount
	for e.xp >= RequiredXP(e.level) {
		e.xp -= RequiredXP(e.level)
		e.level++
	}
	to := e.level
	e.mu.Unlock()

	if e.queue == nil {
		return
	}
	e.queue.Push(events.GameEvent{
		Type:    events.EventExperienceGained,
		Time:    time.Now(),
		Payload: &events.ExperiencePayload{Amount: amount},
	})
	if to > from {
		e.queue.Push(events.GameEvent{
			Type:    events.EventLevelUp,
			Time:    time.Now(),
			Payload: &events.LevelUpPayload{From: from, To: to},
		})
	}
}

// Progress returns the fraction of the current level cleared, in [0, 1)
func (e *Experience) Progress() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return float64(e.xp) / float64(RequiredXP(e.level))
}

// ExperienceSnapshot is the persisted form of the experience ledger
type ExperienceSnapshot struct {
	Level int `json:"level"`
	XP    int `json:"experience"`
}

// Snapshot returns the persistable state
func (e *Experience) Snapshot() ExperienceSnapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return ExperienceSnapshot{Level: e.level, XP: e.xp}
}

// Restore replaces the ledger state without emitting events.
// The stored state is normalized defensively in case it predates a ramp change.
func (e *Experience) Restore(s ExperienceSnapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.level = s.Level
	if e.level < 1 {
		e.level = 1
	}
	e.xp = s.XP
	if e.xp < 0 {
		e.xp = 0
	}
	for e.xp >= RequiredXP(e.level) {
		e.xp -= RequiredXP(e.level)
		e.level++
	}
}
