package service

import (
	"fmt"
	"sync"
)

// Manager owns a set of services and drives their lifecycle in
// dependency order. Registration order breaks ties between
// independent services.
type Manager struct {
	mu       sync.Mutex
	services map[string]Service
	order    []string
	started  []string
}

func NewManager() *Manager {
	return &Manager{
		services: make(map[string]Service),
	}
}

// Register adds a service. Duplicate names are rejected.
func (m *Manager) Register(s Service) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := s.Name()
	if _, exists := m.services[name]; exists {
		return fmt.Errorf("service %q already registered", name)
	}
	m.services[name] = s
	m.order = append(m.order, name)
	return nil
}

// Get returns a registered service by name
func (m *Manager) Get(name string) (Service, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.services[name]
	return s, ok
}

// InitAll initializes every service in dependency order.
// A missing dependency or a cycle is an error.
func (m *Manager) InitAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sorted, err := m.sortedLocked()
	if err != nil {
		return err
	}
	for _, name := range sorted {
		if err := m.services[name].Init(); err != nil {
			return fmt.Errorf("init %s: %w", name, err)
		}
	}
	return nil
}

// StartAll starts every service in dependency order. On failure the
// services already started are stopped in reverse.
func (m *Manager) StartAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sorted, err := m.sortedLocked()
	if err != nil {
		return err
	}
	for _, name := range sorted {
		if err := m.services[name].Start(); err != nil {
			m.stopLocked()
			return fmt.Errorf("start %s: %w", name, err)
		}
		m.started = append(m.started, name)
	}
	return nil
}

// StopAll stops started services in reverse start order. Stop errors
// are collected, not short-circuited; every service gets its Stop call.
func (m *Manager) StopAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopLocked()
}

func (m *Manager) stopLocked() error {
	var firstErr error
	for i := len(m.started) - 1; i >= 0; i-- {
		if err := m.services[m.started[i]].Stop(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("stop %s: %w", m.started[i], err)
		}
	}
	m.started = nil
	return firstErr
}

// sortedLocked topologically sorts services by their declared dependencies
func (m *Manager) sortedLocked() ([]string, error) {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, len(m.services))
	sorted := make([]string, 0, len(m.services))

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("dependency cycle through %q", name)
		}
		state[name] = visiting
		s, ok := m.services[name]
		if !ok {
			return fmt.Errorf("unknown service dependency %q", name)
		}
		for _, dep := range s.Dependencies() {
			if err := visit(dep); err != nil {
				return err
			}
		}
		state[name] = done
		sorted = append(sorted, name)
		return nil
	}

	for _, name := range m.order {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return sorted, nil
}
