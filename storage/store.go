// Package storage implements the persistence and sync ports consumed by the
// pantry ledger, the meal calendar and the nutrition goals. Durability is
// best-effort: callers log save failures and never roll back memory.
package storage

import (
	"sync"

	"github.com/nemocake/pantry-planner/models"
)

// Snapshot keys. One serialized snapshot per key.
const (
	KeyPantry   = "pantry"
	KeyCalendar = "calendar"
	KeyGoals    = "goals"
)

// PantrySnapshot is the full pantry state.
type PantrySnapshot []models.PantryEntry

// CalendarSnapshot is the full meal calendar, keyed by day.
type CalendarSnapshot map[string][]models.MealEntry

// Store is the persistence port. Load returns (nil, nil) when no snapshot
// has ever been saved.
type Store interface {
	LoadPantry() (PantrySnapshot, error)
	SavePantry(PantrySnapshot) error
	LoadCalendar() (CalendarSnapshot, error)
	SaveCalendar(CalendarSnapshot) error
	LoadGoals() (models.Goals, error)
	SaveGoals(models.Goals) error
}

// SyncScheduler is the remote sync port: a fire-and-forget hook invoked
// after every mutation. The push mechanism itself lives outside the core.
type SyncScheduler interface {
	SchedulePush(scope string)
}

// NopSync is the default SyncScheduler when no remote sync is configured.
type NopSync struct{}

func (NopSync) SchedulePush(string) {}

// Memory is an in-process Store used in tests and as a fallback when no
// database is configured.
type Memory struct {
	mu       sync.RWMutex
	pantry   PantrySnapshot
	calendar CalendarSnapshot
	goals    models.Goals
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) LoadPantry() (PantrySnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.pantry == nil {
		return nil, nil
	}
	return append(PantrySnapshot(nil), m.pantry...), nil
}

func (m *Memory) SavePantry(s PantrySnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pantry = append(PantrySnapshot{}, s...)
	return nil
}

func (m *Memory) LoadCalendar() (CalendarSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.calendar == nil {
		return nil, nil
	}
	out := make(CalendarSnapshot, len(m.calendar))
	for date, entries := range m.calendar {
		out[date] = append([]models.MealEntry(nil), entries...)
	}
	return out, nil
}

func (m *Memory) SaveCalendar(s CalendarSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calendar = make(CalendarSnapshot, len(s))
	for date, entries := range s {
		m.calendar[date] = append([]models.MealEntry(nil), entries...)
	}
	return nil
}

func (m *Memory) LoadGoals() (models.Goals, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.goals == nil {
		return nil, nil
	}
	out := make(models.Goals, len(m.goals))
	for k, v := range m.goals {
		out[k] = v
	}
	return out, nil
}

func (m *Memory) SaveGoals(g models.Goals) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goals = make(models.Goals, len(g))
	for k, v := range g {
		m.goals[k] = v
	}
	return nil
}
